package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/redis"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// AuthService handles sign-in, sign-out and account creation. Sessions are
// opaque bearer tokens stored in Redis; passwords are stored as bcrypt
// hashes only.
type AuthService struct {
	userRepo     repository.UserRepository
	driverRepo   repository.DriverRepository
	sessionStore redis.SessionStoreInterface
	bcryptCost   int
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	driverRepo repository.DriverRepository,
	sessionStore redis.SessionStoreInterface,
	bcryptCost int,
) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:     userRepo,
		driverRepo:   driverRepo,
		sessionStore: sessionStore,
		bcryptCost:   bcryptCost,
	}
}

// Login verifies the credentials and opens a session. Unknown email and wrong
// password both map to ErrInvalidCredentials so the response does not leak
// which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*redis.Session, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session := &redis.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: time.Now(),
	}

	if user.Role == domain.UserRoleDriver {
		driver, err := s.driverRepo.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, err
		}
		if driver != nil {
			session.DriverID = driver.ID
		}
	}

	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Logout closes the session for the given token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionNotFound
	}
	return s.sessionStore.Delete(ctx, token)
}

// CurrentUser resolves the account behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, session *redis.Session) (*domain.User, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return s.userRepo.GetByID(ctx, session.UserID)
}

// CreateUserRequest contains the parameters for creating a user account.
type CreateUserRequest struct {
	Email     string
	FirstName string
	LastName  string
	Role      domain.UserRole
	Password  string
}

// CreateUser creates an account with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	role := req.Role
	if role == "" {
		role = domain.UserRoleDriver
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
