package tests

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/redis"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	ListError   error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		if !matchTrip(t, filter) {
			continue
		}
		copy := *t
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result, nil
}

func matchTrip(t *domain.Trip, filter repository.TripFilter) bool {
	if !filter.From.IsZero() && t.StartTime.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && t.StartTime.After(filter.To) {
		return false
	}
	if filter.VehicleID != "" && t.VehicleID != filter.VehicleID {
		return false
	}
	if filter.DriverID != "" && t.DriverID != filter.DriverID {
		return false
	}
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	return true
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

func (m *MockTripRepository) Recent(ctx context.Context, limit int) ([]*domain.Trip, error) {
	all, err := m.List(ctx, repository.TripFilter{})
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockTripRepository) CompletedRevenueSince(ctx context.Context, since time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total float64
	for _, t := range m.trips {
		if t.Completed() && !t.StartTime.Before(since) {
			total += t.TotalAmount
		}
	}
	return total, nil
}

func (m *MockTripRepository) TopVehiclesByRevenue(ctx context.Context, since time.Time, limit int) ([]repository.TopVehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byVehicle := make(map[string]*repository.TopVehicle)
	for _, t := range m.trips {
		if !t.Completed() || t.StartTime.Before(since) {
			continue
		}
		tv, ok := byVehicle[t.VehicleID]
		if !ok {
			tv = &repository.TopVehicle{VehicleID: t.VehicleID, RegistrationNumber: t.VehicleID}
			byVehicle[t.VehicleID] = tv
		}
		tv.TripCount++
		tv.Revenue += t.TotalAmount
	}
	result := make([]repository.TopVehicle, 0, len(byVehicle))
	for _, tv := range byVehicle {
		result = append(result, *tv)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Revenue != result[j].Revenue {
			return result[i].Revenue > result[j].Revenue
		}
		return result[i].RegistrationNumber < result[j].RegistrationNumber
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError error
	GetAllError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles {
		if v.RegistrationNumber == vehicle.RegistrationNumber {
			return repository.ErrDuplicate
		}
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.vehicles, id)
	return nil
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.Status = status
	return nil
}

func (m *MockVehicleRepository) CountActive(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, v := range m.vehicles {
		if v.Active() {
			count++
		}
	}
	return count, nil
}

// GetVehicle returns a vehicle for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	AddCompletedTripCallCount int32

	// Error injection
	GetAllError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.UserID == userID {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.drivers, id)
	return nil
}

func (m *MockDriverRepository) AddCompletedTrip(ctx context.Context, id string, earnings float64) error {
	atomic.AddInt32(&m.AddCompletedTripCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.TotalTrips++
	driver.TotalEarnings += earnings
	return nil
}

func (m *MockDriverRepository) CountActive(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, d := range m.drivers {
		if d.IsActive {
			count++
		}
	}
	return count, nil
}

// GetDriver returns a driver for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK EXPENSE REPOSITORY
// ──────────────────────────────────────────────

// MockExpenseRepository is a mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	// Error injection
	ListError error
}

// NewMockExpenseRepository creates a new mock expense repository.
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
	}
}

// AddExpense adds an expense to the mock repository.
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	expense, ok := m.expenses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *expense
	return &copy, nil
}

func (m *MockExpenseRepository) List(ctx context.Context, filter repository.ExpenseFilter) ([]*domain.Expense, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		if !filter.From.IsZero() && e.ExpenseDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.ExpenseDate.After(filter.To) {
			continue
		}
		if filter.VehicleID != "" && e.VehicleID != filter.VehicleID {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		copy := *e
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[expense.ID]; !ok {
		return repository.ErrNotFound
	}
	m.expenses[expense.ID] = expense
	return nil
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.expenses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *MockExpenseRepository) TotalSince(ctx context.Context, since time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total float64
	for _, e := range m.expenses {
		if !e.ExpenseDate.Before(since) {
			total += e.Amount
		}
	}
	return total, nil
}

// ──────────────────────────────────────────────
// MOCK PAYOUT REPOSITORY
// ──────────────────────────────────────────────

// MockPayoutRepository is a mock implementation of PayoutRepository.
type MockPayoutRepository struct {
	mu      sync.RWMutex
	payouts map[string]*domain.Payout

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockPayoutRepository creates a new mock payout repository.
func NewMockPayoutRepository() *MockPayoutRepository {
	return &MockPayoutRepository{
		payouts: make(map[string]*domain.Payout),
	}
}

// AddPayout adds a payout to the mock repository.
func (m *MockPayoutRepository) AddPayout(payout *domain.Payout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payouts[payout.ID] = payout
}

func (m *MockPayoutRepository) Create(ctx context.Context, payout *domain.Payout) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payouts[payout.ID] = payout
	return nil
}

func (m *MockPayoutRepository) GetByID(ctx context.Context, id string) (*domain.Payout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payout, ok := m.payouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payout
	return &copy, nil
}

func (m *MockPayoutRepository) GetAll(ctx context.Context) ([]*domain.Payout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Payout, 0, len(m.payouts))
	for _, p := range m.payouts {
		copy := *p
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockPayoutRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.Payout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Payout, 0)
	for _, p := range m.payouts {
		if p.DriverID == driverID {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockPayoutRepository) GetPending(ctx context.Context) ([]*domain.Payout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Payout, 0)
	for _, p := range m.payouts {
		if p.Status == domain.PayoutStatusPending {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockPayoutRepository) Update(ctx context.Context, payout *domain.Payout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payouts[payout.ID]; !ok {
		return repository.ErrNotFound
	}
	m.payouts[payout.ID] = payout
	return nil
}

func (m *MockPayoutRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.payouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.payouts, id)
	return nil
}

// CountPayouts returns the number of stored payouts.
func (m *MockPayoutRepository) CountPayouts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payouts)
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK ALERT REPOSITORY
// ──────────────────────────────────────────────

// MockAlertRepository is a mock implementation of AlertRepository.
type MockAlertRepository struct {
	mu     sync.RWMutex
	alerts map[string]*domain.Alert

	// Counters for verification
	CreateCallCount int32
}

// NewMockAlertRepository creates a new mock alert repository.
func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{
		alerts: make(map[string]*domain.Alert),
	}
}

// AddAlert adds an alert to the mock repository.
func (m *MockAlertRepository) AddAlert(alert *domain.Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts[alert.ID] = alert
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts[alert.ID] = alert
	return nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	alert, ok := m.alerts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *alert
	return &copy, nil
}

func (m *MockAlertRepository) GetAll(ctx context.Context) ([]*domain.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		copy := *a
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockAlertRepository) GetUnread(ctx context.Context) ([]*domain.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Alert, 0)
	for _, a := range m.alerts {
		if !a.IsRead {
			copy := *a
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockAlertRepository) MarkAsRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	alert, ok := m.alerts[id]
	if !ok {
		return repository.ErrNotFound
	}
	alert.IsRead = true
	return nil
}

func (m *MockAlertRepository) ExistsOpen(ctx context.Context, alertType domain.AlertType, vehicleID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.alerts {
		if a.Type == alertType && a.VehicleID == vehicleID && !a.IsRead {
			return true, nil
		}
	}
	return false, nil
}

// CountAlerts returns the number of stored alerts.
func (m *MockAlertRepository) CountAlerts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.alerts)
}

// ──────────────────────────────────────────────
// MOCK ASSIGNMENT / DUTY LOG REPOSITORIES
// ──────────────────────────────────────────────

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mu   sync.RWMutex
	logs map[string]*domain.MaintenanceLog
}

// NewMockMaintenanceRepository creates a new mock maintenance repository.
func NewMockMaintenanceRepository() *MockMaintenanceRepository {
	return &MockMaintenanceRepository{
		logs: make(map[string]*domain.MaintenanceLog),
	}
}

// AddLog adds a maintenance log to the mock repository.
func (m *MockMaintenanceRepository) AddLog(log *domain.MaintenanceLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.ID] = log
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, log *domain.MaintenanceLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.ID] = log
	return nil
}

func (m *MockMaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	log, ok := m.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *log
	return &copy, nil
}

func (m *MockMaintenanceRepository) GetAll(ctx context.Context) ([]*domain.MaintenanceLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.MaintenanceLog, 0, len(m.logs))
	for _, l := range m.logs {
		copy := *l
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ServiceDate.After(result[j].ServiceDate)
	})
	return result, nil
}

func (m *MockMaintenanceRepository) GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.MaintenanceLog, error) {
	all, err := m.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.MaintenanceLog, 0)
	for _, l := range all {
		if l.VehicleID == vehicleID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *MockMaintenanceRepository) Update(ctx context.Context, log *domain.MaintenanceLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.logs[log.ID]; !ok {
		return repository.ErrNotFound
	}
	m.logs[log.ID] = log
	return nil
}

func (m *MockMaintenanceRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.logs, id)
	return nil
}

// GetLog returns a maintenance log for test assertions.
func (m *MockMaintenanceRepository) GetLog(id string) *domain.MaintenanceLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logs[id]
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository.
type MockAssignmentRepository struct {
	mu          sync.RWMutex
	assignments map[string]*domain.VehicleAssignment
	nextID      int32
}

// NewMockAssignmentRepository creates a new mock assignment repository.
func NewMockAssignmentRepository() *MockAssignmentRepository {
	return &MockAssignmentRepository{
		assignments: make(map[string]*domain.VehicleAssignment),
	}
}

// AddAssignment adds an assignment to the mock repository.
func (m *MockAssignmentRepository) AddAssignment(a *domain.VehicleAssignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[a.ID] = a
}

func (m *MockAssignmentRepository) Assign(ctx context.Context, vehicleID, driverID string) (*domain.VehicleAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.VehicleID == vehicleID && a.IsActive {
			a.IsActive = false
			a.UnassignedDate = time.Now()
		}
	}
	id := atomic.AddInt32(&m.nextID, 1)
	assignment := &domain.VehicleAssignment{
		ID:           "assignment-" + strconv.Itoa(int(id)),
		VehicleID:    vehicleID,
		DriverID:     driverID,
		AssignedDate: time.Now(),
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	m.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (m *MockAssignmentRepository) Unassign(ctx context.Context, assignmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[assignmentID]
	if !ok {
		return repository.ErrNotFound
	}
	a.IsActive = false
	a.UnassignedDate = time.Now()
	return nil
}

func (m *MockAssignmentRepository) GetActive(ctx context.Context) ([]*domain.VehicleAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.VehicleAssignment, 0)
	for _, a := range m.assignments {
		if a.IsActive {
			copy := *a
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockAssignmentRepository) GetCurrentByDriverID(ctx context.Context, driverID string) (*domain.VehicleAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.assignments {
		if a.DriverID == driverID && a.IsActive {
			copy := *a
			return &copy, nil
		}
	}
	return nil, nil
}

// MockDutyLogRepository is a mock implementation of DutyLogRepository.
type MockDutyLogRepository struct {
	mu   sync.RWMutex
	logs map[string]*domain.DutyLog
}

// NewMockDutyLogRepository creates a new mock duty log repository.
func NewMockDutyLogRepository() *MockDutyLogRepository {
	return &MockDutyLogRepository{
		logs: make(map[string]*domain.DutyLog),
	}
}

// AddDutyLog adds a duty log to the mock repository.
func (m *MockDutyLogRepository) AddDutyLog(log *domain.DutyLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.ID] = log
}

func (m *MockDutyLogRepository) Create(ctx context.Context, log *domain.DutyLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.ID] = log
	return nil
}

func (m *MockDutyLogRepository) Update(ctx context.Context, log *domain.DutyLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.logs[log.ID]; !ok {
		return repository.ErrNotFound
	}
	m.logs[log.ID] = log
	return nil
}

func (m *MockDutyLogRepository) GetByDriverID(ctx context.Context, driverID string) ([]*domain.DutyLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.DutyLog, 0)
	for _, l := range m.logs {
		if l.DriverID == driverID {
			copy := *l
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result, nil
}

func (m *MockDutyLogRepository) GetCurrentByDriverID(ctx context.Context, driverID string) (*domain.DutyLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.logs {
		if l.DriverID == driverID && l.Status == domain.DutyStatusOnDuty {
			copy := *l
			return &copy, nil
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockSessionStore is an in-memory implementation of SessionStoreInterface.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*redis.Session

	// Error injection
	SaveError error
	GetError  error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]*redis.Session),
	}
}

func (m *MockSessionStore) Save(ctx context.Context, session *redis.Session) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *session
	m.sessions[session.Token] = &copy
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*redis.Session, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	copy := *session
	return &copy, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// CountSessions returns the number of stored sessions.
func (m *MockSessionStore) CountSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquirePayoutLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[driverID] {
		return false, nil
	}
	m.locks[driverID] = true
	return true, nil
}

func (m *MockLockStore) ReleasePayoutLock(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, driverID)
	return nil
}

// Locked reports whether the driver's lock is currently held.
func (m *MockLockStore) Locked(driverID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[driverID]
}

// MockCacheStore is an in-memory implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu          sync.RWMutex
	metrics     *redis.CachedMetrics
	topVehicles map[int][]redis.CachedTopVehicle

	// Counters for verification
	InvalidateCallCount int32
	SetMetricsCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		topVehicles: make(map[int][]redis.CachedTopVehicle),
	}
}

func (m *MockCacheStore) GetMetrics(ctx context.Context) (*redis.CachedMetrics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.metrics == nil {
		return nil, nil
	}
	copy := *m.metrics
	return &copy, nil
}

func (m *MockCacheStore) SetMetrics(ctx context.Context, metrics *redis.CachedMetrics) error {
	atomic.AddInt32(&m.SetMetricsCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *metrics
	m.metrics = &copy
	return nil
}

func (m *MockCacheStore) InvalidateMetrics(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = nil
	return nil
}

func (m *MockCacheStore) GetTopVehicles(ctx context.Context, limit int) ([]redis.CachedTopVehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topVehicles[limit], nil
}

func (m *MockCacheStore) SetTopVehicles(ctx context.Context, limit int, vehicles []redis.CachedTopVehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topVehicles[limit] = vehicles
	return nil
}
