package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/repository"
)

// Document expiry horizons. A document inside the horizon raises an alert;
// one already past its date raises it at critical priority.
const (
	documentExpiryHorizon = 30 * 24 * time.Hour
	serviceDueHorizon     = 7 * 24 * time.Hour
)

// AlertService raises and manages operational alerts. Document scans are
// idempotent: a vehicle with an open alert of a given type is skipped until
// that alert is read.
type AlertService struct {
	alertRepo   repository.AlertRepository
	vehicleRepo repository.VehicleRepository
}

// NewAlertService creates a new AlertService.
func NewAlertService(alertRepo repository.AlertRepository, vehicleRepo repository.VehicleRepository) *AlertService {
	return &AlertService{alertRepo: alertRepo, vehicleRepo: vehicleRepo}
}

// ScanVehicleDocuments walks the fleet and raises alerts for insurance,
// fitness and permit documents expiring within the horizon, and for vehicles
// whose next service date is near. Returns the alerts created by this scan.
func (s *AlertService) ScanVehicleDocuments(ctx context.Context) ([]*domain.Alert, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var created []*domain.Alert

	for _, v := range vehicles {
		checks := []struct {
			alertType domain.AlertType
			label     string
			date      time.Time
			horizon   time.Duration
		}{
			{domain.AlertTypeInsuranceExpiry, "Insurance", v.InsuranceExpiry, documentExpiryHorizon},
			{domain.AlertTypeFitnessExpiry, "Fitness certificate", v.FitnessExpiry, documentExpiryHorizon},
			{domain.AlertTypePermitExpiry, "Permit", v.PermitExpiry, documentExpiryHorizon},
			{domain.AlertTypeServiceDue, "Service", v.NextServiceDate, serviceDueHorizon},
		}

		for _, check := range checks {
			if check.date.IsZero() || check.date.After(now.Add(check.horizon)) {
				continue
			}

			exists, err := s.alertRepo.ExistsOpen(ctx, check.alertType, v.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				continue
			}

			alert := &domain.Alert{
				ID:         uuid.New().String(),
				Type:       check.alertType,
				Title:      fmt.Sprintf("%s due for %s", check.label, v.RegistrationNumber),
				Message:    fmt.Sprintf("%s for vehicle %s is due on %s", check.label, v.Label(), check.date.Format("2006-01-02")),
				VehicleID:  v.ID,
				Priority:   domain.AlertPriorityHigh,
				ExpiryDate: check.date,
				CreatedAt:  now,
			}
			if check.date.Before(now) {
				alert.Priority = domain.AlertPriorityCritical
				alert.Title = fmt.Sprintf("%s overdue for %s", check.label, v.RegistrationNumber)
			}

			if err := s.alertRepo.Create(ctx, alert); err != nil {
				return nil, err
			}
			created = append(created, alert)
		}
	}
	return created, nil
}

// ListAlerts retrieves alerts, optionally only unread ones.
func (s *AlertService) ListAlerts(ctx context.Context, unreadOnly bool) ([]*domain.Alert, error) {
	if unreadOnly {
		return s.alertRepo.GetUnread(ctx)
	}
	return s.alertRepo.GetAll(ctx)
}

// MarkAlertRead marks an alert as read.
func (s *AlertService) MarkAlertRead(ctx context.Context, alertID string) error {
	if alertID == "" {
		return repository.ErrNotFound
	}
	return s.alertRepo.MarkAsRead(ctx, alertID)
}
