package tests

import (
	"context"
	"testing"
	"time"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ──────────────────────────────────────────────
// VEHICLE DOCUMENT SCANNING
// ──────────────────────────────────────────────

func newAlertFixture(t *testing.T) (*service.AlertService, *MockAlertRepository, *MockVehicleRepository) {
	t.Helper()

	alertRepo := NewMockAlertRepository()
	vehicleRepo := NewMockVehicleRepository()
	svc := service.NewAlertService(alertRepo, vehicleRepo)
	return svc, alertRepo, vehicleRepo
}

func TestScan_RaisesAlertForExpiringInsurance(t *testing.T) {
	t.Parallel()

	svc, alertRepo, vehicleRepo := newAlertFixture(t)

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		RegistrationNumber: "KA01AB1234",
		Make:               "Toyota",
		Model:              "Etios",
		InsuranceExpiry:    time.Now().Add(10 * 24 * time.Hour),
	})

	created, err := svc.ScanVehicleDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(created) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(created))
	}
	if created[0].Type != domain.AlertTypeInsuranceExpiry {
		t.Errorf("expected insurance_expiry alert, got %s", created[0].Type)
	}
	if created[0].Priority != domain.AlertPriorityHigh {
		t.Errorf("expected high priority, got %s", created[0].Priority)
	}
	if alertRepo.CountAlerts() != 1 {
		t.Errorf("expected 1 stored alert, got %d", alertRepo.CountAlerts())
	}
}

func TestScan_OverdueDocumentIsCritical(t *testing.T) {
	t.Parallel()

	svc, _, vehicleRepo := newAlertFixture(t)

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		RegistrationNumber: "KA01AB1234",
		FitnessExpiry:      time.Now().Add(-48 * time.Hour),
	})

	created, err := svc.ScanVehicleDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(created) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(created))
	}
	if created[0].Priority != domain.AlertPriorityCritical {
		t.Errorf("expected critical priority for an overdue document, got %s", created[0].Priority)
	}
}

func TestScan_DistantExpiryIgnored(t *testing.T) {
	t.Parallel()

	svc, alertRepo, vehicleRepo := newAlertFixture(t)

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		RegistrationNumber: "KA01AB1234",
		InsuranceExpiry:    time.Now().Add(180 * 24 * time.Hour),
		PermitExpiry:       time.Now().Add(365 * 24 * time.Hour),
	})

	created, err := svc.ScanVehicleDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("expected no alerts, got %d", len(created))
	}
	if alertRepo.CountAlerts() != 0 {
		t.Error("no alert should be stored")
	}
}

func TestScan_IsIdempotentWhileAlertOpen(t *testing.T) {
	t.Parallel()

	svc, alertRepo, vehicleRepo := newAlertFixture(t)

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		RegistrationNumber: "KA01AB1234",
		InsuranceExpiry:    time.Now().Add(5 * 24 * time.Hour),
	})

	first, err := svc.ScanVehicleDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 alert from first scan, got %d", len(first))
	}

	// A second scan must not duplicate the open alert.
	second, err := svc.ScanVehicleDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("expected no new alerts, got %d", len(second))
	}
	if alertRepo.CountAlerts() != 1 {
		t.Errorf("expected 1 stored alert, got %d", alertRepo.CountAlerts())
	}

	// After the alert is read, the next scan raises it again.
	if err := svc.MarkAlertRead(context.Background(), first[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third, err := svc.ScanVehicleDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(third) != 1 {
		t.Errorf("expected alert re-raised after read, got %d", len(third))
	}
}

func TestScan_ChecksAllDocumentKinds(t *testing.T) {
	t.Parallel()

	svc, _, vehicleRepo := newAlertFixture(t)

	soon := time.Now().Add(3 * 24 * time.Hour)
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:                 "vehicle-1",
		RegistrationNumber: "KA01AB1234",
		InsuranceExpiry:    soon,
		FitnessExpiry:      soon,
		PermitExpiry:       soon,
		NextServiceDate:    soon,
	})

	created, err := svc.ScanVehicleDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("expected 4 alerts, got %d", len(created))
	}

	kinds := make(map[domain.AlertType]bool)
	for _, a := range created {
		kinds[a.Type] = true
	}
	for _, want := range []domain.AlertType{
		domain.AlertTypeInsuranceExpiry,
		domain.AlertTypeFitnessExpiry,
		domain.AlertTypePermitExpiry,
		domain.AlertTypeServiceDue,
	} {
		if !kinds[want] {
			t.Errorf("missing alert kind %s", want)
		}
	}
}
