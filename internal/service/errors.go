package service

import "errors"

var (
	// ErrInvalidVehicleID is returned when a vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidTripID is returned when a trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidPayoutID is returned when a payout ID is empty.
	ErrInvalidPayoutID = errors.New("invalid payout id")

	// ErrInvalidTripStatus is returned when a trip status is not one of
	// pending, in_progress, completed, cancelled.
	ErrInvalidTripStatus = errors.New("invalid trip status")

	// ErrInvalidVehicleStatus is returned when a vehicle status is not one of
	// available, on_duty, in_service, accident.
	ErrInvalidVehicleStatus = errors.New("invalid vehicle status")

	// ErrInvalidExpenseType is returned when an expense type is unknown.
	ErrInvalidExpenseType = errors.New("invalid expense type")

	// ErrInvalidExpenseAmount is returned when an expense amount is not positive.
	ErrInvalidExpenseAmount = errors.New("invalid expense amount")

	// ErrInvalidReportType is returned when a report type is unknown.
	ErrInvalidReportType = errors.New("invalid report type")

	// ErrInvalidDateRange is returned when from is after to.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound is returned when a session token is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoCompletedTrips is returned when payout generation finds no
	// completed trips for the driver in the requested period.
	ErrNoCompletedTrips = errors.New("no completed trips in period")

	// ErrPayoutInProgress is returned when payout generation for the driver
	// is already running.
	ErrPayoutInProgress = errors.New("payout generation already in progress for driver")

	// ErrPayoutAlreadySettled is returned when marking a payout that is no
	// longer pending.
	ErrPayoutAlreadySettled = errors.New("payout already settled")

	// ErrDriverNotActive is returned when an operation requires an active driver.
	ErrDriverNotActive = errors.New("driver is not active")

	// ErrDriverAlreadyOnDuty is returned when starting duty for a driver with
	// an open duty log.
	ErrDriverAlreadyOnDuty = errors.New("driver already on duty")

	// ErrDriverNotOnDuty is returned when ending duty for a driver without an
	// open duty log.
	ErrDriverNotOnDuty = errors.New("driver not on duty")

	// ErrVehicleNotAvailable is returned when starting duty on a vehicle that
	// is not available.
	ErrVehicleNotAvailable = errors.New("vehicle not available")
)
