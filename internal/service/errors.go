package service

import "errors"

var (
	// ErrInvalidTripID is returned when a trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidCustomerID is returned when a customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidAgentID is returned when an agent ID is empty.
	ErrInvalidAgentID = errors.New("invalid agent id")

	// ErrInvalidExpenseID is returned when an expense ID is empty.
	ErrInvalidExpenseID = errors.New("invalid expense id")

	// ErrInvalidRollingRecordID is returned when a rolling record ID is empty.
	ErrInvalidRollingRecordID = errors.New("invalid rolling record id")

	// ErrInvalidAmount is returned when a monetary amount is zero or negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidTransactionType is returned for an unknown transaction type.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionStatus is returned for an unknown transaction status.
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")

	// ErrInvalidCommissionRate is returned when a commission rate is
	// outside 0-100.
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")

	// ErrReconciliationInProgress is returned when another reconciliation
	// of the same trip holds the trip lock.
	ErrReconciliationInProgress = errors.New("trip reconciliation already in progress")

	// ErrCustomerNotOnTrip is returned when an operation references a
	// customer that has no stats row on the trip.
	ErrCustomerNotOnTrip = errors.New("customer not on trip")
)
