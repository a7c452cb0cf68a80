package models

// DebtRequestStatus is the settlement state of a debt request.
type DebtRequestStatus string

const (
	// DebtPending means the payer has not yet responded.
	DebtPending DebtRequestStatus = "pending"
	// DebtAccepted means the payer acknowledged the debt and it has been
	// settled through two offsetting deposits.
	DebtAccepted DebtRequestStatus = "accepted"
	// DebtDenied means the payer refused; no ledger effect.
	DebtDenied DebtRequestStatus = "denied"
)

// DebtRequest asks a payer to acknowledge owing the receiver an amount.
// The receiver creates it; only the payer may accept or deny it. A request
// leaves pending exactly once and is immutable afterwards.
type DebtRequest struct {
	// ID is the unique identifier for the request (UUID format).
	ID string

	// MessID is the mess this request belongs to.
	MessID string

	// FromID, FromName, FromEmail identify the payer (the member who owes).
	FromID    string
	FromName  string
	FromEmail string

	// ToID, ToName, ToEmail identify the receiver (the member who is owed).
	ToID    string
	ToName  string
	ToEmail string

	// Amount is the owed amount. Always positive.
	Amount float64

	// Date is the ISO date (YYYY-MM-DD) the request was raised. Settlement
	// deposits carry this date.
	Date string

	// Status is pending, accepted, or denied.
	Status DebtRequestStatus
}

// Debt is an immutable settled-debt record, created only as a side effect of
// accepting a DebtRequest.
type Debt struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	// MessID is the mess this debt belongs to.
	MessID string

	// FromID is the payer's member ID.
	FromID string

	// ToID is the receiver's member ID.
	ToID string

	// Amount is the settled amount.
	Amount float64

	// Date is the ISO date (YYYY-MM-DD) carried from the request.
	Date string
}
