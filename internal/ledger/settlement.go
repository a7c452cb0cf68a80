package ledger

import (
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/arefin/messmate/internal/models"
)

var (
	// ErrInvalidAmount is returned when a debt amount is not a positive,
	// finite number. NaN and Inf fail loudly rather than coerce to zero.
	ErrInvalidAmount = errors.New("amount must be a positive, finite number")

	// ErrNoPayer is returned when the payer member is missing.
	ErrNoPayer = errors.New("a payer must be selected")

	// ErrSelfRequest is returned when the payer and receiver are the same
	// member.
	ErrSelfRequest = errors.New("cannot request a debt from yourself")

	// ErrNotPending is returned when settling or denying a request that has
	// already left the pending state. Guards against double settlement.
	ErrNotPending = errors.New("debt request is not pending")

	// ErrInvalidDate is returned when a date is not canonical YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD form")
)

// Settlement is the full ledger effect of accepting a debt request: the
// accepted request, two offsetting deposits (receiver +amount, payer -amount)
// that sum to exactly zero, and the immutable debt record. The plan is pure;
// the storage layer applies it in a single transaction, guarded on the
// request still being pending.
type Settlement struct {
	Request  models.DebtRequest
	Deposits [2]models.Deposit
	Debt     models.Debt
}

// NewDebtRequest builds a pending debt request: the receiver `to` asks the
// payer `from` to acknowledge owing `amount`.
func NewDebtRequest(from, to models.Member, amount float64, date string) (*models.DebtRequest, error) {
	if from.ID == "" {
		return nil, ErrNoPayer
	}
	if from.ID == to.ID {
		return nil, ErrSelfRequest
	}
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	if !models.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	return &models.DebtRequest{
		ID:        uuid.New().String(),
		MessID:    to.MessID,
		FromID:    from.ID,
		FromName:  from.Name,
		FromEmail: from.Email,
		ToID:      to.ID,
		ToName:    to.Name,
		ToEmail:   to.Email,
		Amount:    amount,
		Date:      date,
		Status:    models.DebtPending,
	}, nil
}

// Settle plans the acceptance of a pending debt request. The two deposits
// carry the request's date and offset each other exactly, so settlement
// never changes the household deposit total.
func Settle(req models.DebtRequest) (*Settlement, error) {
	if req.Status != models.DebtPending {
		return nil, ErrNotPending
	}
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}

	accepted := req
	accepted.Status = models.DebtAccepted

	return &Settlement{
		Request: accepted,
		Deposits: [2]models.Deposit{
			{
				ID:          uuid.New().String(),
				MessID:      req.MessID,
				MemberID:    req.ToID,
				MemberName:  req.ToName,
				MemberEmail: req.ToEmail,
				Amount:      req.Amount,
				Date:        req.Date,
			},
			{
				ID:          uuid.New().String(),
				MessID:      req.MessID,
				MemberID:    req.FromID,
				MemberName:  req.FromName,
				MemberEmail: req.FromEmail,
				Amount:      -req.Amount,
				Date:        req.Date,
			},
		},
		Debt: models.Debt{
			ID:     uuid.New().String(),
			MessID: req.MessID,
			FromID: req.FromID,
			ToID:   req.ToID,
			Amount: req.Amount,
			Date:   req.Date,
		},
	}, nil
}

// Deny marks a pending debt request denied. No ledger side effects.
func Deny(req models.DebtRequest) (models.DebtRequest, error) {
	if req.Status != models.DebtPending {
		return req, ErrNotPending
	}
	req.Status = models.DebtDenied
	return req, nil
}

func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
