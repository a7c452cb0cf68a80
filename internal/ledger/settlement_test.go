package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/arefin/messmate/internal/models"
)

var (
	payer = models.Member{
		ID: "payer", MessID: "mess1", Name: "Payer", Email: "payer@mess.test",
	}
	receiver = models.Member{
		ID: "receiver", MessID: "mess1", Name: "Receiver", Email: "receiver@mess.test",
	}
)

func TestNewDebtRequest(t *testing.T) {
	tests := []struct {
		name    string
		from    models.Member
		to      models.Member
		amount  float64
		date    string
		wantErr error
	}{
		{
			name: "valid request",
			from: payer, to: receiver, amount: 75, date: "2024-03-10",
		},
		{
			name: "zero amount rejected",
			from: payer, to: receiver, amount: 0, date: "2024-03-10",
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount rejected",
			from: payer, to: receiver, amount: -10, date: "2024-03-10",
			wantErr: ErrInvalidAmount,
		},
		{
			name: "NaN amount rejected",
			from: payer, to: receiver, amount: math.NaN(), date: "2024-03-10",
			wantErr: ErrInvalidAmount,
		},
		{
			name: "infinite amount rejected",
			from: payer, to: receiver, amount: math.Inf(1), date: "2024-03-10",
			wantErr: ErrInvalidAmount,
		},
		{
			name: "missing payer rejected",
			from: models.Member{}, to: receiver, amount: 75, date: "2024-03-10",
			wantErr: ErrNoPayer,
		},
		{
			name: "self request rejected",
			from: receiver, to: receiver, amount: 75, date: "2024-03-10",
			wantErr: ErrSelfRequest,
		},
		{
			name: "malformed date rejected",
			from: payer, to: receiver, amount: 75, date: "10/03/2024",
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewDebtRequest(tt.from, tt.to, tt.amount, tt.date)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Status != models.DebtPending {
				t.Errorf("Status = %q, want pending", req.Status)
			}
			if req.FromID != tt.from.ID || req.ToID != tt.to.ID {
				t.Errorf("request endpoints = %q->%q, want %q->%q", req.FromID, req.ToID, tt.from.ID, tt.to.ID)
			}
			if req.MessID != tt.to.MessID {
				t.Errorf("MessID = %q, want %q", req.MessID, tt.to.MessID)
			}
		})
	}
}

func TestSettle(t *testing.T) {
	req, err := NewDebtRequest(payer, receiver, 75, "2024-03-10")
	if err != nil {
		t.Fatalf("NewDebtRequest: %v", err)
	}

	settlement, err := Settle(*req)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}

	if settlement.Request.Status != models.DebtAccepted {
		t.Errorf("Status = %q, want accepted", settlement.Request.Status)
	}

	// The two deposits must offset each other exactly.
	sum := settlement.Deposits[0].Amount + settlement.Deposits[1].Amount
	if sum != 0 {
		t.Errorf("deposit pair sums to %v, want exactly 0", sum)
	}
	if settlement.Deposits[0].MemberID != receiver.ID || settlement.Deposits[0].Amount != 75 {
		t.Errorf("receiver deposit = %+v, want +75 for %q", settlement.Deposits[0], receiver.ID)
	}
	if settlement.Deposits[1].MemberID != payer.ID || settlement.Deposits[1].Amount != -75 {
		t.Errorf("payer deposit = %+v, want -75 for %q", settlement.Deposits[1], payer.ID)
	}
	for i, d := range settlement.Deposits {
		if d.Date != req.Date {
			t.Errorf("deposit[%d].Date = %q, want request date %q", i, d.Date, req.Date)
		}
		if d.MessID != req.MessID {
			t.Errorf("deposit[%d].MessID = %q, want %q", i, d.MessID, req.MessID)
		}
	}

	debt := settlement.Debt
	if debt.FromID != payer.ID || debt.ToID != receiver.ID || debt.Amount != 75 || debt.Date != req.Date {
		t.Errorf("debt record = %+v, want {from: payer, to: receiver, amount: 75, date: %s}", debt, req.Date)
	}
}

// Settling the same request twice must produce exactly one settlement: the
// planner refuses any request that already left pending.
func TestSettle_Twice(t *testing.T) {
	req, err := NewDebtRequest(payer, receiver, 75, "2024-03-10")
	if err != nil {
		t.Fatalf("NewDebtRequest: %v", err)
	}

	first, err := Settle(*req)
	if err != nil {
		t.Fatalf("first Settle: %v", err)
	}

	if _, err := Settle(first.Request); !errors.Is(err, ErrNotPending) {
		t.Fatalf("second Settle error = %v, want ErrNotPending", err)
	}
}

func TestDeny(t *testing.T) {
	req, err := NewDebtRequest(payer, receiver, 75, "2024-03-10")
	if err != nil {
		t.Fatalf("NewDebtRequest: %v", err)
	}

	denied, err := Deny(*req)
	if err != nil {
		t.Fatalf("Deny: %v", err)
	}
	if denied.Status != models.DebtDenied {
		t.Errorf("Status = %q, want denied", denied.Status)
	}

	// Denying again, or denying an accepted request, is a state error that
	// leaves the status unchanged.
	if _, err := Deny(denied); !errors.Is(err, ErrNotPending) {
		t.Errorf("Deny(denied) error = %v, want ErrNotPending", err)
	}

	settlement, err := Settle(*req)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	got, err := Deny(settlement.Request)
	if !errors.Is(err, ErrNotPending) {
		t.Errorf("Deny(accepted) error = %v, want ErrNotPending", err)
	}
	if got.Status != models.DebtAccepted {
		t.Errorf("Deny(accepted) changed status to %q", got.Status)
	}
}

func TestNewMealCount_TotalInvariant(t *testing.T) {
	tests := []struct {
		name                     string
		breakfast, lunch, dinner int
		wantTotal                int
		wantErr                  bool
	}{
		{name: "all slots", breakfast: 1, lunch: 2, dinner: 1, wantTotal: 4},
		{name: "zeros allowed", wantTotal: 0},
		{name: "guest meals", breakfast: 0, lunch: 5, dinner: 3, wantTotal: 8},
		{name: "negative rejected", breakfast: -1, lunch: 1, dinner: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc, err := models.NewMealCount("mess1", "m1", "Alice", "2024-03-10", tt.breakfast, tt.lunch, tt.dinner)
			if tt.wantErr {
				if !errors.Is(err, models.ErrNegativeMeals) {
					t.Fatalf("error = %v, want ErrNegativeMeals", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mc.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", mc.Total, tt.wantTotal)
			}
			if mc.Total != mc.Breakfast+mc.Lunch+mc.Dinner {
				t.Errorf("Total invariant broken: %d != %d+%d+%d", mc.Total, mc.Breakfast, mc.Lunch, mc.Dinner)
			}
		})
	}
}
