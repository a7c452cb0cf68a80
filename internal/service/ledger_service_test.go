package service

import (
	"context"
	"math"
	"testing"
)

const epsilon = 0.01

func TestAddExpense_ManagerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	_, err := env.ledger.AddExpense(ctx, mess.ID, member.Email, 100, "2026-01-05", "groceries", "food")
	wantKind(t, err, KindForbidden)

	if _, err := env.ledger.AddExpense(ctx, mess.ID, manager.Email, 100, "2026-01-05", "groceries", "food"); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	_, err = env.ledger.AddExpense(ctx, mess.ID, manager.Email, -5, "2026-01-05", "bad", "")
	wantKind(t, err, KindValidation)

	_, err = env.ledger.AddExpense(ctx, mess.ID, manager.Email, 5, "05-01-2026", "bad date", "")
	wantKind(t, err, KindValidation)
}

func TestAddDeposit_Gating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	// Members deposit for themselves.
	own, err := env.ledger.AddDeposit(ctx, mess.ID, member.Email, "", 500, "2026-01-05")
	if err != nil {
		t.Fatalf("AddDeposit failed: %v", err)
	}
	if own.MemberID != member.ID {
		t.Errorf("deposit member = %s, want %s", own.MemberID, member.ID)
	}

	// Members cannot deposit for others.
	_, err = env.ledger.AddDeposit(ctx, mess.ID, member.Email, manager.ID, 500, "2026-01-05")
	wantKind(t, err, KindForbidden)

	// Managers can.
	forOther, err := env.ledger.AddDeposit(ctx, mess.ID, manager.Email, member.ID, 200, "2026-01-06")
	if err != nil {
		t.Fatalf("manager AddDeposit for member failed: %v", err)
	}
	if forOther.MemberID != member.ID {
		t.Errorf("deposit member = %s, want %s", forOther.MemberID, member.ID)
	}
}

// TestSummaryScenario walks the canonical two-member month: meal expenses
// split by consumption, shared expenses split by headcount, balances net of
// deposits.
func TestSummaryScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	mustDo := func(what string, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s failed: %v", what, err)
		}
	}

	_, err := env.ledger.AddExpense(ctx, mess.ID, manager.Email, 1000, "2026-01-10", "groceries", "food")
	mustDo("AddExpense", err)
	_, err = env.ledger.AddSharedExpense(ctx, mess.ID, manager.Email, 400, "2026-01-01", "rent", "rent")
	mustDo("AddSharedExpense", err)

	// Alice 30 units, Bob 20 units.
	_, err = env.ledger.AddMealCount(ctx, mess.ID, manager.Email, manager.ID, "2026-01-10", 10, 10, 10)
	mustDo("AddMealCount", err)
	_, err = env.ledger.AddMealCount(ctx, mess.ID, member.Email, "", "2026-01-10", 5, 10, 5)
	mustDo("AddMealCount", err)

	_, err = env.ledger.AddDeposit(ctx, mess.ID, manager.Email, "", 1500, "2026-01-02")
	mustDo("AddDeposit", err)
	_, err = env.ledger.AddDeposit(ctx, mess.ID, member.Email, "", 900, "2026-01-02")
	mustDo("AddDeposit", err)

	summary, err := env.ledger.Summary(ctx, mess.ID, member.Email)
	mustDo("Summary", err)
	if math.Abs(summary.MealRate-20) > epsilon {
		t.Errorf("meal rate = %v, want 20", summary.MealRate)
	}
	if math.Abs(summary.RemainingBalance-1000) > epsilon {
		t.Errorf("remaining = %v, want 1000", summary.RemainingBalance)
	}

	balances, err := env.ledger.MemberBalances(ctx, mess.ID, member.Email)
	mustDo("MemberBalances", err)
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	// Roster order: manager joined first.
	alice, bob := balances[0], balances[1]
	if math.Abs(alice.Remaining-700) > epsilon {
		t.Errorf("Alice remaining = %v, want 700", alice.Remaining)
	}
	if math.Abs(bob.Remaining-300) > epsilon {
		t.Errorf("Bob remaining = %v, want 300", bob.Remaining)
	}

	ranged, err := env.ledger.RangeMealRate(ctx, mess.ID, member.Email, "2026-01-01", "2026-01-31")
	mustDo("RangeMealRate", err)
	if math.Abs(ranged.MealRate-20) > epsilon {
		t.Errorf("range meal rate = %v, want 20", ranged.MealRate)
	}

	_, err = env.ledger.RangeMealRate(ctx, mess.ID, member.Email, "not-a-date", "2026-01-31")
	wantKind(t, err, KindValidation)
}

func TestDebtRequestFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	// Alice (receiver) asks Bob (payer) to acknowledge 150.
	req, err := env.ledger.SubmitDebtRequest(ctx, mess.ID, manager.Email, member.ID, 150, "2026-01-15")
	if err != nil {
		t.Fatalf("SubmitDebtRequest failed: %v", err)
	}

	// Only the payer may respond.
	_, err = env.ledger.AcceptDebtRequest(ctx, mess.ID, manager.Email, req.ID)
	wantKind(t, err, KindForbidden)

	debt, err := env.ledger.AcceptDebtRequest(ctx, mess.ID, member.Email, req.ID)
	if err != nil {
		t.Fatalf("AcceptDebtRequest failed: %v", err)
	}
	if math.Abs(debt.Amount-150) > epsilon {
		t.Errorf("debt amount = %v, want 150", debt.Amount)
	}

	// Settlement injected two offsetting deposits.
	deposits, err := env.ledger.ListDeposits(ctx, mess.ID, member.Email)
	if err != nil {
		t.Fatalf("ListDeposits failed: %v", err)
	}
	if len(deposits) != 2 {
		t.Fatalf("got %d deposits, want 2", len(deposits))
	}
	var sum float64
	for _, d := range deposits {
		sum += d.Amount
	}
	if sum != 0 {
		t.Errorf("settlement deposits sum = %v, want exactly 0", sum)
	}

	// Second accept and late deny are state conflicts.
	_, err = env.ledger.AcceptDebtRequest(ctx, mess.ID, member.Email, req.ID)
	wantKind(t, err, KindConflict)
	err = env.ledger.DenyDebtRequest(ctx, mess.ID, member.Email, req.ID)
	wantKind(t, err, KindConflict)

	debts, err := env.ledger.ListDebts(ctx, mess.ID, manager.Email)
	if err != nil {
		t.Fatalf("ListDebts failed: %v", err)
	}
	if len(debts) != 1 {
		t.Errorf("got %d debts, want 1", len(debts))
	}
}

func TestSubmitDebtRequest_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	// Cannot owe yourself.
	_, err := env.ledger.SubmitDebtRequest(ctx, mess.ID, manager.Email, manager.ID, 50, "2026-01-15")
	wantKind(t, err, KindValidation)

	_, err = env.ledger.SubmitDebtRequest(ctx, mess.ID, manager.Email, "", 50, "2026-01-15")
	wantKind(t, err, KindValidation)

	_, err = env.ledger.SubmitDebtRequest(ctx, mess.ID, manager.Email, member.ID, -50, "2026-01-15")
	wantKind(t, err, KindValidation)

	_, err = env.ledger.SubmitDebtRequest(ctx, mess.ID, manager.Email, "no-such-member", 50, "2026-01-15")
	wantKind(t, err, KindNotFound)
}

func TestDenyDebtRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	req, err := env.ledger.SubmitDebtRequest(ctx, mess.ID, manager.Email, member.ID, 75, "2026-01-15")
	if err != nil {
		t.Fatalf("SubmitDebtRequest failed: %v", err)
	}

	if err := env.ledger.DenyDebtRequest(ctx, mess.ID, member.Email, req.ID); err != nil {
		t.Fatalf("DenyDebtRequest failed: %v", err)
	}

	// Denial leaves the ledger untouched.
	deposits, err := env.ledger.ListDeposits(ctx, mess.ID, member.Email)
	if err != nil {
		t.Fatalf("ListDeposits failed: %v", err)
	}
	if len(deposits) != 0 {
		t.Errorf("got %d deposits after deny, want 0", len(deposits))
	}

	// A denied request cannot be accepted afterwards.
	_, err = env.ledger.AcceptDebtRequest(ctx, mess.ID, member.Email, req.ID)
	wantKind(t, err, KindConflict)
}

func TestAddMealCount_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, _, member := env.newMess(t)

	_, err := env.ledger.AddMealCount(ctx, mess.ID, member.Email, "", "2026-01-10", -1, 0, 0)
	wantKind(t, err, KindValidation)

	meal, err := env.ledger.AddMealCount(ctx, mess.ID, member.Email, "", "2026-01-10", 1, 2, 1)
	if err != nil {
		t.Fatalf("AddMealCount failed: %v", err)
	}
	if meal.Total != 4 {
		t.Errorf("total = %d, want 4", meal.Total)
	}
}
