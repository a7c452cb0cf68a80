package service

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/arefin/messmate/internal/ledger"
	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage"
)

// LedgerService exposes the financial ledger of a mess: raw records
// (deposits, expenses, meal counts), derived summaries, and the debt
// request / settlement flow. Communal records are manager-gated for writes;
// every read requires membership.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// snapshot loads the full ledger state of a mess in one place so derived
// views always see a consistent record set.
type snapshot struct {
	members  []models.Member
	expenses []models.Expense
	shared   []models.SharedExpense
	meals    []models.MealCount
	deposits []models.Deposit
}

func (s *LedgerService) loadSnapshot(ctx context.Context, messID string) (*snapshot, error) {
	snap := &snapshot{}
	var err error
	if snap.members, err = s.store.ListMembers(ctx, messID); err != nil {
		return nil, errInternal("failed to list members", err)
	}
	if snap.expenses, err = s.store.ListExpenses(ctx, messID); err != nil {
		return nil, errInternal("failed to list expenses", err)
	}
	if snap.shared, err = s.store.ListSharedExpenses(ctx, messID); err != nil {
		return nil, errInternal("failed to list shared expenses", err)
	}
	if snap.meals, err = s.store.ListMealCounts(ctx, messID); err != nil {
		return nil, errInternal("failed to list meal counts", err)
	}
	if snap.deposits, err = s.store.ListDeposits(ctx, messID); err != nil {
		return nil, errInternal("failed to list deposits", err)
	}
	return snap, nil
}

// Summary computes the household position for the mess.
func (s *LedgerService) Summary(ctx context.Context, messID, actorEmail string) (ledger.Summary, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return ledger.Summary{}, err
	}
	snap, err := s.loadSnapshot(ctx, messID)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.HouseholdSummary(snap.expenses, snap.shared, snap.meals, snap.deposits), nil
}

// MemberBalances computes the per-member balance table, ordered by roster.
func (s *LedgerService) MemberBalances(ctx context.Context, messID, actorEmail string) ([]ledger.MemberBalance, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(ctx, messID)
	if err != nil {
		return nil, err
	}
	return ledger.MemberSummaries(snap.members, snap.expenses, snap.shared, snap.meals, snap.deposits), nil
}

// RangeMealRate computes the meal rate over an inclusive date range.
func (s *LedgerService) RangeMealRate(ctx context.Context, messID, actorEmail, startDate, endDate string) (ledger.RangeSummary, error) {
	if !models.ValidDate(startDate) || !models.ValidDate(endDate) {
		return ledger.RangeSummary{}, errValidation("dates must be in YYYY-MM-DD form")
	}
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return ledger.RangeSummary{}, err
	}

	expenses, err := s.store.ListExpenses(ctx, messID)
	if err != nil {
		return ledger.RangeSummary{}, errInternal("failed to list expenses", err)
	}
	meals, err := s.store.ListMealCounts(ctx, messID)
	if err != nil {
		return ledger.RangeSummary{}, errInternal("failed to list meal counts", err)
	}
	return ledger.RangeMealRate(expenses, meals, startDate, endDate), nil
}

// ==================== Deposits ====================

// ListDeposits returns the mess deposits, legacy records normalized to
// member IDs.
func (s *LedgerService) ListDeposits(ctx context.Context, messID, actorEmail string) ([]models.Deposit, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	deposits, err := s.store.ListDeposits(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list deposits", err)
	}
	members, err := s.store.ListMembers(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list members", err)
	}
	return ledger.NormalizeDeposits(deposits, members), nil
}

// AddDeposit records a deposit. Members deposit for themselves; posting on
// behalf of another member requires the manager role.
func (s *LedgerService) AddDeposit(ctx context.Context, messID, actorEmail, memberID string, amount float64, date string) (*models.Deposit, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	actor, err := requireMember(ctx, s.store, messID, actorEmail)
	if err != nil {
		return nil, err
	}

	target := actor
	if memberID != "" && memberID != actor.ID {
		if actor.Role != models.RoleManager {
			return nil, errForbidden("only managers may deposit for another member")
		}
		target, err = s.store.GetMember(ctx, messID, memberID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, errNotFound(err)
			}
			return nil, errInternal("failed to load member", err)
		}
	}

	deposit := &models.Deposit{
		MessID:      messID,
		MemberID:    target.ID,
		MemberName:  target.Name,
		MemberEmail: target.Email,
		Amount:      amount,
		Date:        date,
	}
	if err := s.store.AddDeposit(ctx, deposit); err != nil {
		slog.Error("AddDeposit failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to add deposit", err)
	}
	slog.Info("deposit recorded", "mess_id", messID, "member_id", target.ID, "amount", amount)
	return deposit, nil
}

// UpdateDeposit changes a deposit's amount or date; manager only.
func (s *LedgerService) UpdateDeposit(ctx context.Context, messID, actorEmail, depositID string, amount float64, date string) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.UpdateDeposit(ctx, &models.Deposit{ID: depositID, MessID: messID, Amount: amount, Date: date})
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to update deposit", err)
	}
	return nil
}

// DeleteDeposit removes a deposit; manager only.
func (s *LedgerService) DeleteDeposit(ctx context.Context, messID, actorEmail, depositID string) error {
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.DeleteDeposit(ctx, messID, depositID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to delete deposit", err)
	}
	return nil
}

// ==================== Expenses ====================

// ListExpenses returns the meal-attributable expenses.
func (s *LedgerService) ListExpenses(ctx context.Context, messID, actorEmail string) ([]models.Expense, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list expenses", err)
	}
	return expenses, nil
}

// AddExpense records a meal-attributable expense; manager only.
func (s *LedgerService) AddExpense(ctx context.Context, messID, actorEmail string, amount float64, date, description, category string) (*models.Expense, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	expense := &models.Expense{
		MessID:      messID,
		Date:        date,
		Amount:      amount,
		Description: description,
		Category:    category,
	}
	if err := s.store.AddExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to add expense", err)
	}
	return expense, nil
}

// UpdateExpense rewrites an expense; manager only.
func (s *LedgerService) UpdateExpense(ctx context.Context, messID, actorEmail, expenseID string, amount float64, date, description, category string) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.UpdateExpense(ctx, &models.Expense{
		ID: expenseID, MessID: messID,
		Amount: amount, Date: date, Description: description, Category: category,
	})
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to update expense", err)
	}
	return nil
}

// DeleteExpense removes an expense; manager only.
func (s *LedgerService) DeleteExpense(ctx context.Context, messID, actorEmail, expenseID string) error {
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.DeleteExpense(ctx, messID, expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to delete expense", err)
	}
	return nil
}

// ListSharedExpenses returns the headcount-split expenses.
func (s *LedgerService) ListSharedExpenses(ctx context.Context, messID, actorEmail string) ([]models.SharedExpense, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListSharedExpenses(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list shared expenses", err)
	}
	return expenses, nil
}

// AddSharedExpense records a headcount-split expense; manager only.
func (s *LedgerService) AddSharedExpense(ctx context.Context, messID, actorEmail string, amount float64, date, description, category string) (*models.SharedExpense, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	expense := &models.SharedExpense{
		MessID:      messID,
		Date:        date,
		Amount:      amount,
		Description: description,
		Category:    category,
	}
	if err := s.store.AddSharedExpense(ctx, expense); err != nil {
		slog.Error("AddSharedExpense failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to add shared expense", err)
	}
	return expense, nil
}

// UpdateSharedExpense rewrites a shared expense; manager only.
func (s *LedgerService) UpdateSharedExpense(ctx context.Context, messID, actorEmail, expenseID string, amount float64, date, description, category string) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validateDate(date); err != nil {
		return err
	}
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.UpdateSharedExpense(ctx, &models.SharedExpense{
		ID: expenseID, MessID: messID,
		Amount: amount, Date: date, Description: description, Category: category,
	})
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to update shared expense", err)
	}
	return nil
}

// DeleteSharedExpense removes a shared expense; manager only.
func (s *LedgerService) DeleteSharedExpense(ctx context.Context, messID, actorEmail, expenseID string) error {
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.DeleteSharedExpense(ctx, messID, expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to delete shared expense", err)
	}
	return nil
}

// ==================== Meal counts ====================

// ListMealCounts returns the mess meal counts.
func (s *LedgerService) ListMealCounts(ctx context.Context, messID, actorEmail string) ([]models.MealCount, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	meals, err := s.store.ListMealCounts(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list meal counts", err)
	}
	return meals, nil
}

// AddMealCount records meal units for a member on a date. Members record
// their own meals; recording for someone else requires the manager role.
func (s *LedgerService) AddMealCount(ctx context.Context, messID, actorEmail, memberID, date string, breakfast, lunch, dinner int) (*models.MealCount, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	actor, err := requireMember(ctx, s.store, messID, actorEmail)
	if err != nil {
		return nil, err
	}

	target := actor
	if memberID != "" && memberID != actor.ID {
		if actor.Role != models.RoleManager {
			return nil, errForbidden("only managers may record meals for another member")
		}
		target, err = s.store.GetMember(ctx, messID, memberID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, errNotFound(err)
			}
			return nil, errInternal("failed to load member", err)
		}
	}

	meal, err := models.NewMealCount(messID, target.ID, target.Name, date, breakfast, lunch, dinner)
	if err != nil {
		return nil, errValidation("%v", err)
	}
	if err := s.store.AddMealCount(ctx, meal); err != nil {
		slog.Error("AddMealCount failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to add meal count", err)
	}
	return meal, nil
}

// DeleteMealCount removes a meal-count record; manager only.
func (s *LedgerService) DeleteMealCount(ctx context.Context, messID, actorEmail, mealCountID string) error {
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.DeleteMealCount(ctx, messID, mealCountID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to delete meal count", err)
	}
	return nil
}

// ==================== Debt requests ====================

// SubmitDebtRequest raises a pending request: the acting member (receiver)
// asks the payer to acknowledge owing the amount.
func (s *LedgerService) SubmitDebtRequest(ctx context.Context, messID, actorEmail, payerID string, amount float64, date string) (*models.DebtRequest, error) {
	actor, err := requireMember(ctx, s.store, messID, actorEmail)
	if err != nil {
		return nil, err
	}
	if payerID == "" {
		return nil, errValidation("%v", ledger.ErrNoPayer)
	}

	payer, err := s.store.GetMember(ctx, messID, payerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errNotFound(err)
		}
		return nil, errInternal("failed to load payer", err)
	}

	req, err := ledger.NewDebtRequest(*payer, *actor, amount, date)
	if err != nil {
		return nil, errValidation("%v", err)
	}
	if err := s.store.AddDebtRequest(ctx, req); err != nil {
		slog.Error("SubmitDebtRequest failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to submit debt request", err)
	}
	slog.Info("debt request submitted", "mess_id", messID, "request_id", req.ID, "amount", amount)
	return req, nil
}

// AcceptDebtRequest settles a pending request; only the payer may accept.
// The settlement writes are atomic: flipping the status, the two offsetting
// deposits, and the debt record all land or none do.
func (s *LedgerService) AcceptDebtRequest(ctx context.Context, messID, actorEmail, requestID string) (*models.Debt, error) {
	actor, err := requireMember(ctx, s.store, messID, actorEmail)
	if err != nil {
		return nil, err
	}

	req, err := s.store.GetDebtRequest(ctx, messID, requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errNotFound(err)
		}
		return nil, errInternal("failed to load debt request", err)
	}
	if req.FromID != actor.ID {
		return nil, errForbidden("only the payer may accept a debt request")
	}

	plan, err := ledger.Settle(*req)
	if err != nil {
		if errors.Is(err, ledger.ErrNotPending) {
			return nil, errConflict(err)
		}
		return nil, errValidation("%v", err)
	}

	if err := s.store.SettleDebtRequest(ctx, messID, requestID, plan.Deposits, plan.Debt); err != nil {
		if errors.Is(err, storage.ErrNotPending) {
			return nil, errConflict(err)
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errNotFound(err)
		}
		slog.Error("AcceptDebtRequest failed", "mess_id", messID, "request_id", requestID, "error", err)
		return nil, errInternal("failed to settle debt request", err)
	}

	slog.Info("debt request settled", "mess_id", messID, "request_id", requestID, "debt_id", plan.Debt.ID)
	return &plan.Debt, nil
}

// DenyDebtRequest refuses a pending request; only the payer may deny.
func (s *LedgerService) DenyDebtRequest(ctx context.Context, messID, actorEmail, requestID string) error {
	actor, err := requireMember(ctx, s.store, messID, actorEmail)
	if err != nil {
		return err
	}

	req, err := s.store.GetDebtRequest(ctx, messID, requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		return errInternal("failed to load debt request", err)
	}
	if req.FromID != actor.ID {
		return errForbidden("only the payer may deny a debt request")
	}

	if err := s.store.DenyDebtRequest(ctx, messID, requestID); err != nil {
		if errors.Is(err, storage.ErrNotPending) {
			return errConflict(err)
		}
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		return errInternal("failed to deny debt request", err)
	}

	slog.Info("debt request denied", "mess_id", messID, "request_id", requestID)
	return nil
}

// ListDebtRequests returns the mess debt requests, all states.
func (s *LedgerService) ListDebtRequests(ctx context.Context, messID, actorEmail string) ([]models.DebtRequest, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	requests, err := s.store.ListDebtRequests(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list debt requests", err)
	}
	return requests, nil
}

// ListDebts returns the settled-debt records.
func (s *LedgerService) ListDebts(ctx context.Context, messID, actorEmail string) ([]models.Debt, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	debts, err := s.store.ListDebts(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list debts", err)
	}
	return debts, nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return errValidation("amount must be a positive, finite number")
	}
	return nil
}

func validateDate(date string) error {
	if !models.ValidDate(date) {
		return errValidation("date must be in YYYY-MM-DD form")
	}
	return nil
}
