// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/arefin/messmate/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotPending is returned when a debt-request status transition is
	// attempted on a request that already left the pending state. The check
	// runs inside the store's transaction so concurrent settlement attempts
	// cannot both succeed.
	ErrNotPending = errors.New("debt request is not pending")

	// ErrDuplicateEmail is returned when a member with the same email
	// already exists in the mess.
	ErrDuplicateEmail = errors.New("a member with this email already exists")
)

// Store defines the persistence interface for one MessMate deployment.
// All list operations are scoped to a single mess except users and reviews,
// which are global. This abstraction allows swapping storage backends
// (SQLite, MongoDB) without changing the service layer.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns (nil, nil) when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns (nil, nil) when no user has the ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Messes
	CreateMess(ctx context.Context, mess *models.Mess) error
	GetMess(ctx context.Context, messID string) (*models.Mess, error)

	// Members
	ListMembers(ctx context.Context, messID string) ([]models.Member, error)
	AddMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, messID, memberID string) (*models.Member, error)
	// GetMemberByEmail returns (nil, nil) when the email has no seat in the
	// mess; it resolves the acting user's membership on every request.
	GetMemberByEmail(ctx context.Context, messID, email string) (*models.Member, error)
	DeleteMember(ctx context.Context, messID, memberID string) error

	// Deposits
	ListDeposits(ctx context.Context, messID string) ([]models.Deposit, error)
	AddDeposit(ctx context.Context, deposit *models.Deposit) error
	UpdateDeposit(ctx context.Context, deposit *models.Deposit) error
	DeleteDeposit(ctx context.Context, messID, depositID string) error

	// Expenses (meal-attributable)
	ListExpenses(ctx context.Context, messID string) ([]models.Expense, error)
	AddExpense(ctx context.Context, expense *models.Expense) error
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, messID, expenseID string) error

	// Shared expenses (headcount-split)
	ListSharedExpenses(ctx context.Context, messID string) ([]models.SharedExpense, error)
	AddSharedExpense(ctx context.Context, expense *models.SharedExpense) error
	UpdateSharedExpense(ctx context.Context, expense *models.SharedExpense) error
	DeleteSharedExpense(ctx context.Context, messID, expenseID string) error

	// Meal counts
	ListMealCounts(ctx context.Context, messID string) ([]models.MealCount, error)
	AddMealCount(ctx context.Context, mealCount *models.MealCount) error
	DeleteMealCount(ctx context.Context, messID, mealCountID string) error

	// Debt requests and settled debts
	ListDebtRequests(ctx context.Context, messID string) ([]models.DebtRequest, error)
	GetDebtRequest(ctx context.Context, messID, requestID string) (*models.DebtRequest, error)
	AddDebtRequest(ctx context.Context, request *models.DebtRequest) error
	// SettleDebtRequest atomically flips the request to accepted and records
	// the two offsetting deposits plus the debt. The transition is guarded
	// on the request still being pending: ErrNotPending otherwise, and the
	// ledger records are not written.
	SettleDebtRequest(ctx context.Context, messID, requestID string, deposits [2]models.Deposit, debt models.Debt) error
	// DenyDebtRequest flips the request to denied under the same
	// pending-only guard.
	DenyDebtRequest(ctx context.Context, messID, requestID string) error
	ListDebts(ctx context.Context, messID string) ([]models.Debt, error)

	// Tasks
	ListTasks(ctx context.Context, messID string) ([]models.Task, error)
	AddTask(ctx context.Context, task *models.Task) error
	UpdateTaskStatus(ctx context.Context, messID, taskID string, status models.TaskStatus) error
	DeleteTask(ctx context.Context, messID, taskID string) error

	// Notices
	ListNotices(ctx context.Context, messID string) ([]models.Notice, error)
	AddNotice(ctx context.Context, notice *models.Notice) error
	GetNotice(ctx context.Context, messID, noticeID string) (*models.Notice, error)
	DeleteNotice(ctx context.Context, messID, noticeID string) error

	// Reviews (global)
	ListReviews(ctx context.Context) ([]models.Review, error)
	GetReview(ctx context.Context, reviewID string) (*models.Review, error)
	AddReview(ctx context.Context, review *models.Review) error
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, reviewID string) error

	// Close releases any resources held by the store.
	Close() error
}
