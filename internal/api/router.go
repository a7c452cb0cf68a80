package api

import (
	"net/http"

	"github.com/arefin/messmate/internal/auth"
	"github.com/arefin/messmate/internal/middleware"
	"github.com/arefin/messmate/internal/service"
)

// API bundles the services behind the HTTP surface.
type API struct {
	Auth    *service.AuthService
	Mess    *service.MessService
	Ledger  *service.LedgerService
	Board   *service.BoardService
	Reviews *service.ReviewService
}

// Router assembles the /api/v1 routes. Everything except registration,
// login, and the review list requires a Bearer token.
func (a *API) Router(tokens *auth.JWTManager) *http.ServeMux {
	mux := http.NewServeMux()

	open := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, h)
	}
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireAuth(tokens, h))
	}

	open("POST /api/v1/auth/register", a.handleRegister)
	open("POST /api/v1/auth/login", a.handleLogin)

	protected("POST /api/v1/messes", a.handleCreateMess)
	protected("GET /api/v1/messes/{messID}", a.handleGetMess)
	protected("POST /api/v1/messes/{messID}/join", a.handleJoinMess)
	protected("GET /api/v1/messes/{messID}/members", a.handleListMembers)
	protected("POST /api/v1/messes/{messID}/members", a.handleAddMember)
	protected("DELETE /api/v1/messes/{messID}/members/{memberID}", a.handleRemoveMember)

	protected("GET /api/v1/messes/{messID}/summary", a.handleSummary)
	protected("GET /api/v1/messes/{messID}/balances", a.handleBalances)
	protected("GET /api/v1/messes/{messID}/meal-rate", a.handleRangeMealRate)

	protected("GET /api/v1/messes/{messID}/deposits", a.handleListDeposits)
	protected("POST /api/v1/messes/{messID}/deposits", a.handleAddDeposit)
	protected("PUT /api/v1/messes/{messID}/deposits/{id}", a.handleUpdateDeposit)
	protected("DELETE /api/v1/messes/{messID}/deposits/{id}", a.handleDeleteDeposit)

	protected("GET /api/v1/messes/{messID}/expenses", a.handleListExpenses)
	protected("POST /api/v1/messes/{messID}/expenses", a.handleAddExpense)
	protected("PUT /api/v1/messes/{messID}/expenses/{id}", a.handleUpdateExpense)
	protected("DELETE /api/v1/messes/{messID}/expenses/{id}", a.handleDeleteExpense)

	protected("GET /api/v1/messes/{messID}/shared-expenses", a.handleListSharedExpenses)
	protected("POST /api/v1/messes/{messID}/shared-expenses", a.handleAddSharedExpense)
	protected("PUT /api/v1/messes/{messID}/shared-expenses/{id}", a.handleUpdateSharedExpense)
	protected("DELETE /api/v1/messes/{messID}/shared-expenses/{id}", a.handleDeleteSharedExpense)

	protected("GET /api/v1/messes/{messID}/meal-counts", a.handleListMealCounts)
	protected("POST /api/v1/messes/{messID}/meal-counts", a.handleAddMealCount)
	protected("DELETE /api/v1/messes/{messID}/meal-counts/{id}", a.handleDeleteMealCount)

	protected("GET /api/v1/messes/{messID}/debt-requests", a.handleListDebtRequests)
	protected("POST /api/v1/messes/{messID}/debt-requests", a.handleSubmitDebtRequest)
	protected("POST /api/v1/messes/{messID}/debt-requests/{id}/accept", a.handleAcceptDebtRequest)
	protected("POST /api/v1/messes/{messID}/debt-requests/{id}/deny", a.handleDenyDebtRequest)
	protected("GET /api/v1/messes/{messID}/debts", a.handleListDebts)

	protected("GET /api/v1/messes/{messID}/tasks", a.handleListTasks)
	protected("POST /api/v1/messes/{messID}/tasks", a.handleAddTask)
	protected("PUT /api/v1/messes/{messID}/tasks/{id}/status", a.handleSetTaskStatus)
	protected("DELETE /api/v1/messes/{messID}/tasks/{id}", a.handleDeleteTask)

	protected("GET /api/v1/messes/{messID}/notices", a.handleListNotices)
	protected("POST /api/v1/messes/{messID}/notices", a.handleAddNotice)
	protected("DELETE /api/v1/messes/{messID}/notices/{id}", a.handleDeleteNotice)

	open("GET /api/v1/reviews", a.handleListReviews)
	protected("POST /api/v1/reviews", a.handleAddReview)
	protected("PUT /api/v1/reviews/{id}", a.handleUpdateReview)
	protected("DELETE /api/v1/reviews/{id}", a.handleDeleteReview)

	return mux
}
