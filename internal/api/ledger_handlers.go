package api

import "net/http"

type depositRequest struct {
	MemberID string  `json:"memberId,omitempty"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

type expenseRequest struct {
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	summary, err := a.Ledger.Summary(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleBalances(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	balances, err := a.Ledger.MemberBalances(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

func (a *API) handleRangeMealRate(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	q := r.URL.Query()
	summary, err := a.Ledger.RangeMealRate(r.Context(), r.PathValue("messID"), email, q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ==================== Deposits ====================

func (a *API) handleListDeposits(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	deposits, err := a.Ledger.ListDeposits(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deposits)
}

func (a *API) handleAddDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	deposit, err := a.Ledger.AddDeposit(r.Context(), r.PathValue("messID"), email, req.MemberID, req.Amount, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, deposit)
}

func (a *API) handleUpdateDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	if err := a.Ledger.UpdateDeposit(r.Context(), r.PathValue("messID"), email, r.PathValue("id"), req.Amount, req.Date); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleDeleteDeposit(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Ledger.DeleteDeposit(r.Context(), r.PathValue("messID"), email, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ==================== Expenses ====================

func (a *API) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	expenses, err := a.Ledger.ListExpenses(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (a *API) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	expense, err := a.Ledger.AddExpense(r.Context(), r.PathValue("messID"), email, req.Amount, req.Date, req.Description, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (a *API) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	if err := a.Ledger.UpdateExpense(r.Context(), r.PathValue("messID"), email, r.PathValue("id"), req.Amount, req.Date, req.Description, req.Category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Ledger.DeleteExpense(r.Context(), r.PathValue("messID"), email, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleListSharedExpenses(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	expenses, err := a.Ledger.ListSharedExpenses(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (a *API) handleAddSharedExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	expense, err := a.Ledger.AddSharedExpense(r.Context(), r.PathValue("messID"), email, req.Amount, req.Date, req.Description, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (a *API) handleUpdateSharedExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	if err := a.Ledger.UpdateSharedExpense(r.Context(), r.PathValue("messID"), email, r.PathValue("id"), req.Amount, req.Date, req.Description, req.Category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleDeleteSharedExpense(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Ledger.DeleteSharedExpense(r.Context(), r.PathValue("messID"), email, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ==================== Meal counts ====================

func (a *API) handleListMealCounts(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	meals, err := a.Ledger.ListMealCounts(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

func (a *API) handleAddMealCount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID  string `json:"memberId,omitempty"`
		Date      string `json:"date"`
		Breakfast int    `json:"breakfast"`
		Lunch     int    `json:"lunch"`
		Dinner    int    `json:"dinner"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	meal, err := a.Ledger.AddMealCount(r.Context(), r.PathValue("messID"), email, req.MemberID, req.Date, req.Breakfast, req.Lunch, req.Dinner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

func (a *API) handleDeleteMealCount(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Ledger.DeleteMealCount(r.Context(), r.PathValue("messID"), email, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ==================== Debt requests ====================

func (a *API) handleListDebtRequests(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	requests, err := a.Ledger.ListDebtRequests(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (a *API) handleSubmitDebtRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PayerID string  `json:"payerId"`
		Amount  float64 `json:"amount"`
		Date    string  `json:"date"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	request, err := a.Ledger.SubmitDebtRequest(r.Context(), r.PathValue("messID"), email, req.PayerID, req.Amount, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (a *API) handleAcceptDebtRequest(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	debt, err := a.Ledger.AcceptDebtRequest(r.Context(), r.PathValue("messID"), email, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debt)
}

func (a *API) handleDenyDebtRequest(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Ledger.DenyDebtRequest(r.Context(), r.PathValue("messID"), email, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleListDebts(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	debts, err := a.Ledger.ListDebts(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debts)
}
