package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/arefin/messmate/internal/models"
)

// ListDeposits retrieves all deposits of a mess, newest first.
func (s *SQLiteStore) ListDeposits(ctx context.Context, messID string) ([]models.Deposit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, member_id, member_name, member_email, amount, date
		 FROM deposits WHERE mess_id = ? ORDER BY date DESC`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	defer rows.Close()

	var deposits []models.Deposit
	for rows.Next() {
		var d models.Deposit
		if err := rows.Scan(&d.ID, &d.MessID, &d.MemberID, &d.MemberName, &d.MemberEmail, &d.Amount, &d.Date); err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deposits: %w", err)
	}
	return deposits, nil
}

// AddDeposit inserts a new deposit.
func (s *SQLiteStore) AddDeposit(ctx context.Context, deposit *models.Deposit) error {
	if deposit.ID == "" {
		deposit.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deposits (id, mess_id, member_id, member_name, member_email, amount, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		deposit.ID, deposit.MessID, deposit.MemberID, deposit.MemberName,
		deposit.MemberEmail, deposit.Amount, deposit.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to add deposit: %w", err)
	}
	return nil
}

// UpdateDeposit rewrites a deposit's amount and date.
func (s *SQLiteStore) UpdateDeposit(ctx context.Context, deposit *models.Deposit) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE deposits SET amount = ?, date = ? WHERE mess_id = ? AND id = ?",
		deposit.Amount, deposit.Date, deposit.MessID, deposit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}
	return requireAffected(res, deposit.ID)
}

// DeleteDeposit removes a deposit.
func (s *SQLiteStore) DeleteDeposit(ctx context.Context, messID, depositID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM deposits WHERE mess_id = ? AND id = ?", messID, depositID)
	if err != nil {
		return fmt.Errorf("failed to delete deposit: %w", err)
	}
	return requireAffected(res, depositID)
}

// ListExpenses retrieves all meal expenses of a mess, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, messID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, date, amount, description, category
		 FROM expenses WHERE mess_id = ? ORDER BY date DESC`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.MessID, &e.Date, &e.Amount, &e.Description, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// AddExpense inserts a new meal expense.
func (s *SQLiteStore) AddExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, mess_id, date, amount, description, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.MessID, expense.Date, expense.Amount, expense.Description, expense.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}
	return nil
}

// UpdateExpense rewrites an expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET date = ?, amount = ?, description = ?, category = ?
		 WHERE mess_id = ? AND id = ?`,
		expense.Date, expense.Amount, expense.Description, expense.Category,
		expense.MessID, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return requireAffected(res, expense.ID)
}

// DeleteExpense removes a meal expense.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, messID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE mess_id = ? AND id = ?", messID, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(res, expenseID)
}

// ListSharedExpenses retrieves all shared expenses of a mess, newest first.
func (s *SQLiteStore) ListSharedExpenses(ctx context.Context, messID string) ([]models.SharedExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, date, amount, description, category
		 FROM shared_expenses WHERE mess_id = ? ORDER BY date DESC`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.SharedExpense
	for rows.Next() {
		var e models.SharedExpense
		if err := rows.Scan(&e.ID, &e.MessID, &e.Date, &e.Amount, &e.Description, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan shared expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shared expenses: %w", err)
	}
	return expenses, nil
}

// AddSharedExpense inserts a new shared expense.
func (s *SQLiteStore) AddSharedExpense(ctx context.Context, expense *models.SharedExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shared_expenses (id, mess_id, date, amount, description, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.MessID, expense.Date, expense.Amount, expense.Description, expense.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to add shared expense: %w", err)
	}
	return nil
}

// UpdateSharedExpense rewrites a shared expense.
func (s *SQLiteStore) UpdateSharedExpense(ctx context.Context, expense *models.SharedExpense) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shared_expenses SET date = ?, amount = ?, description = ?, category = ?
		 WHERE mess_id = ? AND id = ?`,
		expense.Date, expense.Amount, expense.Description, expense.Category,
		expense.MessID, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shared expense: %w", err)
	}
	return requireAffected(res, expense.ID)
}

// DeleteSharedExpense removes a shared expense.
func (s *SQLiteStore) DeleteSharedExpense(ctx context.Context, messID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM shared_expenses WHERE mess_id = ? AND id = ?", messID, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete shared expense: %w", err)
	}
	return requireAffected(res, expenseID)
}

// ListMealCounts retrieves all meal counts of a mess, newest first.
func (s *SQLiteStore) ListMealCounts(ctx context.Context, messID string) ([]models.MealCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, date, member_id, member_name, breakfast, lunch, dinner, total
		 FROM meal_counts WHERE mess_id = ? ORDER BY date DESC`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal counts: %w", err)
	}
	defer rows.Close()

	var counts []models.MealCount
	for rows.Next() {
		var m models.MealCount
		if err := rows.Scan(&m.ID, &m.MessID, &m.Date, &m.MemberID, &m.MemberName,
			&m.Breakfast, &m.Lunch, &m.Dinner, &m.Total); err != nil {
			return nil, fmt.Errorf("failed to scan meal count: %w", err)
		}
		counts = append(counts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal counts: %w", err)
	}
	return counts, nil
}

// AddMealCount inserts a new meal count.
func (s *SQLiteStore) AddMealCount(ctx context.Context, mealCount *models.MealCount) error {
	if mealCount.ID == "" {
		mealCount.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meal_counts (id, mess_id, date, member_id, member_name, breakfast, lunch, dinner, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mealCount.ID, mealCount.MessID, mealCount.Date, mealCount.MemberID, mealCount.MemberName,
		mealCount.Breakfast, mealCount.Lunch, mealCount.Dinner, mealCount.Total,
	)
	if err != nil {
		return fmt.Errorf("failed to add meal count: %w", err)
	}
	return nil
}

// DeleteMealCount removes a meal count.
func (s *SQLiteStore) DeleteMealCount(ctx context.Context, messID, mealCountID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM meal_counts WHERE mess_id = ? AND id = ?", messID, mealCountID)
	if err != nil {
		return fmt.Errorf("failed to delete meal count: %w", err)
	}
	return requireAffected(res, mealCountID)
}
