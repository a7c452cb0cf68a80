package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage"
)

const debtRequestColumns = `id, mess_id, from_id, from_name, from_email,
	to_id, to_name, to_email, amount, date, status`

// ListDebtRequests retrieves all debt requests of a mess, newest first.
func (s *SQLiteStore) ListDebtRequests(ctx context.Context, messID string) ([]models.DebtRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+debtRequestColumns+" FROM debt_requests WHERE mess_id = ? ORDER BY date DESC",
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt requests: %w", err)
	}
	defer rows.Close()

	var requests []models.DebtRequest
	for rows.Next() {
		var r models.DebtRequest
		if err := scanDebtRequest(rows.Scan, &r); err != nil {
			return nil, fmt.Errorf("failed to scan debt request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt requests: %w", err)
	}
	return requests, nil
}

// GetDebtRequest retrieves a debt request by ID within a mess.
func (s *SQLiteStore) GetDebtRequest(ctx context.Context, messID, requestID string) (*models.DebtRequest, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+debtRequestColumns+" FROM debt_requests WHERE mess_id = ? AND id = ?",
		messID, requestID,
	)
	var r models.DebtRequest
	err := scanDebtRequest(row.Scan, &r)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("debt request %s: %w", requestID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt request: %w", err)
	}
	return &r, nil
}

func scanDebtRequest(scan func(...any) error, r *models.DebtRequest) error {
	return scan(&r.ID, &r.MessID, &r.FromID, &r.FromName, &r.FromEmail,
		&r.ToID, &r.ToName, &r.ToEmail, &r.Amount, &r.Date, &r.Status)
}

// AddDebtRequest inserts a new pending debt request.
func (s *SQLiteStore) AddDebtRequest(ctx context.Context, request *models.DebtRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO debt_requests (`+debtRequestColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		request.ID, request.MessID, request.FromID, request.FromName, request.FromEmail,
		request.ToID, request.ToName, request.ToEmail, request.Amount, request.Date, request.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to add debt request: %w", err)
	}
	return nil
}

// SettleDebtRequest accepts a pending request and records its ledger effect
// in one transaction. The status transition is the guard: the UPDATE only
// matches while the request is still pending, so a concurrent second accept
// fails with ErrNotPending and writes nothing.
func (s *SQLiteStore) SettleDebtRequest(ctx context.Context, messID, requestID string, deposits [2]models.Deposit, debt models.Debt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := transitionDebtRequest(ctx, tx, messID, requestID, models.DebtAccepted); err != nil {
		return err
	}

	for _, d := range deposits {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO deposits (id, mess_id, member_id, member_name, member_email, amount, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.MessID, d.MemberID, d.MemberName, d.MemberEmail, d.Amount, d.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement deposit: %w", err)
		}
	}

	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO debts (id, mess_id, from_id, to_id, amount, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		debt.ID, debt.MessID, debt.FromID, debt.ToID, debt.Amount, debt.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}
	return nil
}

// DenyDebtRequest flips a pending request to denied.
func (s *SQLiteStore) DenyDebtRequest(ctx context.Context, messID, requestID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := transitionDebtRequest(ctx, tx, messID, requestID, models.DebtDenied); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit denial: %w", err)
	}
	return nil
}

// transitionDebtRequest moves a request out of pending. Zero rows affected
// means either the request does not exist or it already left pending.
func transitionDebtRequest(ctx context.Context, tx *sql.Tx, messID, requestID string, status models.DebtRequestStatus) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE debt_requests SET status = ? WHERE mess_id = ? AND id = ? AND status = ?",
		status, messID, requestID, models.DebtPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt request status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM debt_requests WHERE mess_id = ? AND id = ?",
			messID, requestID,
		).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("debt request %s: %w", requestID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check debt request existence: %w", err)
		}
		return storage.ErrNotPending
	}
	return nil
}

// ListDebts retrieves all settled debts of a mess, newest first.
func (s *SQLiteStore) ListDebts(ctx context.Context, messID string) ([]models.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, from_id, to_id, amount, date
		 FROM debts WHERE mess_id = ? ORDER BY date DESC`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.MessID, &d.FromID, &d.ToID, &d.Amount, &d.Date); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}
