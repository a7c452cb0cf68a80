package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage"
)

// ListMembers retrieves all members of a mess in join order.
func (s *SQLiteStore) ListMembers(ctx context.Context, messID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, name, email, role, join_date
		 FROM members WHERE mess_id = ? ORDER BY join_date, name`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.MessID, &m.Name, &m.Email, &m.Role, &m.JoinDate); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// AddMember inserts a new member. Emails are unique per mess.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinDate == "" {
		member.JoinDate = models.Today()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, mess_id, name, email, role, join_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, member.MessID, member.Name, member.Email, member.Role, member.JoinDate,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID within a mess.
func (s *SQLiteStore) GetMember(ctx context.Context, messID, memberID string) (*models.Member, error) {
	m := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, mess_id, name, email, role, join_date
		 FROM members WHERE mess_id = ? AND id = ?`,
		messID, memberID,
	).Scan(&m.ID, &m.MessID, &m.Name, &m.Email, &m.Role, &m.JoinDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// GetMemberByEmail resolves a user's seat in a mess. Returns (nil, nil) when
// the email is not a member.
func (s *SQLiteStore) GetMemberByEmail(ctx context.Context, messID, email string) (*models.Member, error) {
	m := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, mess_id, name, email, role, join_date
		 FROM members WHERE mess_id = ? AND email = ?`,
		messID, email,
	).Scan(&m.ID, &m.MessID, &m.Name, &m.Email, &m.Role, &m.JoinDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}
	return m, nil
}

// DeleteMember removes a member from a mess.
func (s *SQLiteStore) DeleteMember(ctx context.Context, messID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM members WHERE mess_id = ? AND id = ?", messID, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return requireAffected(res, memberID)
}

// requireAffected maps a zero-row result onto ErrNotFound.
func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
	}
	return nil
}
