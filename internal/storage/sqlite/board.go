package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage"
)

// ListTasks retrieves all tasks of a mess, latest due date first.
func (s *SQLiteStore) ListTasks(ctx context.Context, messID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, name, assigned_to, due_date, status
		 FROM tasks WHERE mess_id = ? ORDER BY due_date DESC`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.MessID, &t.Name, &t.AssignedTo, &t.DueDate, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// AddTask inserts a new task.
func (s *SQLiteStore) AddTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, mess_id, name, assigned_to, due_date, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.MessID, task.Name, task.AssignedTo, task.DueDate, task.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	return nil
}

// UpdateTaskStatus sets a task's completion state.
func (s *SQLiteStore) UpdateTaskStatus(ctx context.Context, messID, taskID string, status models.TaskStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ? WHERE mess_id = ? AND id = ?",
		status, messID, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return requireAffected(res, taskID)
}

// DeleteTask removes a task.
func (s *SQLiteStore) DeleteTask(ctx context.Context, messID, taskID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE mess_id = ? AND id = ?", messID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireAffected(res, taskID)
}

// ListNotices retrieves all notices of a mess, newest first.
func (s *SQLiteStore) ListNotices(ctx context.Context, messID string) ([]models.Notice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, message, author, author_email, created_at
		 FROM notices WHERE mess_id = ? ORDER BY created_at DESC`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	var notices []models.Notice
	for rows.Next() {
		var n models.Notice
		if err := rows.Scan(&n.ID, &n.MessID, &n.Message, &n.Author, &n.AuthorEmail, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notices: %w", err)
	}
	return notices, nil
}

// AddNotice inserts a new notice.
func (s *SQLiteStore) AddNotice(ctx context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.New().String()
	}
	if notice.CreatedAt == 0 {
		notice.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notices (id, mess_id, message, author, author_email, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		notice.ID, notice.MessID, notice.Message, notice.Author, notice.AuthorEmail, notice.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add notice: %w", err)
	}
	return nil
}

// GetNotice retrieves a notice by ID within a mess.
func (s *SQLiteStore) GetNotice(ctx context.Context, messID, noticeID string) (*models.Notice, error) {
	n := &models.Notice{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, mess_id, message, author, author_email, created_at
		 FROM notices WHERE mess_id = ? AND id = ?`,
		messID, noticeID,
	).Scan(&n.ID, &n.MessID, &n.Message, &n.Author, &n.AuthorEmail, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notice %s: %w", noticeID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}
	return n, nil
}

// DeleteNotice removes a notice.
func (s *SQLiteStore) DeleteNotice(ctx context.Context, messID, noticeID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM notices WHERE mess_id = ? AND id = ?", messID, noticeID)
	if err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	return requireAffected(res, noticeID)
}

// ListReviews retrieves all reviews, newest first. Reviews are global.
func (s *SQLiteStore) ListReviews(ctx context.Context) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author, author_email, rating, comment, created_at
		 FROM reviews ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.Author, &r.AuthorEmail, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return reviews, nil
}

// GetReview retrieves a review by ID.
func (s *SQLiteStore) GetReview(ctx context.Context, reviewID string) (*models.Review, error) {
	r := &models.Review{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, author, author_email, rating, comment, created_at
		 FROM reviews WHERE id = ?`,
		reviewID,
	).Scan(&r.ID, &r.Author, &r.AuthorEmail, &r.Rating, &r.Comment, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review %s: %w", reviewID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return r, nil
}

// AddReview inserts a new review.
func (s *SQLiteStore) AddReview(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt == 0 {
		review.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, author, author_email, rating, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		review.ID, review.Author, review.AuthorEmail, review.Rating, review.Comment, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	return nil
}

// UpdateReview rewrites a review's rating and comment.
func (s *SQLiteStore) UpdateReview(ctx context.Context, review *models.Review) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE reviews SET rating = ?, comment = ? WHERE id = ?",
		review.Rating, review.Comment, review.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return requireAffected(res, review.ID)
}

// DeleteReview removes a review.
func (s *SQLiteStore) DeleteReview(ctx context.Context, reviewID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return requireAffected(res, reviewID)
}
