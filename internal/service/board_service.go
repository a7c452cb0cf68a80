package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage"
)

// BoardService covers the non-financial household surfaces: chore tasks and
// the notice board.
type BoardService struct {
	store storage.Store
}

// NewBoardService creates a BoardService with the given storage backend.
func NewBoardService(store storage.Store) *BoardService {
	return &BoardService{store: store}
}

// ListTasks returns the mess chore list.
func (s *BoardService) ListTasks(ctx context.Context, messID, actorEmail string) ([]models.Task, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasks(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list tasks", err)
	}
	return tasks, nil
}

// AddTask creates a pending chore; any member may assign one.
func (s *BoardService) AddTask(ctx context.Context, messID, actorEmail, name, assignedTo, dueDate string) (*models.Task, error) {
	if name == "" {
		return nil, errValidation("task name is required")
	}
	if err := validateDate(dueDate); err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}

	task := &models.Task{
		MessID:     messID,
		Name:       name,
		AssignedTo: assignedTo,
		DueDate:    dueDate,
		Status:     models.TaskPending,
	}
	if err := s.store.AddTask(ctx, task); err != nil {
		slog.Error("AddTask failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to add task", err)
	}
	return task, nil
}

// SetTaskStatus flips a task between pending and completed.
func (s *BoardService) SetTaskStatus(ctx context.Context, messID, actorEmail, taskID string, status models.TaskStatus) error {
	if status != models.TaskPending && status != models.TaskCompleted {
		return errValidation("status must be pending or completed")
	}
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.UpdateTaskStatus(ctx, messID, taskID, status)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to update task", err)
	}
	return nil
}

// DeleteTask removes a chore; manager only.
func (s *BoardService) DeleteTask(ctx context.Context, messID, actorEmail, taskID string) error {
	if _, err := requireManager(ctx, s.store, messID, actorEmail); err != nil {
		return err
	}
	err := s.store.DeleteTask(ctx, messID, taskID)
	if errors.Is(err, storage.ErrNotFound) {
		return errNotFound(err)
	}
	if err != nil {
		return errInternal("failed to delete task", err)
	}
	return nil
}

// ListNotices returns the notice board, newest first.
func (s *BoardService) ListNotices(ctx context.Context, messID, actorEmail string) ([]models.Notice, error) {
	if _, err := requireMember(ctx, s.store, messID, actorEmail); err != nil {
		return nil, err
	}
	notices, err := s.store.ListNotices(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list notices", err)
	}
	return notices, nil
}

// AddNotice posts a message; the acting member is the author.
func (s *BoardService) AddNotice(ctx context.Context, messID, actorEmail, message string) (*models.Notice, error) {
	if message == "" {
		return nil, errValidation("notice message is required")
	}
	actor, err := requireMember(ctx, s.store, messID, actorEmail)
	if err != nil {
		return nil, err
	}

	notice := &models.Notice{
		MessID:      messID,
		Message:     message,
		Author:      actor.Name,
		AuthorEmail: actor.Email,
	}
	if err := s.store.AddNotice(ctx, notice); err != nil {
		slog.Error("AddNotice failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to add notice", err)
	}
	return notice, nil
}

// DeleteNotice removes a notice. The author may delete their own; managers
// may delete any.
func (s *BoardService) DeleteNotice(ctx context.Context, messID, actorEmail, noticeID string) error {
	actor, err := requireMember(ctx, s.store, messID, actorEmail)
	if err != nil {
		return err
	}

	notice, err := s.store.GetNotice(ctx, messID, noticeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		return errInternal("failed to load notice", err)
	}
	if notice.AuthorEmail != actor.Email && actor.Role != models.RoleManager {
		return errForbidden("only the author or a manager may delete a notice")
	}

	if err := s.store.DeleteNotice(ctx, messID, noticeID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		return errInternal("failed to delete notice", err)
	}
	return nil
}
