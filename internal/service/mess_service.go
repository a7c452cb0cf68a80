package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage"
)

// MessService manages messes and their membership.
type MessService struct {
	store storage.Store
}

// NewMessService creates a MessService with the given storage backend.
func NewMessService(store storage.Store) *MessService {
	return &MessService{store: store}
}

// CreateMess creates a mess and seats the creating user as its manager.
func (s *MessService) CreateMess(ctx context.Context, userID, name string) (*models.Mess, *models.Member, error) {
	if name == "" {
		return nil, nil, errValidation("mess name is required")
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, errInternal("failed to load user", err)
	}
	if user == nil {
		return nil, nil, errUnauthenticated(errors.New("unknown user"))
	}

	mess := &models.Mess{Name: name}
	if err := s.store.CreateMess(ctx, mess); err != nil {
		slog.Error("CreateMess failed", "error", err)
		return nil, nil, errInternal("failed to create mess", err)
	}

	manager := &models.Member{
		MessID:   mess.ID,
		Name:     user.DisplayName,
		Email:    user.Email,
		Role:     models.RoleManager,
		JoinDate: models.Today(),
	}
	if err := s.store.AddMember(ctx, manager); err != nil {
		slog.Error("CreateMess failed to seat manager", "mess_id", mess.ID, "error", err)
		return nil, nil, errInternal("failed to add manager", err)
	}

	slog.Info("mess created", "mess_id", mess.ID, "manager_id", manager.ID)
	return mess, manager, nil
}

// JoinMess seats the user in an existing mess as a regular member.
func (s *MessService) JoinMess(ctx context.Context, userID, messID string) (*models.Member, error) {
	if _, err := s.store.GetMess(ctx, messID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errNotFound(err)
		}
		return nil, errInternal("failed to load mess", err)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errInternal("failed to load user", err)
	}
	if user == nil {
		return nil, errUnauthenticated(errors.New("unknown user"))
	}

	member := &models.Member{
		MessID:   messID,
		Name:     user.DisplayName,
		Email:    user.Email,
		Role:     models.RoleMember,
		JoinDate: models.Today(),
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, errConflict(err)
		}
		slog.Error("JoinMess failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to join mess", err)
	}

	slog.Info("member joined", "mess_id", messID, "member_id", member.ID)
	return member, nil
}

// GetMess returns the mess by ID.
func (s *MessService) GetMess(ctx context.Context, messID string) (*models.Mess, error) {
	mess, err := s.store.GetMess(ctx, messID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errNotFound(err)
		}
		return nil, errInternal("failed to load mess", err)
	}
	return mess, nil
}

// ListMembers returns the mess roster; any member may call it.
func (s *MessService) ListMembers(ctx context.Context, messID, actorEmail string) ([]models.Member, error) {
	if _, err := s.requireMember(ctx, messID, actorEmail); err != nil {
		return nil, err
	}
	members, err := s.store.ListMembers(ctx, messID)
	if err != nil {
		return nil, errInternal("failed to list members", err)
	}
	return members, nil
}

// AddMember seats a new member directly; manager only. Typically used for
// housemates without their own account yet.
func (s *MessService) AddMember(ctx context.Context, messID, actorEmail, name, email string) (*models.Member, error) {
	if name == "" || email == "" {
		return nil, errValidation("member name and email are required")
	}
	if _, err := s.requireManager(ctx, messID, actorEmail); err != nil {
		return nil, err
	}

	member := &models.Member{
		MessID:   messID,
		Name:     name,
		Email:    email,
		Role:     models.RoleMember,
		JoinDate: models.Today(),
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, errConflict(err)
		}
		slog.Error("AddMember failed", "mess_id", messID, "error", err)
		return nil, errInternal("failed to add member", err)
	}

	slog.Info("member added", "mess_id", messID, "member_id", member.ID)
	return member, nil
}

// RemoveMember deletes a member's seat; manager only. Managers cannot
// remove themselves, so a mess never loses its last manager by accident.
func (s *MessService) RemoveMember(ctx context.Context, messID, actorEmail, memberID string) error {
	actor, err := s.requireManager(ctx, messID, actorEmail)
	if err != nil {
		return err
	}
	if actor.ID == memberID {
		return errForbidden("managers cannot remove themselves")
	}

	if err := s.store.DeleteMember(ctx, messID, memberID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound(err)
		}
		slog.Error("RemoveMember failed", "mess_id", messID, "member_id", memberID, "error", err)
		return errInternal("failed to remove member", err)
	}

	slog.Info("member removed", "mess_id", messID, "member_id", memberID)
	return nil
}

// requireMember resolves the acting user's seat in the mess, or forbidden.
func (s *MessService) requireMember(ctx context.Context, messID, email string) (*models.Member, error) {
	return requireMember(ctx, s.store, messID, email)
}

// requireManager resolves the acting user's seat and checks the manager role.
func (s *MessService) requireManager(ctx context.Context, messID, email string) (*models.Member, error) {
	return requireManager(ctx, s.store, messID, email)
}

func requireMember(ctx context.Context, store storage.Store, messID, email string) (*models.Member, error) {
	member, err := store.GetMemberByEmail(ctx, messID, email)
	if err != nil {
		return nil, errInternal("failed to resolve membership", err)
	}
	if member == nil {
		return nil, errForbidden("not a member of this mess")
	}
	return member, nil
}

func requireManager(ctx context.Context, store storage.Store, messID, email string) (*models.Member, error) {
	member, err := requireMember(ctx, store, messID, email)
	if err != nil {
		return nil, err
	}
	if member.Role != models.RoleManager {
		return nil, errForbidden("manager role required")
	}
	return member, nil
}
