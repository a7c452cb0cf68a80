package service

import (
	"context"
	"testing"

	"github.com/arefin/messmate/internal/models"
)

func TestCreateMess_SeatsManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com", "Alice")

	mess, manager, err := env.mess.CreateMess(ctx, user.ID, "Flat 4B")
	if err != nil {
		t.Fatalf("CreateMess failed: %v", err)
	}
	if manager.Role != models.RoleManager {
		t.Errorf("creator role = %s, want %s", manager.Role, models.RoleManager)
	}
	if manager.MessID != mess.ID {
		t.Errorf("manager mess = %s, want %s", manager.MessID, mess.ID)
	}

	members, err := env.mess.ListMembers(ctx, mess.ID, user.Email)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("got %d members, want 1", len(members))
	}
}

func TestCreateMess_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com", "Alice")

	_, _, err := env.mess.CreateMess(ctx, user.ID, "")
	wantKind(t, err, KindValidation)

	_, _, err = env.mess.CreateMess(ctx, "no-such-user", "Flat 4B")
	wantKind(t, err, KindUnauthenticated)
}

func TestJoinMess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mgr := env.register(t, "alice@example.com", "Alice")
	usr := env.register(t, "bob@example.com", "Bob")

	mess, _, err := env.mess.CreateMess(ctx, mgr.ID, "Flat 4B")
	if err != nil {
		t.Fatalf("CreateMess failed: %v", err)
	}

	member, err := env.mess.JoinMess(ctx, usr.ID, mess.ID)
	if err != nil {
		t.Fatalf("JoinMess failed: %v", err)
	}
	if member.Role != models.RoleMember {
		t.Errorf("joiner role = %s, want %s", member.Role, models.RoleMember)
	}

	// Same user cannot hold two seats in one mess.
	_, err = env.mess.JoinMess(ctx, usr.ID, mess.ID)
	wantKind(t, err, KindConflict)

	_, err = env.mess.JoinMess(ctx, usr.ID, "no-such-mess")
	wantKind(t, err, KindNotFound)
}

func TestAddMember_ManagerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	_, err := env.mess.AddMember(ctx, mess.ID, member.Email, "Carol", "carol@example.com")
	wantKind(t, err, KindForbidden)

	added, err := env.mess.AddMember(ctx, mess.ID, manager.Email, "Carol", "carol@example.com")
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if added.Role != models.RoleMember {
		t.Errorf("added role = %s, want %s", added.Role, models.RoleMember)
	}

	// Duplicate email within the mess.
	_, err = env.mess.AddMember(ctx, mess.ID, manager.Email, "Carol Again", "carol@example.com")
	wantKind(t, err, KindConflict)
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	// Members cannot remove anyone.
	err := env.mess.RemoveMember(ctx, mess.ID, member.Email, manager.ID)
	wantKind(t, err, KindForbidden)

	// Managers cannot remove themselves.
	err = env.mess.RemoveMember(ctx, mess.ID, manager.Email, manager.ID)
	wantKind(t, err, KindForbidden)

	if err := env.mess.RemoveMember(ctx, mess.ID, manager.Email, member.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	err = env.mess.RemoveMember(ctx, mess.ID, manager.Email, member.ID)
	wantKind(t, err, KindNotFound)
}

func TestOutsiderIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, _, _ := env.newMess(t)
	env.register(t, "eve@example.com", "Eve")

	_, err := env.mess.ListMembers(ctx, mess.ID, "eve@example.com")
	wantKind(t, err, KindForbidden)

	_, err = env.ledger.Summary(ctx, mess.ID, "eve@example.com")
	wantKind(t, err, KindForbidden)
}
