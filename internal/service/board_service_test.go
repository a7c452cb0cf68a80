package service

import (
	"context"
	"testing"

	"github.com/arefin/messmate/internal/models"
)

func TestTaskLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	task, err := env.board.AddTask(ctx, mess.ID, member.Email, "Take out bins", "Bob", "2026-02-01")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.Status != models.TaskPending {
		t.Errorf("new task status = %s, want %s", task.Status, models.TaskPending)
	}

	if err := env.board.SetTaskStatus(ctx, mess.ID, member.Email, task.ID, models.TaskCompleted); err != nil {
		t.Fatalf("SetTaskStatus failed: %v", err)
	}
	err = env.board.SetTaskStatus(ctx, mess.ID, member.Email, task.ID, "in-progress")
	wantKind(t, err, KindValidation)

	// Deleting is a manager action.
	err = env.board.DeleteTask(ctx, mess.ID, member.Email, task.ID)
	wantKind(t, err, KindForbidden)
	if err := env.board.DeleteTask(ctx, mess.ID, manager.Email, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	tasks, err := env.board.ListTasks(ctx, mess.ID, member.Email)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks after delete, want 0", len(tasks))
	}
}

func TestNoticeAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mess, manager, member := env.newMess(t)

	notice, err := env.board.AddNotice(ctx, mess.ID, member.Email, "Rent due Friday")
	if err != nil {
		t.Fatalf("AddNotice failed: %v", err)
	}
	if notice.Author != member.Name {
		t.Errorf("author = %s, want %s", notice.Author, member.Name)
	}

	carol, err := env.mess.AddMember(ctx, mess.ID, manager.Email, "Carol", "carol@example.com")
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	// A third member can neither delete someone else's notice...
	err = env.board.DeleteNotice(ctx, mess.ID, carol.Email, notice.ID)
	wantKind(t, err, KindForbidden)

	// ...but the author can delete their own.
	if err := env.board.DeleteNotice(ctx, mess.ID, member.Email, notice.ID); err != nil {
		t.Fatalf("author DeleteNotice failed: %v", err)
	}

	// And a manager can delete anyone's.
	second, err := env.board.AddNotice(ctx, mess.ID, member.Email, "Movie night")
	if err != nil {
		t.Fatalf("AddNotice failed: %v", err)
	}
	if err := env.board.DeleteNotice(ctx, mess.ID, manager.Email, second.ID); err != nil {
		t.Fatalf("manager DeleteNotice failed: %v", err)
	}
}

func TestReviewAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice@example.com", "Alice")
	env.register(t, "bob@example.com", "Bob")

	_, err := env.review.AddReview(ctx, "alice@example.com", "Alice", 6, "too good")
	wantKind(t, err, KindValidation)

	review, err := env.review.AddReview(ctx, "alice@example.com", "Alice", 4, "works well")
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}

	err = env.review.UpdateReview(ctx, "bob@example.com", review.ID, 1, "hijacked")
	wantKind(t, err, KindForbidden)
	err = env.review.DeleteReview(ctx, "bob@example.com", review.ID)
	wantKind(t, err, KindForbidden)

	if err := env.review.UpdateReview(ctx, "alice@example.com", review.ID, 5, "even better"); err != nil {
		t.Fatalf("UpdateReview failed: %v", err)
	}

	reviews, err := env.review.ListReviews(ctx)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 5 {
		t.Fatalf("reviews = %+v, want one with rating 5", reviews)
	}

	if err := env.review.DeleteReview(ctx, "alice@example.com", review.ID); err != nil {
		t.Fatalf("DeleteReview failed: %v", err)
	}
}
