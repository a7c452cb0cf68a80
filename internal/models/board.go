package models

// TaskStatus is the completion state of a household task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Task is a household chore assigned to a member by name.
type Task struct {
	// ID is the unique identifier for the task (UUID format).
	ID string

	// MessID is the mess this task belongs to.
	MessID string

	// Name describes the chore.
	Name string

	// AssignedTo is the display name of the responsible member.
	AssignedTo string

	// DueDate is the ISO date (YYYY-MM-DD) the task is due.
	DueDate string

	// Status is pending or completed.
	Status TaskStatus
}

// Notice is a message on the mess notice board.
type Notice struct {
	// ID is the unique identifier for the notice (UUID format).
	ID string

	// MessID is the mess this notice belongs to.
	MessID string

	// Message is the notice text.
	Message string

	// Author is the display name (or email) of the posting member.
	Author string

	// AuthorEmail identifies the posting user for delete authorization.
	AuthorEmail string

	// CreatedAt is the Unix timestamp when the notice was posted.
	CreatedAt int64
}

// Review is global app feedback. Reviews are the one record type not scoped
// to a mess.
type Review struct {
	// ID is the unique identifier for the review (UUID format).
	ID string

	// Author is the reviewer's display name.
	Author string

	// AuthorEmail identifies the reviewer for update/delete authorization.
	AuthorEmail string

	// Rating is 1 to 5.
	Rating int

	// Comment is the review text.
	Comment string

	// CreatedAt is the Unix timestamp when the review was posted.
	CreatedAt int64
}
