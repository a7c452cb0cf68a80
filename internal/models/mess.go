package models

// Role is a member's authorization level within a mess.
type Role string

const (
	// RoleManager may add/remove members and post communal financial records.
	RoleManager Role = "manager"
	// RoleMember is a regular participant.
	RoleMember Role = "member"
)

// Mess represents one household sharing communal costs. The mess ID is the
// tenancy boundary for all ledger data.
type Mess struct {
	// ID is the unique identifier for the mess (UUID format). Members join
	// an existing mess by quoting this ID.
	ID string

	// Name is the display name of the mess (e.g., "Flat 4B").
	Name string

	// CreatedAt is the Unix timestamp when the mess was created.
	CreatedAt int64
}

// Member is a user's seat in a mess. The first member (the creator) is the
// manager; everyone who joins afterwards is a regular member.
type Member struct {
	// ID is the unique identifier for the member record (UUID format).
	// Distinct from the user ID: the same user has a different member ID
	// in each mess they belong to.
	ID string

	// MessID is the mess this membership belongs to.
	MessID string

	// Name is the member's display name within the mess.
	Name string

	// Email identifies the underlying user account. Unique per mess.
	Email string

	// Role is manager or member.
	Role Role

	// JoinDate is the ISO date (YYYY-MM-DD) the member joined.
	JoinDate string
}
