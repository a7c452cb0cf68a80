package models

// Deposit represents money a member has put into the communal pool.
// Settlement of an accepted debt request injects two offsetting deposits
// (+amount for the receiver, -amount for the payer), so amounts are signed.
type Deposit struct {
	// ID is the unique identifier for the deposit (UUID format).
	ID string

	// MessID is the mess this deposit belongs to.
	MessID string

	// MemberID identifies the depositing member. May be empty on legacy
	// records, in which case MemberEmail identifies the member instead;
	// ledger.NormalizeDeposits resolves the fallback before any arithmetic.
	MemberID string

	// MemberName is the member's display name at the time of deposit.
	MemberName string

	// MemberEmail is the member's email at the time of deposit.
	MemberEmail string

	// Amount is the signed deposit amount.
	Amount float64

	// Date is the ISO date (YYYY-MM-DD) of the deposit.
	Date string
}

// Expense is a communal cost attributable to meals. It is consumed uniformly
// per meal-unit share: the household meal rate divides the sum of these by
// the total meal units.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// MessID is the mess this expense belongs to.
	MessID string

	// Date is the ISO date (YYYY-MM-DD) of the expense.
	Date string

	// Amount is the expense amount.
	Amount float64

	// Description says what was bought.
	Description string

	// Category is a free-form grouping label (e.g., "groceries").
	Category string
}

// SharedExpense is a communal cost split equally per member headcount,
// independent of meal consumption (e.g., rent, utilities).
type SharedExpense struct {
	// ID is the unique identifier for the shared expense (UUID format).
	ID string

	// MessID is the mess this shared expense belongs to.
	MessID string

	// Date is the ISO date (YYYY-MM-DD) of the expense.
	Date string

	// Amount is the expense amount.
	Amount float64

	// Description says what was paid for.
	Description string

	// Category is a free-form grouping label (e.g., "rent").
	Category string
}
