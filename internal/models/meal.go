package models

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNegativeMeals is returned when a meal count is constructed with a
// negative breakfast, lunch, or dinner count.
var ErrNegativeMeals = errors.New("meal counts must be non-negative")

// MealCount records how many meal units a member consumed on a date.
// Total is always Breakfast + Lunch + Dinner; construct via NewMealCount
// to keep the invariant.
type MealCount struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	// MessID is the mess this record belongs to.
	MessID string

	// Date is the ISO date (YYYY-MM-DD) the meals were consumed.
	Date string

	// MemberID identifies the consuming member.
	MemberID string

	// MemberName is the member's display name at recording time.
	MemberName string

	// Breakfast, Lunch, and Dinner are per-slot meal-unit counts.
	Breakfast int
	Lunch     int
	Dinner    int

	// Total is Breakfast + Lunch + Dinner.
	Total int
}

// NewMealCount builds a meal count, enforcing non-negative slot counts and
// the Total invariant.
func NewMealCount(messID, memberID, memberName, date string, breakfast, lunch, dinner int) (*MealCount, error) {
	if breakfast < 0 || lunch < 0 || dinner < 0 {
		return nil, ErrNegativeMeals
	}
	return &MealCount{
		ID:         uuid.New().String(),
		MessID:     messID,
		Date:       date,
		MemberID:   memberID,
		MemberName: memberName,
		Breakfast:  breakfast,
		Lunch:      lunch,
		Dinner:     dinner,
		Total:      breakfast + lunch + dinner,
	}, nil
}
