// Package ledger computes derived financial positions for one mess from
// snapshots of its raw records. Every function is pure: it holds no state
// between calls, performs no I/O, and is re-evaluated from scratch on each
// read. Callers fetch the snapshot lists from storage and pass them in.
package ledger

import (
	"github.com/arefin/messmate/internal/models"
)

// Summary is the household-level financial position.
type Summary struct {
	// TotalMealCost is the sum of all meal-attributable expenses.
	TotalMealCost float64
	// TotalSharedCost is the sum of all headcount-split expenses.
	TotalSharedCost float64
	// TotalCost is TotalMealCost + TotalSharedCost.
	TotalCost float64
	// TotalMealUnits is the sum of all recorded meal units.
	TotalMealUnits int
	// MealRate is the household-wide cost per meal unit:
	// TotalMealCost / TotalMealUnits, or 0 when no meals are recorded.
	MealRate float64
	// TotalDeposits is the signed sum of all deposits, settlement offsets
	// included.
	TotalDeposits float64
	// RemainingBalance is TotalDeposits - TotalCost.
	RemainingBalance float64
}

// MemberBalance is one member's share of the household position.
type MemberBalance struct {
	MemberID   string
	MemberName string
	// MealUnits is the member's total recorded meal units.
	MealUnits int
	// MealCost is MealUnits * the household meal rate.
	MealCost float64
	// SharedCost is the equal headcount split of shared expenses; the same
	// for every member regardless of meal consumption.
	SharedCost float64
	// TotalCost is MealCost + SharedCost.
	TotalCost float64
	// DepositTotal is the signed sum of the member's deposits.
	DepositTotal float64
	// Remaining is DepositTotal - TotalCost.
	Remaining float64
}

// RangeSummary is the meal rate restricted to an inclusive date range.
type RangeSummary struct {
	TotalExpenses float64
	TotalMeals    int
	MealRate      float64
}

// HouseholdSummary computes the household position from full snapshots.
// Empty inputs yield an all-zero summary; the meal rate guard avoids
// division by zero.
func HouseholdSummary(expenses []models.Expense, shared []models.SharedExpense, meals []models.MealCount, deposits []models.Deposit) Summary {
	var s Summary
	for _, e := range expenses {
		s.TotalMealCost += e.Amount
	}
	for _, e := range shared {
		s.TotalSharedCost += e.Amount
	}
	for _, m := range meals {
		s.TotalMealUnits += m.Total
	}
	for _, d := range deposits {
		s.TotalDeposits += d.Amount
	}
	s.TotalCost = s.TotalMealCost + s.TotalSharedCost
	if s.TotalMealUnits > 0 {
		s.MealRate = s.TotalMealCost / float64(s.TotalMealUnits)
	}
	s.RemainingBalance = s.TotalDeposits - s.TotalCost
	return s
}

// PerMemberSharedCost is the equal headcount split of the shared-expense
// total. Zero when the mess has no members.
func PerMemberSharedCost(totalShared float64, memberCount int) float64 {
	if memberCount <= 0 {
		return 0
	}
	return totalShared / float64(memberCount)
}

// MemberSummary computes one member's balance given the already-derived
// household meal rate and per-member shared cost. Deposits must be
// normalized (see NormalizeDeposits) so that matching is by member ID.
func MemberSummary(member models.Member, meals []models.MealCount, mealRate, perMemberShared float64, deposits []models.Deposit) MemberBalance {
	b := MemberBalance{
		MemberID:   member.ID,
		MemberName: member.Name,
		SharedCost: perMemberShared,
	}
	for _, m := range meals {
		if m.MemberID == member.ID {
			b.MealUnits += m.Total
		}
	}
	b.MealCost = float64(b.MealUnits) * mealRate
	b.TotalCost = b.MealCost + b.SharedCost
	for _, d := range deposits {
		if d.MemberID == member.ID {
			b.DepositTotal += d.Amount
		}
	}
	b.Remaining = b.DepositTotal - b.TotalCost
	return b
}

// MemberSummaries derives the per-member balance table for a full snapshot.
// Output order matches the member list order, so callers get deterministic
// tables. Legacy deposits lacking a member ID are normalized by email first.
func MemberSummaries(members []models.Member, expenses []models.Expense, shared []models.SharedExpense, meals []models.MealCount, deposits []models.Deposit) []MemberBalance {
	household := HouseholdSummary(expenses, shared, meals, deposits)
	perShared := PerMemberSharedCost(household.TotalSharedCost, len(members))
	normalized := NormalizeDeposits(deposits, members)

	balances := make([]MemberBalance, len(members))
	for i, m := range members {
		balances[i] = MemberSummary(m, meals, household.MealRate, perShared, normalized)
	}
	return balances
}

// RangeMealRate computes the meal rate over an inclusive [startDate, endDate]
// window. Dates are canonical YYYY-MM-DD strings, so the filter is a lexical
// comparison. A reversed range filters everything out and yields zeros.
func RangeMealRate(expenses []models.Expense, meals []models.MealCount, startDate, endDate string) RangeSummary {
	var r RangeSummary
	for _, e := range expenses {
		if e.Date >= startDate && e.Date <= endDate {
			r.TotalExpenses += e.Amount
		}
	}
	for _, m := range meals {
		if m.Date >= startDate && m.Date <= endDate {
			r.TotalMeals += m.Total
		}
	}
	if r.TotalMeals > 0 {
		r.MealRate = r.TotalExpenses / float64(r.TotalMeals)
	}
	return r
}
