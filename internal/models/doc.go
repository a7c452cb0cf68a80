// Package models defines the core domain models for MessMate.
//
// Every record except User and Review is scoped to a single mess (a household
// sharing communal meal and living costs). The mess ID is the tenancy boundary:
// no computation ever mixes records from two messes.
//
// # Model groups
//
//   - Identity: User (account), Mess (household), Member (a user's seat in a mess)
//   - Ledger inputs: Deposit, Expense, SharedExpense, MealCount, DebtRequest, Debt
//   - Board: Task, Notice
//   - Review: global app feedback, not mess-scoped
//
// # Design principles
//
//  1. Relationships use ID strings, never pointers, to avoid circular references.
//  2. Dates that participate in ledger arithmetic are canonical ISO strings
//     (YYYY-MM-DD) so lexical comparison equals chronological comparison.
//  3. Models carry no behavior beyond construction-time validation; all derived
//     values live in the ledger package.
package models
