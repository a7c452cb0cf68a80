package models

import "time"

// DateLayout is the canonical ISO date form for all ledger dates. Storing
// dates this way makes lexical string comparison equal chronological
// comparison, which the range-filter arithmetic relies on.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a canonical YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today returns the current date in canonical form.
func Today() string {
	return time.Now().Format(DateLayout)
}
