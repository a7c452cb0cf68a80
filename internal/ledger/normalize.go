package ledger

import "github.com/arefin/messmate/internal/models"

// NormalizeDeposits resolves legacy deposits that carry only a member email
// onto member IDs. Records imported from the local-storage era lack MemberID;
// rather than OR-matching on ID and email at every read, the fallback is
// applied once here and the rest of the engine matches on ID alone.
//
// The input slice is not modified. Deposits whose email matches no current
// member keep an empty MemberID: they still count toward household totals
// but toward no member's balance.
func NormalizeDeposits(deposits []models.Deposit, members []models.Member) []models.Deposit {
	byEmail := make(map[string]string, len(members))
	for _, m := range members {
		byEmail[m.Email] = m.ID
	}

	out := make([]models.Deposit, len(deposits))
	for i, d := range deposits {
		if d.MemberID == "" && d.MemberEmail != "" {
			d.MemberID = byEmail[d.MemberEmail]
		}
		out[i] = d
	}
	return out
}
