// Package contact flags reference records whose phone, email or address
// exactly equals the search criteria. A contact match is certain: it
// maps straight to Tier 1 and is never re-scored or re-classified.
package contact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/conflictcheck/namecheck/model"
)

var (
	phoneStripRegex = regexp.MustCompile(`[\s\-().]`)
	addressPunct    = regexp.MustCompile(`[,.]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

func normalizePhone(phone string) string {
	return strings.ToLower(phoneStripRegex.ReplaceAllString(phone, ""))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeAddress(addr string) string {
	out := strings.ToLower(strings.TrimSpace(addr))
	out = addressPunct.ReplaceAllString(out, "")
	return whitespaceRegex.ReplaceAllString(out, " ")
}

// Match returns one ContactMatch per record whose contact details equal
// the criteria's, checking phone, then email, then address; the first
// hit wins, so a record contributes at most one match. Record order is
// preserved.
func Match(criteria model.SearchCriteria, records []model.ReferenceRecord) []model.ContactMatch {
	matches := make([]model.ContactMatch, 0)

	for _, record := range records {
		if criteria.PhoneNumber != "" && record.PhoneNumber != "" {
			searchPhone := normalizePhone(criteria.PhoneNumber)
			recordPhone := normalizePhone(record.PhoneNumber)
			if searchPhone != "" && searchPhone == recordPhone {
				matches = append(matches, model.ContactMatch{
					Name:         record.Name,
					MatchedField: model.FieldPhoneNumber,
					MatchedValue: record.PhoneNumber,
				})
				continue
			}
		}

		if criteria.Email != "" && record.Email != "" {
			searchEmail := normalizeEmail(criteria.Email)
			recordEmail := normalizeEmail(record.Email)
			if searchEmail != "" && searchEmail == recordEmail {
				matches = append(matches, model.ContactMatch{
					Name:         record.Name,
					MatchedField: model.FieldEmail,
					MatchedValue: record.Email,
				})
				continue
			}
		}

		if criteria.Address != "" && record.Address != "" {
			searchAddr := normalizeAddress(criteria.Address)
			recordAddr := normalizeAddress(record.Address)
			if searchAddr != "" && searchAddr == recordAddr {
				matches = append(matches, model.ContactMatch{
					Name:         record.Name,
					MatchedField: model.FieldAddress,
					MatchedValue: record.Address,
				})
			}
		}
	}

	return matches
}

// Justification renders the deterministic Tier 1 explanation for a
// contact match.
func Justification(m model.ContactMatch) string {
	return fmt.Sprintf("Exact %s match: %q", m.MatchedField, m.MatchedValue)
}
