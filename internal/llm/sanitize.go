package llm

import (
	"strings"

	"github.com/idworks/idscan/constants"
)

// Placeholder marks fields the model could not read.
const Placeholder = "N/A"

const passportIDLen = 9

// NormalizeRecord enforces the record invariants: passport numbers are
// reduced to their leading digits, and missing or blank fields become the
// literal placeholder.
func NormalizeRecord(r Record) Record {
	if r.IDType == constants.IDTypePassport {
		r.IDNumber = PassportDigits(r.IDNumber)
	}
	fields := []*string{
		&r.Filename, &r.IDType, &r.IDNumber,
		&r.FirstName, &r.LastName, &r.DOB, &r.PlaceOfBirth,
		&r.Address, &r.State, &r.Country, &r.Class, &r.Sex,
		&r.Height, &r.Weight, &r.Hair, &r.Eyes,
		&r.IssueDate, &r.ExpirationDate,
	}
	for _, f := range fields {
		if strings.TrimSpace(*f) == "" {
			*f = Placeholder
		}
	}
	return r
}

// PassportDigits keeps the digit-only subsequence of a raw passport number,
// in order, truncated to nine characters. Fewer than nine digits are kept
// unchanged.
func PassportDigits(id string) string {
	var b strings.Builder
	for _, ch := range id {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
			if b.Len() == passportIDLen {
				break
			}
		}
	}
	return b.String()
}
