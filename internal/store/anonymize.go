package store

import (
	"strings"
)

// Anonymize returns a copy of the record with personally identifying fields
// masked, for exports and reporting outside the recruitment team.
func Anonymize(r *Record) *Record {
	if r == nil {
		return nil
	}

	masked := *r
	masked.Profile.FullName = maskName(r.Profile.FullName)
	masked.Profile.Contact = maskContact(r.Profile.Contact)

	return &masked
}

func maskName(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return name
	case 1:
		return initial(parts[0])
	default:
		return initial(parts[0]) + " " + initial(parts[len(parts)-1])
	}
}

func initial(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	return string(runes[0]) + "***"
}

func maskContact(contact string) string {
	if at := strings.Index(contact, "@"); at > 0 {
		local := contact[:at]
		if len(local) > 2 {
			local = local[:2] + "***"
		}
		return local + contact[at:]
	}

	// Phone: keep only the last four digits visible.
	digits := make([]rune, 0, len(contact))
	for _, r := range contact {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		return "***-***-" + string(digits[len(digits)-4:])
	}
	return "***-***-****"
}
