package interview

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProfileField identifies one collectable CandidateProfile field, in
// collection order.
type ProfileField string

const (
	FieldName       ProfileField = "full_name"
	FieldContact    ProfileField = "contact"
	FieldExperience ProfileField = "experience_years"
	FieldRole       ProfileField = "desired_role"
	FieldLocation   ProfileField = "location"
)

var fieldOrder = []ProfileField{FieldName, FieldContact, FieldExperience, FieldRole, FieldLocation}

// CandidateProfile holds the data collected during the profile stage. It is
// mutated one field at a time and never touched again once the session
// reaches the tech-stack stage.
type CandidateProfile struct {
	FullName string `json:"full_name" validate:"required"`
	// Contact is an email address or a phone number.
	Contact string `json:"contact" validate:"required"`
	// ExperienceYears is -1 until captured; captured values are >= 0.
	ExperienceYears float64 `json:"experience_years" validate:"gte=0"`
	DesiredRole     string  `json:"desired_role" validate:"required"`
	Location        string  `json:"location" validate:"required"`
}

// ValidationError reports a malformed profile field. It is always recovered
// locally with a re-prompt; it never terminates the session by itself.
type ValidationError struct {
	Field ProfileField
	Hint  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Hint)
}

var (
	validate = validator.New()

	phoneDigitsRE = regexp.MustCompile(`\D`)
	yearsRE       = regexp.MustCompile(`\d+(\.\d+)?`)
	emailTokenRE  = regexp.MustCompile(`\S+@\S+`)
)

// NewProfile returns an empty profile with experience marked as not yet
// captured.
func NewProfile() CandidateProfile {
	return CandidateProfile{ExperienceYears: -1}
}

// NextMissing returns the first field that still has to be collected.
func (p *CandidateProfile) NextMissing() (ProfileField, bool) {
	for _, field := range fieldOrder {
		if !p.filled(field) {
			return field, true
		}
	}
	return "", false
}

func (p *CandidateProfile) filled(field ProfileField) bool {
	switch field {
	case FieldName:
		return p.FullName != ""
	case FieldContact:
		return p.Contact != ""
	case FieldExperience:
		return p.ExperienceYears >= 0
	case FieldRole:
		return p.DesiredRole != ""
	case FieldLocation:
		return p.Location != ""
	}
	return false
}

// Capture extracts the given field from one free-form utterance and stores
// it. A *ValidationError is returned when the utterance does not contain a
// usable value; the profile is left unchanged in that case.
func (p *CandidateProfile) Capture(field ProfileField, utterance string) error {
	utterance = strings.TrimSpace(utterance)

	switch field {
	case FieldName:
		name, ok := extractName(utterance)
		if !ok {
			return &ValidationError{Field: field, Hint: "please give your full name, e.g. Jane Smith"}
		}
		p.FullName = name

	case FieldContact:
		contact, ok := extractContact(utterance)
		if !ok {
			return &ValidationError{Field: field, Hint: "please give a valid email address or phone number"}
		}
		p.Contact = contact

	case FieldExperience:
		years, ok := extractYears(utterance)
		if !ok {
			return &ValidationError{Field: field, Hint: "please give your experience in years as a number between 0 and 50"}
		}
		p.ExperienceYears = years

	case FieldRole:
		if utterance == "" {
			return &ValidationError{Field: field, Hint: "please name the position you are applying for"}
		}
		p.DesiredRole = utterance

	case FieldLocation:
		if utterance == "" {
			return &ValidationError{Field: field, Hint: "please give your current location (city, country)"}
		}
		p.Location = utterance

	default:
		return &ValidationError{Field: field, Hint: "unknown field"}
	}

	return nil
}

// Validate checks the completed profile as a whole.
func (p *CandidateProfile) Validate() error {
	return validate.Struct(p)
}

// extractName picks up to two capitalized words as the candidate name.
func extractName(text string) (string, bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", false
	}

	isNameWord := func(w string) bool {
		if w == "" || !isAlpha(w) {
			return false
		}
		return w[0] >= 'A' && w[0] <= 'Z'
	}

	if len(words) >= 2 && isNameWord(words[0]) && isNameWord(words[1]) {
		return words[0] + " " + words[1], true
	}
	if len(words) == 1 && isNameWord(words[0]) {
		return words[0], true
	}

	return "", false
}

// extractContact accepts an email token (checked with the validator email
// rule) or a phone number with 10 to 15 digits.
func extractContact(text string) (string, bool) {
	if token := emailTokenRE.FindString(text); token != "" {
		token = strings.Trim(token, ".,;")
		if validate.Var(token, "email") == nil {
			return token, true
		}
	}

	digits := phoneDigitsRE.ReplaceAllString(text, "")
	if len(digits) >= 10 && len(digits) <= 15 {
		return strings.TrimSpace(text), true
	}

	return "", false
}

func extractYears(text string) (float64, bool) {
	match := yearsRE.FindString(text)
	if match == "" {
		return 0, false
	}

	years, err := strconv.ParseFloat(match, 64)
	if err != nil || years < 0 || years > 50 {
		return 0, false
	}

	return years, true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return s != ""
}
