package interview

import (
	"errors"
	"testing"
)

func TestCaptureName(t *testing.T) {
	cases := []struct {
		name      string
		utterance string
		want      string
		wantErr   bool
	}{
		{name: "full name", utterance: "John Doe", want: "John Doe"},
		{name: "name with noise", utterance: "John Doe here", want: "John Doe"},
		{name: "single capitalized word", utterance: "Madonna", want: "Madonna"},
		{name: "lowercase", utterance: "john doe", wantErr: true},
		{name: "digits", utterance: "12345", wantErr: true},
		{name: "empty", utterance: "   ", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := NewProfile()
			err := profile.Capture(FieldName, tc.utterance)

			if tc.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected a validation error, got %v", err)
				}
				if profile.FullName != "" {
					t.Fatalf("expected profile untouched, got %q", profile.FullName)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.FullName != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, profile.FullName)
			}
		})
	}
}

func TestCaptureContact(t *testing.T) {
	cases := []struct {
		name      string
		utterance string
		want      string
		wantErr   bool
	}{
		{name: "bare email", utterance: "jane@example.com", want: "jane@example.com"},
		{name: "email in a sentence", utterance: "you can write to jane@example.com.", want: "jane@example.com"},
		{name: "phone with separators", utterance: "+49 (30) 1234-5678", want: "+49 (30) 1234-5678"},
		{name: "too few digits", utterance: "12345", wantErr: true},
		{name: "not a contact", utterance: "just ping me", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := NewProfile()
			err := profile.Capture(FieldContact, tc.utterance)

			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, captured %q", profile.Contact)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.Contact != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, profile.Contact)
			}
		})
	}
}

func TestCaptureExperience(t *testing.T) {
	cases := []struct {
		name      string
		utterance string
		want      float64
		wantErr   bool
	}{
		{name: "plain number", utterance: "7", want: 7},
		{name: "number in a sentence", utterance: "around 3 years", want: 3},
		{name: "zero", utterance: "0", want: 0},
		{name: "fractional", utterance: "2.5 years", want: 2.5},
		{name: "out of range", utterance: "60 years", wantErr: true},
		{name: "no number", utterance: "a few", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := NewProfile()
			err := profile.Capture(FieldExperience, tc.utterance)

			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, captured %v", profile.ExperienceYears)
				}
				if profile.ExperienceYears != -1 {
					t.Fatalf("expected experience untouched, got %v", profile.ExperienceYears)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.ExperienceYears != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, profile.ExperienceYears)
			}
		})
	}
}

func TestNextMissingOrder(t *testing.T) {
	profile := NewProfile()

	expected := []ProfileField{FieldName, FieldContact, FieldExperience, FieldRole, FieldLocation}
	values := []string{"John Doe", "john@example.com", "4", "Backend Engineer", "Berlin"}

	for i, want := range expected {
		field, ok := profile.NextMissing()
		if !ok {
			t.Fatalf("expected a missing field at step %d", i)
		}
		if field != want {
			t.Fatalf("step %d: expected %s, got %s", i, want, field)
		}
		if err := profile.Capture(field, values[i]); err != nil {
			t.Fatalf("capturing %s: %v", field, err)
		}
	}

	if _, ok := profile.NextMissing(); ok {
		t.Fatal("expected no missing fields after full capture")
	}
	if err := profile.Validate(); err != nil {
		t.Fatalf("expected a valid profile: %v", err)
	}
}
