package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/talentscout/screener/internal/interview"
)

func finalizedState(id string) *interview.State {
	st := interview.NewState(id)
	st.Profile.FullName = "Jane Smith"
	st.Profile.Contact = "jane.smith@example.com"
	st.Profile.ExperienceYears = 6
	st.Profile.DesiredRole = "Backend Engineer"
	st.Profile.Location = "Berlin, Germany"
	st.TechStack = []string{"go", "postgresql"}
	st.Answers = []interview.Answer{
		{Technology: "go", Prompt: "What is a goroutine?", Text: "a lightweight thread"},
	}
	st.Stage = interview.StageComplete
	st.Turns = 9
	return st
}

func TestStoreAppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "candidates.json")

	s, err := New(path)
	require.NoError(t, err)

	first, err := s.Append(finalizedState("session-1"))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, "session-1", first.SessionID)

	second, err := s.Append(finalizedState("session-2"))
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	// A fresh Store instance reads the same file.
	reopened, err := New(path)
	require.NoError(t, err)

	records, err := reopened.All()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "session-1", records[0].SessionID)
	require.Equal(t, "session-2", records[1].SessionID)
	require.Equal(t, "Jane Smith", records[0].Profile.FullName)
	require.Equal(t, []string{"go", "postgresql"}, records[0].TechStack)
	require.Len(t, records[0].Answers, 1)
}

func TestStoreRejectsUnfinishedSessions(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "candidates.json"))
	require.NoError(t, err)

	st := interview.NewState("session-1")

	_, err = s.Append(st)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not finalized")

	records, err := s.All()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestAnonymize(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "candidates.json"))
	require.NoError(t, err)

	record, err := s.Append(finalizedState("session-1"))
	require.NoError(t, err)

	masked := Anonymize(record)

	require.Equal(t, "J*** S***", masked.Profile.FullName)
	require.Equal(t, "ja***@example.com", masked.Profile.Contact)

	// The original record stays untouched.
	require.Equal(t, "Jane Smith", record.Profile.FullName)
	require.Equal(t, "jane.smith@example.com", record.Profile.Contact)
}

func TestAnonymizePhone(t *testing.T) {
	record := &Record{}
	record.Profile.FullName = "Madonna"
	record.Profile.Contact = "+49 30 1234 5678"

	masked := Anonymize(record)

	require.Equal(t, "M***", masked.Profile.FullName)
	require.Equal(t, "***-***-5678", masked.Profile.Contact)
}
