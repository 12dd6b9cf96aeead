package interview

import (
	"fmt"
	"strings"

	"github.com/talentscout/screener/internal/questions"
)

const maxTechStackSize = 10

// Answer records the candidate's reply to one question. Answers keep
// insertion order, which equals the order they were given in.
type Answer struct {
	Technology string `json:"technology"`
	Prompt     string `json:"prompt"`
	Text       string `json:"text"`
}

// State is the per-session conversation record. One State belongs to exactly
// one session; it is never shared and carries no references to other
// sessions. All mutation happens inside Engine.Advance, one turn at a time.
type State struct {
	ID             string           `json:"id"`
	Profile        CandidateProfile `json:"profile"`
	TechStack      []string         `json:"tech_stack,omitempty"`
	Questions      []questions.Item `json:"questions,omitempty"`
	Answers        []Answer         `json:"answers,omitempty"`
	Stage          Stage            `json:"stage"`
	Turns          int              `json:"turns"`
	Unintelligible int              `json:"-"`

	nextQuestion int
	persisted    bool
}

// NewState creates a fresh session record starting at the greeting stage.
func NewState(id string) *State {
	return &State{
		ID:      id,
		Profile: NewProfile(),
		Stage:   StageGreeting,
	}
}

// AnswerFor returns the recorded answer for a question identity.
func (s *State) AnswerFor(id questions.Identity) (string, bool) {
	for _, a := range s.Answers {
		if a.Technology == id.Technology && a.Prompt == id.Prompt {
			return a.Text, true
		}
	}
	return "", false
}

// PendingQuestion returns the question awaiting an answer.
func (s *State) PendingQuestion() (questions.Item, bool) {
	if s.nextQuestion < len(s.Questions) {
		return s.Questions[s.nextQuestion], true
	}
	return questions.Item{}, false
}

func (s *State) recordAnswer(text string) {
	item, ok := s.PendingQuestion()
	if !ok {
		return
	}
	s.Answers = append(s.Answers, Answer{
		Technology: item.Technology,
		Prompt:     item.Prompt,
		Text:       text,
	})
	s.nextQuestion++
}

// resetAssessment drops generated questions and recorded answers so the
// tech stack can be declared again.
func (s *State) resetAssessment() {
	s.Questions = nil
	s.Answers = nil
	s.nextQuestion = 0
}

// MarkPersisted flips the once-only persistence latch. It returns false when
// the snapshot was already handed to the persistence collaborator.
func (s *State) MarkPersisted() bool {
	if s.persisted {
		return false
	}
	s.persisted = true
	return true
}

// Summary renders the recap shown at the confirmation stage.
func (s *State) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", s.Profile.FullName)
	fmt.Fprintf(&b, "Contact: %s\n", s.Profile.Contact)
	if s.Profile.ExperienceYears >= 0 {
		fmt.Fprintf(&b, "Experience: %g years\n", s.Profile.ExperienceYears)
	}
	fmt.Fprintf(&b, "Desired role: %s\n", s.Profile.DesiredRole)
	fmt.Fprintf(&b, "Location: %s\n", s.Profile.Location)
	fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(s.TechStack, ", "))
	fmt.Fprintf(&b, "Questions answered: %d of %d", len(s.Answers), len(s.Questions))

	return b.String()
}

// ParseTechStack tokenizes one free-form utterance into an ordered,
// deduplicated, lower-cased technology list. Tokens shorter than two
// characters are dropped; the list is capped at ten entries.
func ParseTechStack(utterance string) []string {
	separators := []string{",", ";", "|", "\n", "/", " and ", " & "}

	tokens := []string{strings.ToLower(utterance)}
	for _, sep := range separators {
		var next []string
		for _, token := range tokens {
			next = append(next, strings.Split(token, sep)...)
		}
		tokens = next
	}

	stack := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if len(token) < 2 {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		stack = append(stack, token)
		if len(stack) == maxTechStackSize {
			break
		}
	}

	return stack
}
