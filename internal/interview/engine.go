package interview

import (
	"context"
	"errors"
	"strings"

	"github.com/talentscout/screener/internal/questions"
	"go.uber.org/zap"
)

// ErrSessionClosed is returned when Advance is called on a session that
// already reached a terminal stage. It signals a caller bug, not user input.
var ErrSessionClosed = errors.New("session is already closed")

// QuestionSource produces the bounded question set for a declared stack.
// Failures degrade inside the source; it never fails the turn.
type QuestionSource interface {
	Generate(ctx context.Context, stack []string, count int) []questions.Item
}

// Config tunes the engine's termination and generation policy.
type Config struct {
	// QuestionCount is the target number of questions per session.
	QuestionCount int `mapstructure:"question-count"`
	// MaxUnintelligibleTurns terminates the session once this many
	// consecutive turns fail to capture anything. No retry is offered.
	MaxUnintelligibleTurns int `mapstructure:"max-unintelligible-turns"`
	// ExitPhrases end the session when an utterance matches one of them
	// exactly (case-insensitive, trimmed).
	ExitPhrases []string `mapstructure:"exit-phrases"`
}

var defaultExitPhrases = []string{"bye", "goodbye", "exit", "quit", "stop", "end conversation"}

func (c Config) withDefaults() Config {
	if c.QuestionCount <= 0 {
		c.QuestionCount = questions.DefaultCount
	}
	if c.MaxUnintelligibleTurns <= 0 {
		c.MaxUnintelligibleTurns = 3
	}
	if len(c.ExitPhrases) == 0 {
		c.ExitPhrases = defaultExitPhrases
	}
	return c
}

// Engine is the conversation state machine. It owns no session state itself:
// the caller passes the State for each turn, so concurrent sessions stay
// isolated as long as each State is driven sequentially.
type Engine struct {
	source QuestionSource
	cfg    Config
	logger *zap.Logger
}

func NewEngine(source QuestionSource, cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		source: source,
		cfg:    cfg.withDefaults(),
		logger: log,
	}
}

// Greeting returns the opening message shown before the first utterance.
func (e *Engine) Greeting() string {
	return greetingMessage
}

// Advance consumes one utterance, mutates the state in place and returns the
// next outbound message. It never calls persistence or rendering; the caller
// does that after Advance returns. The only error is ErrSessionClosed.
func (e *Engine) Advance(ctx context.Context, st *State, utterance string) (string, error) {
	if st.Stage.Terminal() {
		return "", ErrSessionClosed
	}

	st.Turns++
	trimmed := strings.TrimSpace(utterance)

	// Exit intent short-circuits everything, regardless of stage.
	if e.isExitPhrase(trimmed) {
		e.terminate(st, "exit phrase")
		return exitMessage, nil
	}

	var msg string
	switch st.Stage {
	case StageGreeting:
		msg = e.advanceGreeting(st, trimmed)
	case StageCollectingProfile:
		msg = e.advanceProfile(st, trimmed)
	case StageCollectingTechStack:
		msg = e.advanceTechStack(ctx, st, trimmed)
	case StageAskingQuestions:
		msg = e.advanceQuestions(st, utterance)
	case StageConfirming:
		msg = e.advanceConfirming(st, trimmed)
	}

	e.logger.Debug("turn processed",
		zap.String("session_id", st.ID),
		zap.String("stage", string(st.Stage)),
		zap.Int("turn", st.Turns),
		zap.Int("unintelligible", st.Unintelligible),
	)

	return msg, nil
}

func (e *Engine) advanceGreeting(st *State, trimmed string) string {
	if trimmed == "" {
		if msg, aborted := e.unintelligible(st); aborted {
			return msg
		}
		return greetingMessage
	}

	st.Stage = StageCollectingProfile
	st.Unintelligible = 0

	// The opening reply usually is the candidate's name already.
	if err := st.Profile.Capture(FieldName, trimmed); err != nil {
		return promptFor(FieldName)
	}

	next, _ := st.Profile.NextMissing()
	return "Nice to meet you, " + st.Profile.FullName + "! " + promptFor(next)
}

func (e *Engine) advanceProfile(st *State, trimmed string) string {
	field, ok := st.Profile.NextMissing()
	if !ok {
		// All fields already captured; move on without consuming input.
		st.Stage = StageCollectingTechStack
		return techStackPrompt
	}

	if err := st.Profile.Capture(field, trimmed); err != nil {
		if msg, aborted := e.unintelligible(st); aborted {
			return msg
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			return "That doesn't look right: " + verr.Hint
		}
		return promptFor(field)
	}

	st.Unintelligible = 0

	next, ok := st.Profile.NextMissing()
	if !ok {
		st.Stage = StageCollectingTechStack
		return "Thank you! " + techStackPrompt
	}

	return promptFor(next)
}

func (e *Engine) advanceTechStack(ctx context.Context, st *State, trimmed string) string {
	stack := ParseTechStack(trimmed)
	if len(stack) == 0 {
		if msg, aborted := e.unintelligible(st); aborted {
			return msg
		}
		return techStackRePrompt
	}

	st.TechStack = stack
	st.Unintelligible = 0
	st.Questions = e.source.Generate(ctx, stack, e.cfg.QuestionCount)

	e.logger.Info("tech stack declared",
		zap.String("session_id", st.ID),
		zap.Strings("tech_stack", stack),
		zap.Int("questions", len(st.Questions)),
	)

	if len(st.Questions) == 0 {
		st.Stage = StageConfirming
		return summaryMessage(st)
	}

	st.Stage = StageAskingQuestions
	return "Great, I noted your stack. Let's go through a few technical questions.\n\n" +
		questionMessage(1, len(st.Questions), st.Questions[0].Prompt)
}

func (e *Engine) advanceQuestions(st *State, utterance string) string {
	// Answers are recorded verbatim; there is nothing to validate here.
	st.recordAnswer(utterance)
	st.Unintelligible = 0

	if item, ok := st.PendingQuestion(); ok {
		return "Thank you. " + questionMessage(st.nextQuestion+1, len(st.Questions), item.Prompt)
	}

	st.Stage = StageConfirming
	return summaryMessage(st)
}

func (e *Engine) advanceConfirming(st *State, trimmed string) string {
	switch {
	case isAffirmative(trimmed):
		st.Stage = StageComplete
		e.logger.Info("screening complete",
			zap.String("session_id", st.ID),
			zap.Int("answers", len(st.Answers)),
		)
		return completeMessage

	case isNegative(trimmed):
		st.resetAssessment()
		st.Unintelligible = 0
		st.Stage = StageCollectingTechStack
		return "No problem, let's try again. " + techStackPrompt

	default:
		if msg, aborted := e.unintelligible(st); aborted {
			return msg
		}
		return confirmPrompt
	}
}

// unintelligible bumps the consecutive-failure counter and terminates the
// session once the threshold is reached.
func (e *Engine) unintelligible(st *State) (string, bool) {
	st.Unintelligible++
	if st.Unintelligible < e.cfg.MaxUnintelligibleTurns {
		return "", false
	}

	e.terminate(st, "unintelligible turn threshold")
	return abortMessage, true
}

func (e *Engine) terminate(st *State, reason string) {
	st.Stage = StageTerminated
	e.logger.Info("session terminated",
		zap.String("session_id", st.ID),
		zap.String("reason", reason),
		zap.Int("turn", st.Turns),
	)
}

func (e *Engine) isExitPhrase(trimmed string) bool {
	normalized := strings.ToLower(strings.TrimRight(trimmed, ".!"))
	for _, phrase := range e.cfg.ExitPhrases {
		if normalized == phrase {
			return true
		}
	}
	return false
}

var affirmatives = map[string]struct{}{
	"yes": {}, "y": {}, "yeah": {}, "yep": {}, "correct": {}, "confirm": {}, "ok": {}, "okay": {},
}

var negatives = map[string]struct{}{
	"no": {}, "n": {}, "nope": {}, "wrong": {},
}

func isAffirmative(trimmed string) bool {
	_, ok := affirmatives[strings.ToLower(strings.TrimRight(trimmed, ".!"))]
	return ok
}

func isNegative(trimmed string) bool {
	_, ok := negatives[strings.ToLower(strings.TrimRight(trimmed, ".!"))]
	return ok
}
