package interview

// Stage is a named phase of the guided conversation. Stages advance in a
// fixed order; Terminated is reachable from any stage.
type Stage string

const (
	StageGreeting            Stage = "greeting"
	StageCollectingProfile   Stage = "collecting_profile"
	StageCollectingTechStack Stage = "collecting_techstack"
	StageAskingQuestions     Stage = "asking_questions"
	StageConfirming          Stage = "confirming"
	StageComplete            Stage = "complete"
	StageTerminated          Stage = "terminated"
)

// Terminal reports whether the session has ended and no further utterances
// are accepted.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageTerminated
}
