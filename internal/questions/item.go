package questions

// Difficulty grades a question for the screening report.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Item is one technical question tied to a declared technology.
type Item struct {
	Technology string     `json:"technology" yaml:"technology,omitempty" mapstructure:"technology"`
	Prompt     string     `json:"prompt" yaml:"prompt" mapstructure:"prompt"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" mapstructure:"difficulty"`
}

// Identity is the deduplication key of an item. Two items with the same
// technology and prompt are the same question.
type Identity struct {
	Technology string `json:"technology"`
	Prompt     string `json:"prompt"`
}

func (i Item) Identity() Identity {
	return Identity{Technology: i.Technology, Prompt: i.Prompt}
}
