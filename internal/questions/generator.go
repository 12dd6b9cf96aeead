package questions

import (
	"context"
	"strings"

	_ "embed"

	"go.uber.org/zap"
)

//go:embed synthesis_prompt.md
var synthesisPrompt string

const (
	// DefaultCount is the target question count per session.
	DefaultCount = 5

	defaultSynthesisMaxTokens = 256
)

type completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Generator maps a declared tech stack to a bounded, deduplicated question
// set. Recognized technologies draw from the catalog; unrecognized ones get
// exactly one synthesized question when a completer is available.
type Generator struct {
	catalog   *Catalog
	completer completer
	maxTokens int
	logger    *zap.Logger
}

func NewGenerator(catalog *Catalog, completer completer, maxTokens int, log *zap.Logger) *Generator {
	if maxTokens <= 0 {
		maxTokens = defaultSynthesisMaxTokens
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{
		catalog:   catalog,
		completer: completer,
		maxTokens: maxTokens,
		logger:    log,
	}
}

// Generate returns at most count items for the declared stack, in a stable
// order: one question per technology per round, in declaration order, until
// the count is reached or all pools are exhausted. Completer failures are
// non-fatal; the affected technology is skipped and a lower total accepted.
func (g *Generator) Generate(ctx context.Context, stack []string, count int) []Item {
	if count <= 0 {
		count = DefaultCount
	}

	techs := g.normalizeStack(stack)
	if len(techs) == 0 {
		return nil
	}

	items := make([]Item, 0, count)
	seen := make(map[Identity]struct{}, count)
	offsets := make(map[string]int, len(techs))

	take := func(item Item) bool {
		id := item.Identity()
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
		items = append(items, item)
		return true
	}

	// Round one also covers unrecognized technologies via synthesis, so
	// every declared technology contributes at least one question when
	// possible.
	for round := 0; len(items) < count; round++ {
		progressed := false

		for _, tech := range techs {
			if len(items) >= count {
				break
			}

			pool := g.catalog.QuestionsFor(tech)
			if len(pool) == 0 {
				if round == 0 {
					if item, ok := g.synthesize(ctx, tech); ok && take(item) {
						progressed = true
					}
				}
				continue
			}

			offset := offsets[tech]
			for offset < len(pool) {
				item := pool[offset]
				offset++
				if take(item) {
					progressed = true
					break
				}
			}
			offsets[tech] = offset
		}

		if !progressed {
			break
		}
	}

	g.logger.Debug("generated question set",
		zap.Strings("tech_stack", techs),
		zap.Int("requested", count),
		zap.Int("generated", len(items)),
	)

	return items
}

// normalizeStack folds, resolves aliases and deduplicates while preserving
// declaration order.
func (g *Generator) normalizeStack(stack []string) []string {
	out := make([]string, 0, len(stack))
	seen := make(map[string]struct{}, len(stack))

	for _, raw := range stack {
		tech := g.catalog.Normalize(raw)
		if tech == "" {
			continue
		}
		if _, dup := seen[tech]; dup {
			continue
		}
		seen[tech] = struct{}{}
		out = append(out, tech)
	}

	return out
}

func (g *Generator) synthesize(ctx context.Context, tech string) (Item, bool) {
	if g.completer == nil {
		g.logger.Debug("no completer configured, skipping synthesis", zap.String("technology", tech))
		return Item{}, false
	}

	prompt := strings.ReplaceAll(synthesisPrompt, "{{TECHNOLOGY}}", tech)

	text, err := g.completer.Complete(ctx, prompt, g.maxTokens)
	if err != nil {
		g.logger.Warn("question synthesis failed, technology skipped",
			zap.String("technology", tech),
			zap.Error(err),
		)
		return Item{}, false
	}

	text = firstLine(text)
	if text == "" {
		g.logger.Warn("question synthesis returned no usable text", zap.String("technology", tech))
		return Item{}, false
	}

	return Item{
		Technology: tech,
		Prompt:     text,
		Difficulty: DifficultyIntermediate,
	}, true
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
