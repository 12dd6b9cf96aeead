package questions

import (
	"testing"
)

func TestCatalogNormalize(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	cases := map[string]string{
		"JS":        "javascript",
		"golang":    "go",
		" Python3 ": "python",
		"K8S":       "kubernetes",
		"FooBarDB":  "foobardb",
	}

	for input, want := range cases {
		if got := catalog.Normalize(input); got != want {
			t.Fatalf("Normalize(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestCatalogQuestionsFor(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	pool := catalog.QuestionsFor("JS")
	if len(pool) == 0 {
		t.Fatal("expected a non-empty pool for the js alias")
	}
	for _, item := range pool {
		if item.Technology != "javascript" {
			t.Fatalf("expected items tagged javascript, got %q", item.Technology)
		}
		if item.Prompt == "" || item.Difficulty == "" {
			t.Fatalf("expected fully populated items, got %+v", item)
		}
	}

	if got := catalog.QuestionsFor("foobardb"); len(got) != 0 {
		t.Fatalf("expected an empty pool for an unknown technology, got %d items", len(got))
	}
	if catalog.Known("foobardb") {
		t.Fatal("expected foobardb to be unknown")
	}
}

func TestCatalogPoolsAreDistinct(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	for _, tech := range []string{"python", "javascript", "go", "react", "java", "postgresql", "docker", "kubernetes", "aws"} {
		pool := catalog.QuestionsFor(tech)
		if len(pool) < 3 {
			t.Fatalf("expected at least 3 questions for %s, got %d", tech, len(pool))
		}

		seen := make(map[Identity]struct{}, len(pool))
		for _, item := range pool {
			if _, dup := seen[item.Identity()]; dup {
				t.Fatalf("duplicate question in %s pool: %q", tech, item.Prompt)
			}
			seen[item.Identity()] = struct{}{}
		}
	}
}

func TestCatalogMergeConfig(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	extra := map[string]any{
		"FooBarDB": []any{
			map[string]any{"prompt": "How does FooBarDB shard data?", "difficulty": "advanced"},
			map[string]any{"prompt": "What is a FooBarDB collection?"},
		},
	}

	if err := catalog.MergeConfig(extra); err != nil {
		t.Fatalf("merging extra pools: %v", err)
	}

	pool := catalog.QuestionsFor("foobardb")
	if len(pool) != 2 {
		t.Fatalf("expected 2 merged items, got %d", len(pool))
	}
	if pool[0].Technology != "foobardb" || pool[0].Difficulty != DifficultyAdvanced {
		t.Fatalf("unexpected first merged item: %+v", pool[0])
	}
	if pool[1].Difficulty != DifficultyIntermediate {
		t.Fatalf("expected the default difficulty for the second item, got %q", pool[1].Difficulty)
	}
}
