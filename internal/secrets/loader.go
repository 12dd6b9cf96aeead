package secrets

import (
	"fmt"
	"os"
	"strings"
)

// LoadAPIKey resolves an API key from a file or an inline value. The file
// takes precedence when both are set. The returned key is always trimmed.
func LoadAPIKey(name, inline, file string) (string, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = "api key"
	}

	if file = strings.TrimSpace(file); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return key, nil
	}

	key := strings.TrimSpace(inline)
	if key == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return key, nil
}
