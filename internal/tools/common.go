package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const maxOutputBytes = 10_000

func truncate(b []byte) string {
	if len(b) > maxOutputBytes {
		return string(b[:maxOutputBytes]) + "\n... (truncated)"
	}
	return string(b)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

var identRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// checkIdent rejects tool and agent names that are not valid Python
// identifiers in the snake_case form the templates expect.
func checkIdent(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid name %q: must be snake_case starting with a letter", name)
	}
	return nil
}
