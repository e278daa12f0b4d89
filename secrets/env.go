package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPathVar overrides the .env search when set in the process environment.
const EnvPathVar = "DOXCER_ENV_PATH"

// ErrMissingSource means no .env file was found at any candidate location.
var ErrMissingSource = fmt.Errorf("no .env file found")

// EnvCandidates returns the .env locations to try, in priority order:
// the explicit override, DOXCER_ENV_PATH, the working directory and its
// config/ subfolder, then the executable directory and two ancestors.
func EnvCandidates(override string) []string {
	var candidates []string
	if override != "" {
		candidates = append(candidates, override)
	}
	if p := os.Getenv(EnvPathVar); p != "" {
		candidates = append(candidates, p)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	candidates = append(candidates,
		filepath.Join(cwd, "config", ".env"),
		filepath.Join(cwd, ".env"),
	)

	exeDir := "."
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	dir := exeDir
	for i := 0; i < 3; i++ {
		candidates = append(candidates,
			filepath.Join(dir, "config", ".env"),
			filepath.Join(dir, ".env"),
		)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return candidates
}

// LoadEnv finds the first existing candidate .env file and loads it into the
// process environment. Returns the path that was loaded. Variables already
// present in the environment keep their value.
func LoadEnv(override string) (string, error) {
	candidates := EnvCandidates(override)
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", fmt.Errorf("load .env at %s: %w", p, err)
		}
		return p, nil
	}
	return "", fmt.Errorf("%w, searched:\n  - %s", ErrMissingSource, strings.Join(candidates, "\n  - "))
}
