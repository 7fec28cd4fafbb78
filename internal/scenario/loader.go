package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smil-anim/timing-go/pkg/version"
)

// LoadError provides details about a scenario loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	switch {
	case e.File != "" && e.Line > 0:
		return e.File + ":" + strconv.Itoa(e.Line) + ": " + msg
	case e.File != "":
		return e.File + ": " + msg
	default:
		return msg
	}
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseScenario parses a scenario from YAML bytes and checks its structure.
// Specifier parameters are validated when the scenario is built.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		le := &LoadError{Message: "failed to parse YAML", Cause: err}
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			le.Line = yamlErrorLine(err)
		}
		return nil, le
	}

	if sc.ID == "" {
		return nil, &LoadError{Message: "scenario ID is required"}
	}
	if err := version.Check(sc.Version); err != nil {
		return nil, &LoadError{Message: sc.ID + ": incompatible scenario", Cause: err}
	}
	if len(sc.Elements) == 0 {
		return nil, &LoadError{Message: "scenario must declare at least one element"}
	}
	if len(sc.Steps) == 0 {
		return nil, &LoadError{Message: "scenario must have at least one step"}
	}

	seen := make(map[string]bool)
	for i, el := range sc.Elements {
		if el.ID == "" {
			return nil, &LoadError{Message: "element " + strconv.Itoa(i) + ": id is required"}
		}
		if seen[el.ID] {
			return nil, &LoadError{Message: "duplicate element id " + strconv.Quote(el.ID)}
		}
		seen[el.ID] = true
	}
	for i, st := range sc.Steps {
		if !knownAction(st.Action) {
			return nil, &LoadError{Message: "step " + strconv.Itoa(i+1) + ": unknown action " + strconv.Quote(st.Action)}
		}
	}

	return &sc, nil
}

// LoadScenario loads a scenario from a file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	sc, err := ParseScenario(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	sc.source = path

	return sc, nil
}

// LoadDirectory loads all scenarios from a directory.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Scenario, error) {
	var out []*Scenario

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		sc, err := LoadScenario(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}

	return out, nil
}

// LoadDirectoryRecursive loads all scenarios from a directory and its
// subdirectories.
func LoadDirectoryRecursive(dir string) ([]*Scenario, error) {
	var out []*Scenario

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}
		sc, err := LoadScenario(path)
		if err != nil {
			return err
		}
		out = append(out, sc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// LoadPath loads a single file or, for a directory, every scenario below it.
func LoadPath(path string) ([]*Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to stat path", Cause: err}
	}
	if info.IsDir() {
		return LoadDirectoryRecursive(path)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return []*Scenario{sc}, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func knownAction(action string) bool {
	switch action {
	case ActionInit, ActionEvent, ActionKey, ActionRepeat, ActionWallclock,
		ActionReset, ActionAttach, ActionDetach, ActionDuration, ActionExpect:
		return true
	}
	return false
}

// yamlErrorLine extracts the line number from a yaml.v3 syntax error
// ("yaml: line 3: ...").
func yamlErrorLine(err error) int {
	msg := err.Error()
	const prefix = "yaml: line "
	i := strings.Index(msg, prefix)
	if i < 0 {
		return 0
	}
	rest := msg[i+len(prefix):]
	end := strings.IndexByte(rest, ':')
	if end < 0 {
		return 0
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0
	}
	return n
}
