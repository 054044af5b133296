package hierarchy

import (
	"fmt"
	"strings"
)

// Level is one rank in the fixed Client -> Program -> Project -> UseCase ->
// UserStory -> Task -> Subtask chain. Values are totally ordered, coarsest
// first. Every other package consults this one for level order; nothing
// else hard-codes the chain.
type Level int

const (
	LevelClient Level = iota
	LevelProgram
	LevelProject
	LevelUseCase
	LevelUserStory
	LevelTask
	LevelSubtask
)

var levelNames = map[Level]string{
	LevelClient:    "client",
	LevelProgram:   "program",
	LevelProject:   "project",
	LevelUseCase:   "usecase",
	LevelUserStory: "userstory",
	LevelTask:      "task",
	LevelSubtask:   "subtask",
}

// Levels returns every level root to leaf.
func Levels() []Level {
	return []Level{
		LevelClient,
		LevelProgram,
		LevelProject,
		LevelUseCase,
		LevelUserStory,
		LevelTask,
		LevelSubtask,
	}
}

func (l Level) Valid() bool {
	return l >= LevelClient && l <= LevelSubtask
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Parent returns the next coarser level. The second return is false for
// Client, which has no parent.
func (l Level) Parent() (Level, bool) {
	if !l.Valid() || l == LevelClient {
		return 0, false
	}
	return l - 1, true
}

// Child returns the next finer level. The second return is false for
// Subtask, which has no child.
func (l Level) Child() (Level, bool) {
	if !l.Valid() || l == LevelSubtask {
		return 0, false
	}
	return l + 1, true
}

// FinerThan reports whether l is strictly finer grained than other.
func (l Level) FinerThan(other Level) bool {
	return l > other
}

// Descendants returns every level strictly finer than l, coarsest first.
func (l Level) Descendants() []Level {
	if !l.Valid() || l == LevelSubtask {
		return nil
	}
	out := make([]Level, 0, int(LevelSubtask-l))
	for d := l + 1; d <= LevelSubtask; d++ {
		out = append(out, d)
	}
	return out
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("hierarchy: cannot marshal invalid level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel accepts the canonical spelling of a level name plus the
// snake_case and camelCase variants seen in deep links ("use_case",
// "userStory", ...). Matching is case-insensitive.
func ParseLevel(raw string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	for level, name := range levelNames {
		if normalized == name {
			return level, nil
		}
	}
	return 0, fmt.Errorf("hierarchy: unknown level %q", raw)
}
