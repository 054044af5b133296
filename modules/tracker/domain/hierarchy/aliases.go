package hierarchy

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field names the record attribute an alias list resolves.
type Field string

const (
	FieldID          Field = "id"
	FieldParentID    Field = "parent_id"
	FieldDisplayName Field = "display_name"
)

// The upstream Worky API never settled on one spelling per attribute:
// list endpoints emit snake_case while detail endpoints emit camelCase,
// and older payloads use "title" instead of "name". Resolution tries each
// alias in order and uses the first present, non-empty value.
var parentAliases = map[Level][]string{
	LevelProgram:   {"client_id", "clientId"},
	LevelProject:   {"program_id", "programId"},
	LevelUseCase:   {"project_id", "projectId"},
	LevelUserStory: {"usecase_id", "useCaseId", "usecaseId"},
	LevelTask:      {"user_story_id", "userStoryId"},
	LevelSubtask:   {"task_id", "taskId"},
}

var idAliases = []string{"id", "_id"}

var displayNameAliases = []string{"name", "display_name", "displayName", "title"}

// AliasesFor returns the ordered attribute-name aliases for one field of
// one level's records. Client has no parent foreign key, so its
// FieldParentID alias list is empty.
func AliasesFor(level Level, field Field) []string {
	switch field {
	case FieldID:
		return idAliases
	case FieldParentID:
		return parentAliases[level]
	case FieldDisplayName:
		return displayNameAliases
	default:
		return nil
	}
}

// ResolveField walks the alias list for one field against a raw record and
// returns the first present, non-empty value rendered as a string.
func ResolveField(level Level, field Field, raw map[string]any) (string, bool) {
	for _, alias := range AliasesFor(level, field) {
		value, ok := raw[alias]
		if !ok {
			continue
		}
		s, ok := stringifyFieldValue(value)
		if !ok || s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

func stringifyFieldValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}
