package hierarchy

import (
	"fmt"
	"strings"
)

// EntityRef names one entity by level and id. Ids are opaque strings scoped
// to their level; they are not unique across levels.
type EntityRef struct {
	Level Level  `json:"level"`
	ID    string `json:"id"`
}

func (r EntityRef) String() string {
	return r.Level.String() + ":" + r.ID
}

// EntityRecord is the normalized shape of one upstream entity. ParentID is
// empty only for Client records; every other level has exactly one parent
// once resolved.
type EntityRecord struct {
	Level       Level  `json:"level"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	ParentID    string `json:"parent_id,omitempty"`
}

func (r EntityRecord) Ref() EntityRef {
	return EntityRef{Level: r.Level, ID: r.ID}
}

// Chain is a full ancestor chain, root (Client) to leaf.
type Chain []EntityRef

// Leaf returns the finest entry of the chain.
func (c Chain) Leaf() (EntityRef, bool) {
	if len(c) == 0 {
		return EntityRef{}, false
	}
	return c[len(c)-1], true
}

// IDByLevel returns the chain entry for one level, if present.
func (c Chain) IDByLevel(level Level) (string, bool) {
	for _, ref := range c {
		if ref.Level == level {
			return ref.ID, true
		}
	}
	return "", false
}

// CandidateList is the per-level dropdown population. ForParent records the
// parent id the list was fetched for; FetchToken is the monotonically
// increasing counter the selection controller uses to discard stale
// responses.
type CandidateList struct {
	Level      Level          `json:"level"`
	ForParent  string         `json:"for_parent,omitempty"`
	Items      []EntityRecord `json:"items"`
	FetchToken uint64         `json:"fetch_token"`
}

// NormalizeRecord maps one raw upstream payload onto an EntityRecord via
// the level's alias tables. A record with no resolvable id is rejected; a
// non-Client record with no resolvable parent is kept with an empty
// ParentID and left for the resolver to report.
func NormalizeRecord(level Level, raw map[string]any) (EntityRecord, error) {
	if !level.Valid() {
		return EntityRecord{}, fmt.Errorf("hierarchy: invalid level %d", int(level))
	}
	id, ok := ResolveField(level, FieldID, raw)
	if !ok {
		return EntityRecord{}, fmt.Errorf("hierarchy: %s record has no id", level)
	}
	record := EntityRecord{Level: level, ID: id}
	if name, ok := ResolveField(level, FieldDisplayName, raw); ok {
		record.DisplayName = name
	}
	if level != LevelClient {
		if parent, ok := ResolveField(level, FieldParentID, raw); ok {
			record.ParentID = strings.TrimSpace(parent)
		}
	}
	return record, nil
}
