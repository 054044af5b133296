package viewmodels

// LevelOption is one dropdown entry.
type LevelOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ParentID string `json:"parent_id,omitempty"`
}

// LevelSelectView is one level's dropdown: its current selection, loading
// state and candidates. FetchError is set when the last candidate fetch
// failed, so a page can render a retry affordance instead of an empty
// dropdown.
type LevelSelectView struct {
	Level      string        `json:"level"`
	SelectedID string        `json:"selected_id,omitempty"`
	State      string        `json:"state"`
	ForParent  string        `json:"for_parent,omitempty"`
	Options    []LevelOption `json:"options"`
	FetchError string        `json:"fetch_error,omitempty"`
}

// SelectionView is the full cascading-dropdown state, root to leaf.
type SelectionView struct {
	Levels []LevelSelectView `json:"levels"`
}

// ChainEntry is one resolved ancestor, used for breadcrumbs.
type ChainEntry struct {
	Level       string `json:"level"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// ResolutionView is a resolved deep link: the chain root to leaf plus any
// non-fatal warnings raised during the walk.
type ResolutionView struct {
	Chain    []ChainEntry `json:"chain"`
	Warnings []string     `json:"warnings,omitempty"`
}

// DurationLevelsView lists the levels a duration view may aggregate by and
// the effective choice after policy fallback.
type DurationLevelsView struct {
	Levels    []string `json:"levels"`
	Effective string   `json:"effective,omitempty"`
}
