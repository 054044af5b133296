package services

import "github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"

// SelectionChangedEvent is published whenever one level's selection is set
// or cleared, including cascade clears of descendant levels.
type SelectionChangedEvent struct {
	Level hierarchy.Level
	ID    string
}

// CandidatesLoadedEvent is published when a fetched candidate list is
// installed (the fetch token was still current on arrival).
type CandidatesLoadedEvent struct {
	List hierarchy.CandidateList
}

// CandidatesFetchFailedEvent is published when a current fetch fails; the
// level's candidates degrade to empty but the selection is kept.
type CandidatesFetchFailedEvent struct {
	Level     hierarchy.Level
	ForParent string
	Err       error
}

// ChainResolvedEvent is published after a deep link resolves and the chain
// is seeded into the selection state.
type ChainResolvedEvent struct {
	Chain hierarchy.Chain
}
