package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
)

// Resolution is a successful ancestor walk: the full chain root to leaf,
// the records discovered along the way, and any non-fatal warnings (for
// example duplicate ids at one level).
type Resolution struct {
	Chain    hierarchy.Chain
	Records  map[hierarchy.Level]hierarchy.EntityRecord
	Warnings []string
}

// Resolver reconstructs the full ancestor chain for one leaf reference by
// walking the entity graph upward, one level per lookup.
type Resolver struct {
	repo hierarchy.ReadRepository
	log  *logrus.Logger
}

func NewResolver(repo hierarchy.ReadRepository, log *logrus.Logger) *Resolver {
	return &Resolver{repo: repo, log: log}
}

// Resolve walks from leaf up to Client. known carries ancestor ids the
// caller believes it already has (typically URL state); when a known id
// disagrees with the parent id stored on the live record, the record wins,
// since URL state can be stale. The walk performs at most one lookup per
// level, sequentially, because each step depends on the previous record.
//
// A broken link surfaces as *hierarchy.AncestorNotFoundError naming the
// level at which the lookup failed; the caller gets no partial chain.
func (r *Resolver) Resolve(ctx context.Context, leaf hierarchy.EntityRef, known map[hierarchy.Level]string) (Resolution, error) {
	if !leaf.Level.Valid() {
		return Resolution{}, fmt.Errorf("resolver: invalid leaf level %d", int(leaf.Level))
	}
	if leaf.ID == "" {
		return Resolution{}, fmt.Errorf("resolver: empty leaf id")
	}

	resolution := Resolution{
		Records: make(map[hierarchy.Level]hierarchy.EntityRecord, len(hierarchy.Levels())),
	}

	level := leaf.Level
	id := leaf.ID
	for {
		record, warning, err := r.lookup(ctx, level, id)
		if err != nil {
			if errors.Is(err, hierarchy.ErrNotFound) {
				return Resolution{}, &hierarchy.AncestorNotFoundError{Level: level, ID: id}
			}
			return Resolution{}, err
		}
		if warning != "" {
			resolution.Warnings = append(resolution.Warnings, warning)
		}
		resolution.Records[level] = record
		resolution.Chain = append(hierarchy.Chain{record.Ref()}, resolution.Chain...)

		parentLevel, ok := level.Parent()
		if !ok {
			return resolution, nil
		}
		parentID := record.ParentID
		if parentID == "" {
			// The record exists but names no parent; the chain is broken
			// one level up.
			return Resolution{}, &hierarchy.AncestorNotFoundError{Level: parentLevel}
		}
		if hint, ok := known[parentLevel]; ok && hint != "" && hint != parentID {
			if r.log != nil {
				r.log.WithFields(logrus.Fields{
					"level":      parentLevel.String(),
					"hint":       hint,
					"discovered": parentID,
				}).Info("stale ancestor hint overridden by record graph")
			}
		}
		level = parentLevel
		id = parentID
	}
}

// lookup fetches one record by id, preferring the repository's
// single-record endpoint and degrading to an unfiltered list scan when that
// level has none. Ids are expected unique per level; when the scan finds
// more than one match (a modeling error upstream) the first in fetch order
// is used and a warning is returned alongside it.
func (r *Resolver) lookup(ctx context.Context, level hierarchy.Level, id string) (hierarchy.EntityRecord, string, error) {
	record, err := r.repo.GetByID(ctx, level, id)
	switch {
	case err == nil:
		return record, "", nil
	case errors.Is(err, hierarchy.ErrLookupUnsupported):
		// fall through to the list scan
	case errors.Is(err, hierarchy.ErrNotFound):
		return hierarchy.EntityRecord{}, "", err
	default:
		return hierarchy.EntityRecord{}, "", hierarchy.NewFetchError(level, err)
	}

	items, err := r.repo.List(ctx, level)
	if err != nil {
		return hierarchy.EntityRecord{}, "", hierarchy.NewFetchError(level, err)
	}
	var (
		found   hierarchy.EntityRecord
		matches int
	)
	for _, item := range items {
		if item.ID != id {
			continue
		}
		if matches == 0 {
			found = item
		}
		matches++
	}
	if matches == 0 {
		return hierarchy.EntityRecord{}, "", hierarchy.ErrNotFound
	}
	warning := ""
	if matches > 1 {
		warning = fmt.Sprintf("%d %s records share id %q; using the first in fetch order", matches, level, id)
		if r.log != nil {
			r.log.WithFields(logrus.Fields{"level": level.String(), "id": id, "matches": matches}).
				Warn("duplicate ids at one level")
		}
	}
	return found, warning, nil
}
