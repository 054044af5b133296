package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
)

// LevelFetcher loads the candidate list for one level. It is stateless and
// safely retryable; transport failures come back as *hierarchy.FetchError,
// never as a silently empty list.
type LevelFetcher struct {
	repo hierarchy.ReadRepository
	log  *logrus.Logger
}

func NewLevelFetcher(repo hierarchy.ReadRepository, log *logrus.Logger) *LevelFetcher {
	return &LevelFetcher{repo: repo, log: log}
}

// Fetch returns all records of level whose parent equals parentID, or the
// unfiltered Client set when parentID is empty. An empty parentID is only
// legal for Client.
func (f *LevelFetcher) Fetch(ctx context.Context, level hierarchy.Level, parentID string) (hierarchy.CandidateList, error) {
	if !level.Valid() {
		return hierarchy.CandidateList{}, hierarchy.NewFetchError(level, hierarchy.ErrParentRequired)
	}
	if parentID == "" && level != hierarchy.LevelClient {
		return hierarchy.CandidateList{}, hierarchy.ErrParentRequired
	}

	var (
		items []hierarchy.EntityRecord
		err   error
	)
	if level == hierarchy.LevelClient {
		items, err = f.repo.List(ctx, level)
	} else {
		items, err = f.repo.ListByParent(ctx, level, parentID)
	}
	if err != nil {
		if f.log != nil {
			f.log.WithError(err).WithFields(logrus.Fields{
				"level":  level.String(),
				"parent": parentID,
			}).Warn("level fetch failed")
		}
		return hierarchy.CandidateList{}, hierarchy.NewFetchError(level, err)
	}

	return hierarchy.CandidateList{
		Level:     level,
		ForParent: parentID,
		Items:     items,
	}, nil
}
