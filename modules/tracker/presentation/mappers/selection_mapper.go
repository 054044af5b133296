package mappers

import (
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/presentation/viewmodels"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/services"
)

func RecordToOption(record hierarchy.EntityRecord) viewmodels.LevelOption {
	label := record.DisplayName
	if label == "" {
		label = record.ID
	}
	return viewmodels.LevelOption{
		ID:       record.ID,
		Label:    label,
		ParentID: record.ParentID,
	}
}

func RecordsToOptions(records []hierarchy.EntityRecord) []viewmodels.LevelOption {
	out := make([]viewmodels.LevelOption, 0, len(records))
	for _, record := range records {
		out = append(out, RecordToOption(record))
	}
	return out
}

func SnapshotToView(snapshots []services.LevelSnapshot) viewmodels.SelectionView {
	view := viewmodels.SelectionView{
		Levels: make([]viewmodels.LevelSelectView, 0, len(snapshots)),
	}
	for _, snapshot := range snapshots {
		level := viewmodels.LevelSelectView{
			Level:      snapshot.Level.String(),
			SelectedID: snapshot.SelectedID,
			State:      string(snapshot.State),
			ForParent:  snapshot.ForParent,
			Options:    RecordsToOptions(snapshot.Candidates),
		}
		if snapshot.FetchErr != nil {
			level.FetchError = snapshot.FetchErr.Error()
		}
		view.Levels = append(view.Levels, level)
	}
	return view
}

func ResolutionToView(resolution services.Resolution) viewmodels.ResolutionView {
	view := viewmodels.ResolutionView{
		Chain:    make([]viewmodels.ChainEntry, 0, len(resolution.Chain)),
		Warnings: resolution.Warnings,
	}
	for _, ref := range resolution.Chain {
		entry := viewmodels.ChainEntry{
			Level: ref.Level.String(),
			ID:    ref.ID,
		}
		if record, ok := resolution.Records[ref.Level]; ok {
			entry.DisplayName = record.DisplayName
		}
		view.Chain = append(view.Chain, entry)
	}
	return view
}

func LevelsToNames(levels []hierarchy.Level) []string {
	out := make([]string, 0, len(levels))
	for _, level := range levels {
		out = append(out, level.String())
	}
	return out
}
