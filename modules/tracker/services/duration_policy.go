package services

import (
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/permissions"
)

// AvailableDurationLevels returns the levels the viewer may break a
// duration/aggregate view down by: every level strictly finer than the one
// currently being browsed. Subtask granularity is withheld from non-admins
// until they have drilled all the way down to a specific task.
//
// Role is an explicit parameter so the policy stays a pure function; the
// caller decides where the role comes from.
func AvailableDurationLevels(current hierarchy.Level, role permissions.Role) []hierarchy.Level {
	finer := current.Descendants()
	if len(finer) == 0 {
		return nil
	}
	if role.IsAdmin() || current == hierarchy.LevelTask {
		return finer
	}
	out := make([]hierarchy.Level, 0, len(finer))
	for _, level := range finer {
		if level == hierarchy.LevelSubtask {
			continue
		}
		out = append(out, level)
	}
	return out
}

// NormalizeDurationLevel keeps the viewer's chosen duration level when it
// is still allowed and otherwise falls back to the first allowed entry.
// For any current level above Subtask at least one finer level survives
// the policy, so the fallback never produces an empty selection.
func NormalizeDurationLevel(chosen, current hierarchy.Level, role permissions.Role) (hierarchy.Level, bool) {
	available := AvailableDurationLevels(current, role)
	for _, level := range available {
		if level == chosen {
			return chosen, true
		}
	}
	if len(available) == 0 {
		return 0, false
	}
	return available[0], true
}
