package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/permissions"
)

func TestAvailableDurationLevels_NonAdminExcludesSubtask(t *testing.T) {
	levels := AvailableDurationLevels(hierarchy.LevelProject, permissions.RoleMember)
	require.Equal(t, []hierarchy.Level{
		hierarchy.LevelUseCase,
		hierarchy.LevelUserStory,
		hierarchy.LevelTask,
	}, levels)
}

func TestAvailableDurationLevels_AdminSeesSubtask(t *testing.T) {
	levels := AvailableDurationLevels(hierarchy.LevelProject, permissions.RoleAdmin)
	require.Contains(t, levels, hierarchy.LevelSubtask)
}

func TestAvailableDurationLevels_TaskLevelUnlocksSubtaskForEveryone(t *testing.T) {
	levels := AvailableDurationLevels(hierarchy.LevelTask, permissions.RoleMember)
	require.Equal(t, []hierarchy.Level{hierarchy.LevelSubtask}, levels)
}

func TestAvailableDurationLevels_SubtaskHasNothingFiner(t *testing.T) {
	require.Empty(t, AvailableDurationLevels(hierarchy.LevelSubtask, permissions.RoleAdmin))
}

func TestNormalizeDurationLevel_FallsBackToFirstAllowed(t *testing.T) {
	// A member browsing a project previously chose subtask granularity,
	// which the policy no longer allows.
	effective, ok := NormalizeDurationLevel(hierarchy.LevelSubtask, hierarchy.LevelProject, permissions.RoleMember)
	require.True(t, ok)
	require.Equal(t, hierarchy.LevelUseCase, effective)
}

func TestNormalizeDurationLevel_KeepsAllowedChoice(t *testing.T) {
	effective, ok := NormalizeDurationLevel(hierarchy.LevelTask, hierarchy.LevelProject, permissions.RoleMember)
	require.True(t, ok)
	require.Equal(t, hierarchy.LevelTask, effective)
}

func TestNormalizeDurationLevel_NothingFiner(t *testing.T) {
	_, ok := NormalizeDurationLevel(hierarchy.LevelSubtask, hierarchy.LevelSubtask, permissions.RoleAdmin)
	require.False(t, ok)
}
