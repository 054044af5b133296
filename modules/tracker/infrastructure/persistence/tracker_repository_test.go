package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/pkg/composables"
)

func TestTableMetadata_CoversEveryLevel(t *testing.T) {
	for _, level := range hierarchy.Levels() {
		table, parentColumn, ok := TableMetadata(level)
		require.True(t, ok, level.String())
		require.NotEmpty(t, table, level.String())
		if level == hierarchy.LevelClient {
			require.Empty(t, parentColumn)
		} else {
			require.NotEmpty(t, parentColumn, level.String())
		}
	}

	_, _, ok := TableMetadata(hierarchy.Level(42))
	require.False(t, ok)
}

func TestTableMetadata_ParentColumnsMatchAliases(t *testing.T) {
	// The canonical snake_case alias of each level's parent foreign key is
	// also its column name, so upstream payloads and rows normalize alike.
	for _, level := range hierarchy.Levels() {
		if level == hierarchy.LevelClient {
			continue
		}
		_, parentColumn, ok := TableMetadata(level)
		require.True(t, ok)
		aliases := hierarchy.AliasesFor(level, hierarchy.FieldParentID)
		require.NotEmpty(t, aliases)
		require.Equal(t, aliases[0], parentColumn, level.String())
	}
}

func TestRepository_RequiresQuerierInContext(t *testing.T) {
	repo := NewTrackerRepository()

	_, err := repo.List(context.Background(), hierarchy.LevelClient)
	require.ErrorIs(t, err, composables.ErrNoPool)

	_, err = repo.GetByID(context.Background(), hierarchy.LevelTask, "T-77")
	require.ErrorIs(t, err, composables.ErrNoPool)
}

func TestSchema_Embedded(t *testing.T) {
	schema := Schema()
	require.Contains(t, schema, "CREATE TABLE IF NOT EXISTS clients")
	require.Contains(t, schema, "user_story_id")
}
