package persistence

import (
	"context"
	"errors"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/pkg/composables"
)

type levelTable struct {
	name         string
	parentColumn string
}

// One table per level; the parent column is the single foreign key to the
// adjacent coarser level.
var levelTables = map[hierarchy.Level]levelTable{
	hierarchy.LevelClient:    {name: "clients"},
	hierarchy.LevelProgram:   {name: "programs", parentColumn: "client_id"},
	hierarchy.LevelProject:   {name: "projects", parentColumn: "program_id"},
	hierarchy.LevelUseCase:   {name: "use_cases", parentColumn: "project_id"},
	hierarchy.LevelUserStory: {name: "user_stories", parentColumn: "usecase_id"},
	hierarchy.LevelTask:      {name: "tasks", parentColumn: "user_story_id"},
	hierarchy.LevelSubtask:   {name: "subtasks", parentColumn: "task_id"},
}

// TableMetadata exposes the table name and parent column for one level, so
// tooling (the seeding CLI) stays consistent with the repository's mapping.
func TableMetadata(level hierarchy.Level) (table string, parentColumn string, ok bool) {
	meta, ok := levelTables[level]
	if !ok {
		return "", "", false
	}
	return meta.name, meta.parentColumn, true
}

// TrackerRepository is the Postgres implementation of the hierarchy read
// contract. The pool or transaction is taken from the context.
type TrackerRepository struct{}

func NewTrackerRepository() hierarchy.ReadRepository {
	return &TrackerRepository{}
}

func (r *TrackerRepository) List(ctx context.Context, level hierarchy.Level) ([]hierarchy.EntityRecord, error) {
	table, err := tableFor(level)
	if err != nil {
		return nil, err
	}
	q, err := composables.UseQuerier(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, name%s FROM %s ORDER BY name ASC, id ASC`, parentSelect(table), table.name)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, gerrors.Wrap(err, "list "+level.String())
	}
	defer rows.Close()
	return scanRecords(rows, level, table)
}

func (r *TrackerRepository) ListByParent(ctx context.Context, level hierarchy.Level, parentID string) ([]hierarchy.EntityRecord, error) {
	table, err := tableFor(level)
	if err != nil {
		return nil, err
	}
	if table.parentColumn == "" {
		return r.List(ctx, level)
	}
	q, err := composables.UseQuerier(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, name, %s FROM %s WHERE %s = $1 ORDER BY name ASC, id ASC`,
		table.parentColumn, table.name, table.parentColumn,
	)
	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, gerrors.Wrap(err, "list "+level.String()+" by parent")
	}
	defer rows.Close()
	return scanRecords(rows, level, table)
}

func (r *TrackerRepository) GetByID(ctx context.Context, level hierarchy.Level, id string) (hierarchy.EntityRecord, error) {
	table, err := tableFor(level)
	if err != nil {
		return hierarchy.EntityRecord{}, err
	}
	q, err := composables.UseQuerier(ctx)
	if err != nil {
		return hierarchy.EntityRecord{}, err
	}

	query := fmt.Sprintf(`SELECT id, name%s FROM %s WHERE id = $1`, parentSelect(table), table.name)
	record := hierarchy.EntityRecord{Level: level}
	dest := []any{&record.ID, &record.DisplayName}
	var parent *string
	if table.parentColumn != "" {
		dest = append(dest, &parent)
	}
	if err := q.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hierarchy.EntityRecord{}, hierarchy.ErrNotFound
		}
		return hierarchy.EntityRecord{}, gerrors.Wrap(err, "get "+level.String()+" by id")
	}
	if parent != nil {
		record.ParentID = *parent
	}
	return record, nil
}

func tableFor(level hierarchy.Level) (levelTable, error) {
	table, ok := levelTables[level]
	if !ok {
		return levelTable{}, fmt.Errorf("persistence: no table for level %d", int(level))
	}
	return table, nil
}

func parentSelect(table levelTable) string {
	if table.parentColumn == "" {
		return ""
	}
	return ", " + table.parentColumn
}

func scanRecords(rows pgx.Rows, level hierarchy.Level, table levelTable) ([]hierarchy.EntityRecord, error) {
	out := make([]hierarchy.EntityRecord, 0, 32)
	for rows.Next() {
		record := hierarchy.EntityRecord{Level: level}
		dest := []any{&record.ID, &record.DisplayName}
		var parent *string
		if table.parentColumn != "" {
			dest = append(dest, &parent)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, gerrors.Wrap(err, "scan "+level.String())
		}
		if parent != nil {
			record.ParentID = *parent
		}
		out = append(out, record)
	}
	if rows.Err() != nil {
		return nil, gerrors.Wrap(rows.Err(), "iterate "+level.String())
	}
	return out, nil
}
