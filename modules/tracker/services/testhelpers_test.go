package services

import (
	"context"
	"sync"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
)

// fakeRepository serves canned records per level and can be told to fail a
// level or to pretend it has no single-record lookup.
type fakeRepository struct {
	mu                sync.Mutex
	records           map[hierarchy.Level][]hierarchy.EntityRecord
	failLevels        map[hierarchy.Level]error
	lookupUnsupported bool
	listCalls         int
	getCalls          int
}

func newFakeRepository(records ...hierarchy.EntityRecord) *fakeRepository {
	f := &fakeRepository{
		records:    make(map[hierarchy.Level][]hierarchy.EntityRecord),
		failLevels: make(map[hierarchy.Level]error),
	}
	f.add(records...)
	return f
}

func (f *fakeRepository) add(records ...hierarchy.EntityRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range records {
		f.records[record.Level] = append(f.records[record.Level], record)
	}
}

func (f *fakeRepository) failLevel(level hierarchy.Level, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failLevels[level] = err
}

func (f *fakeRepository) List(_ context.Context, level hierarchy.Level) ([]hierarchy.EntityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if err := f.failLevels[level]; err != nil {
		return nil, err
	}
	return append([]hierarchy.EntityRecord(nil), f.records[level]...), nil
}

func (f *fakeRepository) ListByParent(_ context.Context, level hierarchy.Level, parentID string) ([]hierarchy.EntityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if err := f.failLevels[level]; err != nil {
		return nil, err
	}
	out := make([]hierarchy.EntityRecord, 0)
	for _, record := range f.records[level] {
		if record.ParentID == parentID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetByID(_ context.Context, level hierarchy.Level, id string) (hierarchy.EntityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.lookupUnsupported {
		return hierarchy.EntityRecord{}, hierarchy.ErrLookupUnsupported
	}
	if err := f.failLevels[level]; err != nil {
		return hierarchy.EntityRecord{}, err
	}
	for _, record := range f.records[level] {
		if record.ID == id {
			return record, nil
		}
	}
	return hierarchy.EntityRecord{}, hierarchy.ErrNotFound
}

// workyFixture is the sample hierarchy most scenarios walk:
// CLI-1 > PRG-1 > PRJ-1 > UC-3 > US-9 > T-77 > ST-5.
func workyFixture() []hierarchy.EntityRecord {
	return []hierarchy.EntityRecord{
		{Level: hierarchy.LevelClient, ID: "CLI-1", DisplayName: "Acme"},
		{Level: hierarchy.LevelProgram, ID: "PRG-1", DisplayName: "Rollout", ParentID: "CLI-1"},
		{Level: hierarchy.LevelProject, ID: "PRJ-1", DisplayName: "Portal", ParentID: "PRG-1"},
		{Level: hierarchy.LevelUseCase, ID: "UC-3", DisplayName: "Checkout", ParentID: "PRJ-1"},
		{Level: hierarchy.LevelUserStory, ID: "US-9", DisplayName: "Pay by card", ParentID: "UC-3"},
		{Level: hierarchy.LevelTask, ID: "T-77", DisplayName: "Wire gateway", ParentID: "US-9"},
		{Level: hierarchy.LevelSubtask, ID: "ST-5", DisplayName: "Token exchange", ParentID: "T-77"},
	}
}

// recordingDispatcher captures fetch requests so tests decide when and in
// which order completions arrive.
type recordingDispatcher struct {
	mu       sync.Mutex
	requests []FetchRequest
}

func (d *recordingDispatcher) dispatch(_ context.Context, req FetchRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, req)
}

func (d *recordingDispatcher) take() []FetchRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.requests
	d.requests = nil
	return out
}

func (d *recordingDispatcher) last() (FetchRequest, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return FetchRequest{}, false
	}
	return d.requests[len(d.requests)-1], true
}
