package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/pkg/eventbus"
)

// LevelState is the per-level phase of the candidate list.
type LevelState string

const (
	StateUnselected LevelState = "unselected"
	StateLoading    LevelState = "loading"
	StateReady      LevelState = "ready"
)

// FetchRequest is one candidate-list fetch issued by the controller,
// stamped with the token its completion must present.
type FetchRequest struct {
	Level    hierarchy.Level
	ParentID string
	Token    uint64
}

// DispatchFunc starts one fetch. The default dispatcher runs the fetch on
// its own goroutine and feeds the result back through FetchCompleted; tests
// substitute their own to drive completion order deterministically.
type DispatchFunc func(ctx context.Context, req FetchRequest)

// LevelSnapshot is the read-only view of one level the rendering layer
// consumes. FetchErr is non-nil when the last fetch for the level failed,
// which is distinct from the level legitimately having zero children.
type LevelSnapshot struct {
	Level      hierarchy.Level
	SelectedID string
	State      LevelState
	ForParent  string
	Candidates []hierarchy.EntityRecord
	FetchErr   error
}

type levelSlot struct {
	selected   string
	state      LevelState
	forParent  string
	candidates hierarchy.CandidateList
	fetchErr   error
	token      uint64
}

// SelectionController owns one page's selection state across all seven
// levels and keeps the per-level candidate lists consistent while the user
// changes any level. It is the only writer of that state; everything else
// reads snapshots. One instance lives per page mount and is discarded on
// unmount.
//
// Fetches run concurrently at the transport layer but their completions are
// applied one at a time under the controller's lock. Per level, only the
// completion carrying the latest issued token is ever installed; responses
// for superseded parents are discarded on arrival, which gives "last
// selection wins" semantics even when responses arrive out of order. There
// is no request cancellation; the wasted work is bounded by one outstanding
// request per level.
type SelectionController struct {
	fetcher  *LevelFetcher
	resolver *Resolver
	bus      eventbus.EventBus
	log      *logrus.Logger
	dispatch DispatchFunc

	mu    sync.Mutex
	slots map[hierarchy.Level]*levelSlot
}

type SelectionOption func(*SelectionController)

func WithEventBus(bus eventbus.EventBus) SelectionOption {
	return func(c *SelectionController) { c.bus = bus }
}

func WithLogger(log *logrus.Logger) SelectionOption {
	return func(c *SelectionController) { c.log = log }
}

// WithDispatch replaces the goroutine dispatcher; the substitute must
// eventually call FetchCompleted with the request's token.
func WithDispatch(dispatch DispatchFunc) SelectionOption {
	return func(c *SelectionController) { c.dispatch = dispatch }
}

func NewSelectionController(fetcher *LevelFetcher, resolver *Resolver, opts ...SelectionOption) *SelectionController {
	c := &SelectionController{
		fetcher:  fetcher,
		resolver: resolver,
		slots:    make(map[hierarchy.Level]*levelSlot, len(hierarchy.Levels())),
	}
	for _, level := range hierarchy.Levels() {
		c.slots[level] = &levelSlot{state: StateUnselected}
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dispatch == nil {
		c.dispatch = c.asyncDispatch
	}
	return c
}

func (c *SelectionController) asyncDispatch(ctx context.Context, req FetchRequest) {
	// The fetch must outlive the user action that triggered it; there is no
	// request cancellation in this model, superseded results are discarded
	// by token on arrival instead.
	ctx = context.WithoutCancel(ctx)
	go func() {
		list, err := c.fetcher.Fetch(ctx, req.Level, req.ParentID)
		c.FetchCompleted(req.Level, req.Token, list, err)
	}()
}

// Mount puts the controller in its initial state: every level unselected,
// no candidates loaded except Client, which has no parent and is fetched
// eagerly.
func (c *SelectionController) Mount(ctx context.Context) {
	c.mu.Lock()
	for _, slot := range c.slots {
		*slot = levelSlot{state: StateUnselected, token: slot.token}
	}
	req := c.beginFetchLocked(hierarchy.LevelClient, "")
	c.mu.Unlock()

	c.dispatch(ctx, req)
}

// SetSelection changes one level's selection; an empty id clears it. Every
// descendant whose selected record no longer agrees with the value
// propagating down is cleared, then a fresh fetch is issued for the
// immediate child's candidates.
func (c *SelectionController) SetSelection(ctx context.Context, level hierarchy.Level, id string) {
	if !level.Valid() {
		return
	}

	c.mu.Lock()
	var events []any
	slot := c.slots[level]
	slot.selected = id
	events = append(events, SelectionChangedEvent{Level: level, ID: id})

	propagating := id
	for _, descendant := range level.Descendants() {
		d := c.slots[descendant]
		if d.selected == "" {
			propagating = ""
			continue
		}
		record, found := findRecord(d.candidates.Items, d.selected)
		if propagating == "" || !found || record.ParentID != propagating {
			c.clearSlotLocked(descendant)
			events = append(events, SelectionChangedEvent{Level: descendant, ID: ""})
			propagating = ""
			continue
		}
		propagating = d.selected
	}

	var requests []FetchRequest
	if child, ok := level.Child(); ok {
		if id == "" {
			// Nothing to list under a cleared selection; drop the child's
			// now-meaningless candidates.
			c.clearSlotLocked(child)
		} else {
			requests = append(requests, c.beginFetchLocked(child, id))
		}
	}
	c.mu.Unlock()

	c.publish(events...)
	for _, req := range requests {
		c.dispatch(ctx, req)
	}
}

// FetchCompleted applies one fetch result. A completion whose token is not
// the level's current token was superseded by a newer selection change and
// is discarded unconditionally; this is what keeps a slow response for a
// previous parent from repopulating a dropdown with wrong candidates.
func (c *SelectionController) FetchCompleted(level hierarchy.Level, token uint64, list hierarchy.CandidateList, err error) {
	c.mu.Lock()
	slot, ok := c.slots[level]
	if !ok || token != slot.token {
		c.mu.Unlock()
		if c.log != nil {
			c.log.WithFields(logrus.Fields{"level": level.String(), "token": token}).
				Debug("discarding stale candidate fetch")
		}
		return
	}

	var events []any
	slot.state = StateReady
	if err != nil {
		// Degrade candidates to empty but keep the selection and expose the
		// error, so a page can offer retry instead of rendering this as a
		// level with zero children.
		slot.candidates = hierarchy.CandidateList{Level: level, ForParent: slot.forParent, FetchToken: token}
		slot.fetchErr = err
		events = append(events, CandidatesFetchFailedEvent{Level: level, ForParent: slot.forParent, Err: err})
	} else {
		list.FetchToken = token
		slot.candidates = list
		slot.fetchErr = nil
		events = append(events, CandidatesLoadedEvent{List: list})
	}
	c.mu.Unlock()

	c.publish(events...)
}

// SeedFromResolution installs a resolved chain in one atomic update and
// issues one candidate fetch per level, each with a fresh token. The chain
// is already internally consistent, so no descendant clearing happens in
// between.
func (c *SelectionController) SeedFromResolution(ctx context.Context, resolution Resolution) {
	c.mu.Lock()
	for _, slot := range c.slots {
		token := slot.token
		*slot = levelSlot{state: StateUnselected, token: token}
	}
	for _, ref := range resolution.Chain {
		c.slots[ref.Level].selected = ref.ID
	}

	requests := []FetchRequest{c.beginFetchLocked(hierarchy.LevelClient, "")}
	for _, ref := range resolution.Chain {
		if child, ok := ref.Level.Child(); ok {
			requests = append(requests, c.beginFetchLocked(child, ref.ID))
		}
	}
	c.mu.Unlock()

	c.publish(ChainResolvedEvent{Chain: resolution.Chain})
	for _, req := range requests {
		c.dispatch(ctx, req)
	}
}

// ResolveFromDeepLink reconstructs the chain for one leaf reference and, on
// success, seeds the selection state from it. On failure the state is left
// untouched; the calling page falls back to an unselected top-of-chain
// state rather than a half-populated one.
func (c *SelectionController) ResolveFromDeepLink(ctx context.Context, level hierarchy.Level, id string) (Resolution, error) {
	resolution, err := c.resolver.Resolve(ctx, hierarchy.EntityRef{Level: level, ID: id}, c.CurrentSelection())
	if err != nil {
		return Resolution{}, err
	}
	c.SeedFromResolution(ctx, resolution)
	return resolution, nil
}

// CurrentSelection returns a copy of the per-level selections; unselected
// levels are absent.
func (c *SelectionController) CurrentSelection() map[hierarchy.Level]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[hierarchy.Level]string, len(c.slots))
	for level, slot := range c.slots {
		if slot.selected != "" {
			out[level] = slot.selected
		}
	}
	return out
}

// CandidatesFor returns a copy of one level's candidate records, possibly
// empty while the level is still loading.
func (c *SelectionController) CandidatesFor(level hierarchy.Level) []hierarchy.EntityRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	slot, ok := c.slots[level]
	if !ok || len(slot.candidates.Items) == 0 {
		return nil
	}
	out := make([]hierarchy.EntityRecord, len(slot.candidates.Items))
	copy(out, slot.candidates.Items)
	return out
}

// Snapshot returns the full read-only view, root to leaf.
func (c *SelectionController) Snapshot() []LevelSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LevelSnapshot, 0, len(c.slots))
	for _, level := range hierarchy.Levels() {
		slot := c.slots[level]
		snapshot := LevelSnapshot{
			Level:      level,
			SelectedID: slot.selected,
			State:      slot.state,
			ForParent:  slot.forParent,
			FetchErr:   slot.fetchErr,
		}
		if len(slot.candidates.Items) > 0 {
			snapshot.Candidates = make([]hierarchy.EntityRecord, len(slot.candidates.Items))
			copy(snapshot.Candidates, slot.candidates.Items)
		}
		out = append(out, snapshot)
	}
	return out
}

// beginFetchLocked bumps the level's token, marks it loading and returns
// the request to dispatch after the lock is released.
func (c *SelectionController) beginFetchLocked(level hierarchy.Level, parentID string) FetchRequest {
	slot := c.slots[level]
	slot.token++
	slot.state = StateLoading
	if slot.forParent != parentID {
		// The candidates on hand belong to the previous parent; showing
		// them while the new fetch is in flight would be wrong.
		slot.candidates = hierarchy.CandidateList{}
	}
	slot.forParent = parentID
	slot.fetchErr = nil
	return FetchRequest{Level: level, ParentID: parentID, Token: slot.token}
}

// clearSlotLocked resets one level to unselected and invalidates any fetch
// still in flight for it.
func (c *SelectionController) clearSlotLocked(level hierarchy.Level) {
	slot := c.slots[level]
	slot.token++
	slot.selected = ""
	slot.state = StateUnselected
	slot.forParent = ""
	slot.candidates = hierarchy.CandidateList{}
	slot.fetchErr = nil
}

func (c *SelectionController) publish(events ...any) {
	if c.bus == nil {
		return
	}
	for _, event := range events {
		c.bus.Publish(event)
	}
}

func findRecord(items []hierarchy.EntityRecord, id string) (hierarchy.EntityRecord, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return hierarchy.EntityRecord{}, false
}
