package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/permissions"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/presentation/mappers"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/presentation/viewmodels"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/services"
)

// TrackerAPIController exposes the hierarchy engine over HTTP: candidate
// lists per level, deep-link resolution, duration-level policy and
// per-page selection sessions.
type TrackerAPIController struct {
	fetcher  *services.LevelFetcher
	resolver *services.Resolver
	sessions *services.SessionRegistry
	basePath string
}

func NewTrackerAPIController(
	fetcher *services.LevelFetcher,
	resolver *services.Resolver,
	sessions *services.SessionRegistry,
) *TrackerAPIController {
	return &TrackerAPIController{
		fetcher:  fetcher,
		resolver: resolver,
		sessions: sessions,
		basePath: "/tracker/api",
	}
}

func (c *TrackerAPIController) Key() string {
	return c.basePath
}

func (c *TrackerAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/levels", c.instrumentAPI("tracker.levels", c.Levels)).Methods(http.MethodGet)
	router.HandleFunc("/levels/{level}/options", c.instrumentAPI("tracker.options", c.Options)).Methods(http.MethodGet)
	router.HandleFunc("/resolve", c.instrumentAPI("tracker.resolve", c.Resolve)).Methods(http.MethodPost)
	router.HandleFunc("/duration-levels", c.instrumentAPI("tracker.duration_levels", c.DurationLevels)).Methods(http.MethodGet)

	router.HandleFunc("/sessions", c.instrumentAPI("tracker.sessions.create", c.CreateSession)).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}", c.instrumentAPI("tracker.sessions.snapshot", c.SessionSnapshot)).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}", c.instrumentAPI("tracker.sessions.close", c.CloseSession)).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{id}/selection", c.instrumentAPI("tracker.sessions.selection", c.SetSelection)).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/resolve", c.instrumentAPI("tracker.sessions.resolve", c.ResolveIntoSession)).Methods(http.MethodPost)
}

func (c *TrackerAPIController) Levels(w http.ResponseWriter, _ *http.Request) {
	levels := hierarchy.Levels()
	out := make([]map[string]any, 0, len(levels))
	for _, level := range levels {
		entry := map[string]any{"name": level.String()}
		if parent, ok := level.Parent(); ok {
			entry["parent"] = parent.String()
		}
		if child, ok := level.Child(); ok {
			entry["child"] = child.String()
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"levels": out})
}

func (c *TrackerAPIController) Options(w http.ResponseWriter, r *http.Request) {
	level, ok := parseLevelVar(w, r)
	if !ok {
		return
	}
	parentID := strings.TrimSpace(r.URL.Query().Get("parent_id"))

	list, err := c.fetcher.Fetch(r.Context(), level, parentID)
	if err != nil {
		if errors.Is(err, hierarchy.ErrParentRequired) {
			writeAPIError(w, http.StatusBadRequest, "TRACKER_PARENT_REQUIRED", "parent_id is required below the client level")
			return
		}
		writeAPIError(w, http.StatusBadGateway, "TRACKER_FETCH_FAILED", "candidate fetch failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"level":      list.Level.String(),
		"for_parent": list.ForParent,
		"options":    mappers.RecordsToOptions(list.Items),
	})
}

type resolveRequest struct {
	Level string `json:"level"`
	ID    string `json:"id"`
}

func (c *TrackerAPIController) Resolve(w http.ResponseWriter, r *http.Request) {
	ref, ok := decodeResolveRequest(w, r)
	if !ok {
		return
	}

	resolution, err := c.resolver.Resolve(r.Context(), ref, nil)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.ResolutionToView(resolution))
}

func (c *TrackerAPIController) DurationLevels(w http.ResponseWriter, r *http.Request) {
	current, err := hierarchy.ParseLevel(r.URL.Query().Get("current"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_LEVEL", "unknown current level")
		return
	}
	role, err := permissions.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_ROLE", "unknown role")
		return
	}

	view := viewmodels.DurationLevelsView{
		Levels: mappers.LevelsToNames(services.AvailableDurationLevels(current, role)),
	}
	if chosenRaw := strings.TrimSpace(r.URL.Query().Get("chosen")); chosenRaw != "" {
		chosen, err := hierarchy.ParseLevel(chosenRaw)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_LEVEL", "unknown chosen level")
			return
		}
		if effective, ok := services.NormalizeDurationLevel(chosen, current, role); ok {
			view.Effective = effective.String()
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (c *TrackerAPIController) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, controller := c.sessions.Create()
	controller.Mount(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"session_id": id})
}

func (c *TrackerAPIController) SessionSnapshot(w http.ResponseWriter, r *http.Request) {
	controller, ok := c.useSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mappers.SnapshotToView(controller.Snapshot()))
}

func (c *TrackerAPIController) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := c.sessions.Close(mux.Vars(r)["id"]); err != nil {
		writeAPIError(w, http.StatusNotFound, "TRACKER_SESSION_NOT_FOUND", "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectionRequest struct {
	Level string `json:"level"`
	ID    string `json:"id"`
}

func (c *TrackerAPIController) SetSelection(w http.ResponseWriter, r *http.Request) {
	controller, ok := c.useSession(w, r)
	if !ok {
		return
	}

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_JSON", "invalid json")
		return
	}
	level, err := hierarchy.ParseLevel(req.Level)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_LEVEL", "unknown level")
		return
	}

	controller.SetSelection(r.Context(), level, strings.TrimSpace(req.ID))
	writeJSON(w, http.StatusAccepted, mappers.SnapshotToView(controller.Snapshot()))
}

func (c *TrackerAPIController) ResolveIntoSession(w http.ResponseWriter, r *http.Request) {
	controller, ok := c.useSession(w, r)
	if !ok {
		return
	}
	ref, ok := decodeResolveRequest(w, r)
	if !ok {
		return
	}

	resolution, err := controller.ResolveFromDeepLink(r.Context(), ref.Level, ref.ID)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.ResolutionToView(resolution))
}

func (c *TrackerAPIController) useSession(w http.ResponseWriter, r *http.Request) (*services.SelectionController, bool) {
	controller, err := c.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, http.StatusNotFound, "TRACKER_SESSION_NOT_FOUND", "session not found")
		return nil, false
	}
	return controller, true
}

func parseLevelVar(w http.ResponseWriter, r *http.Request) (hierarchy.Level, bool) {
	level, err := hierarchy.ParseLevel(mux.Vars(r)["level"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_LEVEL", "unknown level")
		return 0, false
	}
	return level, true
}

func decodeResolveRequest(w http.ResponseWriter, r *http.Request) (hierarchy.EntityRef, bool) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_JSON", "invalid json")
		return hierarchy.EntityRef{}, false
	}
	level, err := hierarchy.ParseLevel(req.Level)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_LEVEL", "unknown level")
		return hierarchy.EntityRef{}, false
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		writeAPIError(w, http.StatusBadRequest, "TRACKER_INVALID_REQUEST", "id is required")
		return hierarchy.EntityRef{}, false
	}
	return hierarchy.EntityRef{Level: level, ID: id}, true
}

func writeResolveError(w http.ResponseWriter, err error) {
	var ancestorErr *hierarchy.AncestorNotFoundError
	switch {
	case errors.As(err, &ancestorErr):
		writeAPIErrorMeta(w, http.StatusNotFound, "TRACKER_ANCESTOR_NOT_FOUND", "ancestor chain is broken",
			map[string]string{"level": ancestorErr.Level.String()})
	case errors.Is(err, hierarchy.ErrNotFound):
		writeAPIError(w, http.StatusNotFound, "TRACKER_NOT_FOUND", "entity not found")
	default:
		writeAPIError(w, http.StatusBadGateway, "TRACKER_FETCH_FAILED", "upstream fetch failed")
	}
}
