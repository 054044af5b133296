package workyapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
)

func TestClient_List_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/clients", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"CLI-1","name":"Acme"},{"id":"CLI-2","name":"Globex"}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	records, err := client.List(context.Background(), hierarchy.LevelClient)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Acme", records[0].DisplayName)
}

func TestClient_List_ItemsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"CLI-1","title":"Acme"}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	records, err := client.List(context.Background(), hierarchy.LevelClient)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Acme", records[0].DisplayName)
}

func TestClient_List_SkipsRecordsWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"orphan"},{"id":"CLI-1","name":"Acme"}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	records, err := client.List(context.Background(), hierarchy.LevelClient)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "CLI-1", records[0].ID)
}

func TestClient_ListByParent_FiltersBySnakeCaseAlias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/tasks", r.URL.Path)
		require.Equal(t, "US-9", r.URL.Query().Get("user_story_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"T-77","name":"Wire gateway","userStoryId":"US-9"}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	records, err := client.ListByParent(context.Background(), hierarchy.LevelTask, "US-9")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "US-9", records[0].ParentID)
}

func TestClient_ListByParent_ClientFallsBackToList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"CLI-1","name":"Acme"}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	records, err := client.ListByParent(context.Background(), hierarchy.LevelClient, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestClient_GetByID_CamelCaseDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/userstories/US-9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"US-9","displayName":"Pay by card","useCaseId":"UC-3"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	record, err := client.GetByID(context.Background(), hierarchy.LevelUserStory, "US-9")
	require.NoError(t, err)
	require.Equal(t, "Pay by card", record.DisplayName)
	require.Equal(t, "UC-3", record.ParentID)
}

func TestClient_GetByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.GetByID(context.Background(), hierarchy.LevelTask, "T-404")
	require.ErrorIs(t, err, hierarchy.ErrNotFound)
}

func TestClient_List_TruncatedBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"id":"CLI-1","na`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	records, err := client.List(context.Background(), hierarchy.LevelClient)
	require.Error(t, err)
	require.Empty(t, records)
}

func TestClient_GetByID_CorruptBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"T-77","name":`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.GetByID(context.Background(), hierarchy.LevelTask, "T-77")
	require.Error(t, err)
}

func TestClient_UnknownLevel(t *testing.T) {
	client := New("http://localhost:0", time.Second)

	_, err := client.List(context.Background(), hierarchy.Level(42))
	require.Error(t, err)
	_, err = client.ListByParent(context.Background(), hierarchy.Level(42), "X-1")
	require.Error(t, err)
	_, err = client.GetByID(context.Background(), hierarchy.Level(42), "X-1")
	require.Error(t, err)
}

func TestClient_List_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.List(context.Background(), hierarchy.LevelProject)
	require.Error(t, err)
}
