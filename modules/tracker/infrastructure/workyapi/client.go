package workyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"

	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
)

// Collection paths of the upstream Worky REST API, one per level.
var collections = map[hierarchy.Level]string{
	hierarchy.LevelClient:    "clients",
	hierarchy.LevelProgram:   "programs",
	hierarchy.LevelProject:   "projects",
	hierarchy.LevelUseCase:   "usecases",
	hierarchy.LevelUserStory: "userstories",
	hierarchy.LevelTask:      "tasks",
	hierarchy.LevelSubtask:   "subtasks",
}

// Client implements the hierarchy read contract over the upstream Worky
// REST API. The API is inconsistent about attribute spellings (snake_case
// on list endpoints, camelCase on detail endpoints), so every payload is
// normalized through the hierarchy alias tables.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.http = c }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) List(ctx context.Context, level hierarchy.Level) ([]hierarchy.EntityRecord, error) {
	collection, err := collectionFor(level)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, level, c.baseURL+"/api/v1/"+collection)
}

func (c *Client) ListByParent(ctx context.Context, level hierarchy.Level, parentID string) ([]hierarchy.EntityRecord, error) {
	collection, err := collectionFor(level)
	if err != nil {
		return nil, err
	}
	aliases := hierarchy.AliasesFor(level, hierarchy.FieldParentID)
	if len(aliases) == 0 {
		return c.List(ctx, level)
	}
	// The first alias is the canonical snake_case spelling the list
	// endpoints filter by.
	endpoint := fmt.Sprintf(
		"%s/api/v1/%s?%s=%s",
		c.baseURL, collection, aliases[0], url.QueryEscape(parentID),
	)
	return c.list(ctx, level, endpoint)
}

func (c *Client) GetByID(ctx context.Context, level hierarchy.Level, id string) (hierarchy.EntityRecord, error) {
	collection, err := collectionFor(level)
	if err != nil {
		return hierarchy.EntityRecord{}, err
	}
	endpoint := fmt.Sprintf("%s/api/v1/%s/%s", c.baseURL, collection, url.PathEscape(id))

	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return hierarchy.EntityRecord{}, err
	}
	switch {
	case status == http.StatusNotFound:
		return hierarchy.EntityRecord{}, hierarchy.ErrNotFound
	case status < 200 || status > 299:
		return hierarchy.EntityRecord{}, fmt.Errorf("workyapi: GET %s: status %d", endpoint, status)
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return hierarchy.EntityRecord{}, gerrors.Wrap(err, "decode "+collection+" detail")
	}
	return hierarchy.NormalizeRecord(level, raw)
}

func (c *Client) list(ctx context.Context, level hierarchy.Level, endpoint string) ([]hierarchy.EntityRecord, error) {
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("workyapi: GET %s: status %d", endpoint, status)
	}

	raws, err := decodeCollection(body)
	if err != nil {
		return nil, gerrors.Wrap(err, "decode "+level.String()+" list")
	}
	out := make([]hierarchy.EntityRecord, 0, len(raws))
	for _, raw := range raws {
		record, err := hierarchy.NormalizeRecord(level, raw)
		if err != nil {
			// Records with no resolvable id cannot populate a dropdown or
			// anchor a resolution; skip them rather than fail the page.
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// get returns the raw response body and status. Decoding is left to the
// caller so a corrupt body on a 200 surfaces as an error there instead of
// degrading into an empty result, while error statuses with non-JSON
// bodies are still mapped by status first.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "GET "+endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, gerrors.Wrap(err, "read "+endpoint)
	}
	return body, resp.StatusCode, nil
}

func collectionFor(level hierarchy.Level) (string, error) {
	collection, ok := collections[level]
	if !ok {
		return "", fmt.Errorf("workyapi: no collection for level %d", int(level))
	}
	return collection, nil
}

// decodeCollection accepts both payload shapes the upstream emits: a bare
// array and an {"items": [...]} envelope. Anything else, including an
// empty or truncated body, is an error.
func decodeCollection(body []byte) ([]map[string]any, error) {
	var direct []map[string]any
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}
	var envelope struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}
