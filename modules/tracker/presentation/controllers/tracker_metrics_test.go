package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestInstrumentAPI_UsesStableEndpointLabel(t *testing.T) {
	c := &TrackerAPIController{}

	handler := c.instrumentAPI("tracker.test.endpoint", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/tracker/api/sessions/0f6c9e9e-aaaa-bbbb-cccc-000000000000", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range mfs {
		if mf.GetName() != "tracker_api_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["endpoint"] == "tracker.test.endpoint" && labels["result"] == "4xx" {
				require.NotNil(t, m.GetCounter())
				require.GreaterOrEqual(t, m.GetCounter().GetValue(), float64(1))
				found = true
			}
		}
	}
	require.True(t, found, "expected metric tracker_api_requests_total with endpoint label")
}
