package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Delete("/api/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodDelete, "/api/leads/{id}", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/leads/abc", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodDelete, "/api/leads/{id}", "404"))

	assert.Equal(t, before+1, after)
}

func TestStoreObserverCountsFailures(t *testing.T) {
	before := testutil.ToFloat64(integrationErrors.WithLabelValues("google_sheets"))
	StoreObserver{}.MirrorSyncFailed(errors.New("quota"))
	assert.Equal(t, before+1, testutil.ToFloat64(integrationErrors.WithLabelValues("google_sheets")))
}

func TestRecordProposalAndEvents(t *testing.T) {
	RecordProposal(true)
	RecordProposal(false)
	assert.GreaterOrEqual(t, testutil.ToFloat64(proposalsGenerated.WithLabelValues("ai")), 1.0)

	RecordLeadEvent("lead.created", errors.New("closed"))
	assert.GreaterOrEqual(t, testutil.ToFloat64(leadEventsPublished.WithLabelValues("lead.created", "error")), 1.0)
}
