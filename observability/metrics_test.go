package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}

	// Verify all metrics are initialized
	if m.ResearchRunsTotal == nil {
		t.Error("ResearchRunsTotal is nil")
	}
	if m.ResearchDuration == nil {
		t.Error("ResearchDuration is nil")
	}
	if m.ArticlesAnalyzedTotal == nil {
		t.Error("ArticlesAnalyzedTotal is nil")
	}
	if m.ExternalAPIRequestsTotal == nil {
		t.Error("ExternalAPIRequestsTotal is nil")
	}
	if m.ExternalAPIErrorsTotal == nil {
		t.Error("ExternalAPIErrorsTotal is nil")
	}
	if m.ExternalAPIDuration == nil {
		t.Error("ExternalAPIDuration is nil")
	}
	if m.MediaJobsTotal == nil {
		t.Error("MediaJobsTotal is nil")
	}
	if m.MediaJobDuration == nil {
		t.Error("MediaJobDuration is nil")
	}
	if m.CircuitBreakerState == nil {
		t.Error("CircuitBreakerState is nil")
	}
	if m.CircuitBreakerTrips == nil {
		t.Error("CircuitBreakerTrips is nil")
	}
}

func TestRecordExternalAPIRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordExternalAPIRequest("openai", "find_articles")
	m.RecordExternalAPIRequest("openai", "find_articles")
	m.RecordExternalAPIRequest("alphavantage", "quote")

	openaiCount := testutil.ToFloat64(m.ExternalAPIRequestsTotal.WithLabelValues("openai", "find_articles"))
	if openaiCount != 2 {
		t.Errorf("openai find_articles count = %v, want 2", openaiCount)
	}

	avCount := testutil.ToFloat64(m.ExternalAPIRequestsTotal.WithLabelValues("alphavantage", "quote"))
	if avCount != 1 {
		t.Errorf("alphavantage quote count = %v, want 1", avCount)
	}
}

func TestRecordExternalAPIError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordExternalAPIError("elevenlabs", "synthesize", "http_error")

	count := testutil.ToFloat64(m.ExternalAPIErrorsTotal.WithLabelValues("elevenlabs", "synthesize", "http_error"))
	if count != 1 {
		t.Errorf("error count = %v, want 1", count)
	}
}

func TestRecordResearchRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordResearchRun("success", 2*time.Second)
	m.RecordResearchRun("success", 3*time.Second)
	m.RecordResearchRun("no_urls", time.Second)

	successCount := testutil.ToFloat64(m.ResearchRunsTotal.WithLabelValues("success"))
	if successCount != 2 {
		t.Errorf("success run count = %v, want 2", successCount)
	}

	noURLCount := testutil.ToFloat64(m.ResearchRunsTotal.WithLabelValues("no_urls"))
	if noURLCount != 1 {
		t.Errorf("no_urls run count = %v, want 1", noURLCount)
	}
}

func TestRecordArticleAnalyzed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordArticleAnalyzed("ok")
	m.RecordArticleAnalyzed("parse_failed")
	m.RecordArticleAnalyzed("ok")

	okCount := testutil.ToFloat64(m.ArticlesAnalyzedTotal.WithLabelValues("ok"))
	if okCount != 2 {
		t.Errorf("ok count = %v, want 2", okCount)
	}
}

func TestRecordMediaJob(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordMediaJob("compose", "success", 30*time.Second)
	m.RecordMediaJob("synthesize", "error", time.Second)

	composeCount := testutil.ToFloat64(m.MediaJobsTotal.WithLabelValues("compose", "success"))
	if composeCount != 1 {
		t.Errorf("compose success count = %v, want 1", composeCount)
	}
}

func TestCircuitBreakerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.SetCircuitBreakerState("openai", 2)
	m.RecordCircuitBreakerTrip("openai")

	state := testutil.ToFloat64(m.CircuitBreakerState.WithLabelValues("openai"))
	if state != 2 {
		t.Errorf("breaker state = %v, want 2", state)
	}

	trips := testutil.ToFloat64(m.CircuitBreakerTrips.WithLabelValues("openai"))
	if trips != 1 {
		t.Errorf("breaker trips = %v, want 1", trips)
	}
}

func TestTimer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	timer := m.NewTimer()
	time.Sleep(10 * time.Millisecond)

	if timer.Duration() < 10*time.Millisecond {
		t.Errorf("Duration = %v, want >= 10ms", timer.Duration())
	}

	timer.ObserveExternalAPI("openai", "extract")
	timer.ObserveResearch("success")
	timer.ObserveMediaJob("compose", "success")
}

func TestGetMetrics(t *testing.T) {
	globalMetrics = nil
	m := GetMetrics()
	if m == nil {
		t.Fatal("GetMetrics returned nil")
	}
	if GetMetrics() != m {
		t.Error("GetMetrics should return the same instance")
	}
}
