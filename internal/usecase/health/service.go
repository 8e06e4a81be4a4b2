// Package health aggregates liveness checks for the components search
// depends on. The retrieval store is the hard dependency; embedding and
// cache failures only degrade search, so they only degrade the report.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates search still works but without full quality.
	Degraded Status = "degraded"
	// Unhealthy indicates search cannot serve requests at all.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
	cache     CachePinger
}

// New creates a Service. embedding and cache can be nil.
func New(db DBPinger, embedding EmbeddingChecker, cache CachePinger) *Service {
	return &Service{db: db, embedding: embedding, cache: cache}
}

// Check runs health checks against all components. A failing store makes
// the report Unhealthy; any other failure makes it Degraded, mirroring how
// search itself behaves when that component is down.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		status = Unhealthy
	} else {
		checks["database"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["cache"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
