package health

import "context"

// DBPinger checks retrieval store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks embedding cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
