package health

import (
	"context"
	"time"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Service encapsulates health-related checks.
type Service struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewService constructs a new health service with named checks.
func NewService(checks map[string]Check) *Service {
	return &Service{checks: checks, timeout: 2 * time.Second}
}

// Status runs every check and reports overall health plus a per-check
// result. A service without checks is always healthy.
func (s *Service) Status(ctx context.Context) (bool, map[string]string) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ok := true
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			ok = false
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}
	return ok, results
}
