package test

import "context"

// HealthCheckerStub returns a fixed readiness result.
type HealthCheckerStub struct {
	Err   error
	Calls int
}

// HealthCheck counts calls and returns Err.
func (h *HealthCheckerStub) HealthCheck(context.Context) error {
	h.Calls++
	return h.Err
}
