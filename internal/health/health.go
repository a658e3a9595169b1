package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ilkin0/mediagw/internal/upstream"
)

type State string

const (
	StateUnknown     State = "unknown"
	StateReachable   State = "reachable"
	StateUnreachable State = "unreachable"
)

type Status struct {
	mu        sync.RWMutex
	state     State
	checkedAt time.Time
}

func NewStatus() *Status {
	return &Status{state: StateUnknown}
}

func (s *Status) Set(state State, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.checkedAt = at
}

func (s *Status) Snapshot() (State, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.checkedAt
}

// Prober checks that the upstream answers. Any response below 500 counts
// as reachable; the listing itself is not inspected.
type Prober struct {
	client *upstream.Client
	status *Status
	now    func() time.Time
}

func NewProber(client *upstream.Client, status *Status) *Prober {
	return &Prober{
		client: client,
		status: status,
		now:    time.Now,
	}
}

func (p *Prober) Name() string {
	return "upstream-probe"
}

func (p *Prober) Run(ctx context.Context) error {
	resp, err := p.client.Get(ctx, nil, nil)
	if err != nil {
		p.status.Set(StateUnreachable, p.now())
		return fmt.Errorf("upstream probe failed: %w", err)
	}

	if resp.Status >= http.StatusInternalServerError {
		p.status.Set(StateUnreachable, p.now())
		return fmt.Errorf("upstream probe failed: status %d", resp.Status)
	}

	p.status.Set(StateReachable, p.now())
	return nil
}
