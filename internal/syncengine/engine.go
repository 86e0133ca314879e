// Package syncengine moves data between the local mirror and the remote
// document database. It is the only component that holds both stores at
// once; everything else is bound to a single backend.
package syncengine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/famsdev/fams_backend/internal/store"
	"github.com/famsdev/fams_backend/internal/store/localstore"
)

// maxReportErrors caps how many per-row failures a report carries. Past
// that the count still climbs but the messages stop accumulating.
const maxReportErrors = 25

// Remote is the remote side of a sync flow: the full store surface plus a
// cheap liveness probe. Flows ping first so a dead link fails fast as
// store.ErrUnavailable instead of degrading into hundreds of row errors.
type Remote interface {
	store.Store
	Ping(ctx context.Context) error
}

// Engine runs the sync flows. Flows are single-flight: a mutex serializes
// hydration, flushes and schedule replacement so two overlapping runs cannot
// interleave their writes.
type Engine struct {
	mu     sync.Mutex
	local  *localstore.Store
	remote Remote
	log    zerolog.Logger
}

// New builds an engine over the local mirror and the remote store.
func New(local *localstore.Store, remote Remote, log zerolog.Logger) *Engine {
	return &Engine{local: local, remote: remote, log: log.With().Str("component", "syncengine").Logger()}
}

// Report summarizes one flow run. Partial is set when some rows failed while
// others succeeded; the flow keeps going past individual row errors.
type Report struct {
	Counts  map[string]int `json:"counts"`
	Errors  []string       `json:"errors,omitempty"`
	Partial bool           `json:"partial"`
}

func newReport() *Report {
	return &Report{Counts: map[string]int{}}
}

func (r *Report) addError(msg string) {
	r.Partial = true
	if len(r.Errors) < maxReportErrors {
		r.Errors = append(r.Errors, msg)
	}
}
