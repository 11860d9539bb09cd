package ui

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

const DefaultIdleTimeout = 30 * time.Minute

var workspacesActive = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ativos_workspaces_active",
	Help: "Workspaces de sessão em memória",
})

// Registry guarda os workspaces por id e descarta os ociosos.
type Registry struct {
	factory func(id string) *Workspace
	clock   Clock
	idle    time.Duration
	log     zerolog.Logger

	mu    sync.Mutex
	items map[string]*Workspace
}

func NewRegistry(factory func(id string) *Workspace, clock Clock, idle time.Duration, log zerolog.Logger) *Registry {
	if clock == nil {
		clock = RealClock{}
	}
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Registry{
		factory: factory,
		clock:   clock,
		idle:    idle,
		log:     log,
		items:   map[string]*Workspace{},
	}
}

// Get devolve o workspace do id, criando-o se preciso. Id vazio gera um novo.
func (r *Registry) Get(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if w, ok := r.items[id]; ok {
			w.Touch()
			return w
		}
	} else {
		id = uuid.NewString()
	}

	w := r.factory(id)
	r.items[id] = w
	workspacesActive.Inc()
	r.log.Debug().Str("workspace", id).Msg("workspace created")
	return w
}

func (r *Registry) Lookup(id string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.items[id]
	return w, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep remove os workspaces sem uso há mais que o timeout. Devolve quantos saíram.
func (r *Registry) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	var expired []*Workspace
	for id, w := range r.items {
		if now.Sub(w.LastSeen()) > r.idle {
			expired = append(expired, w)
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	for _, w := range expired {
		w.Close()
		workspacesActive.Dec()
		r.log.Debug().Str("workspace", w.ID).Msg("idle workspace removed")
	}
	return len(expired)
}

// Run executa Sweep periodicamente até o contexto ser cancelado.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Info().Int("removed", n).Msg("swept idle workspaces")
			}
		}
	}
}

// CloseAll encerra todos os workspaces; os streams de eventos abertos terminam.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	items := r.items
	r.items = map[string]*Workspace{}
	r.mu.Unlock()

	for _, w := range items {
		w.Close()
		workspacesActive.Dec()
	}
}
