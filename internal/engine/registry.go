package engine

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/agrinexus/farm-twin/internal/platform/logger"
)

// Registry owns the engine and ticker for every farm the server has
// seen. Engines are created lazily on first access; each gets its own
// random source so farms evolve independently.
type Registry struct {
	mu      sync.Mutex
	cfg     Config
	farms   map[string]*farmEntry
	ctx     context.Context
	options RegistryOptions
	logger  *logger.Logger
}

type farmEntry struct {
	engine *Engine
	ticker *Ticker
}

// RegistryOptions bundle the collaborators every new farm is wired to.
type RegistryOptions struct {
	TickInterval time.Duration
	Broadcaster  Broadcaster
	Persister    Persister

	// Seed, when non-zero, makes farm creation deterministic for
	// tests. Each farm still gets a distinct stream.
	Seed int64
}

// NewRegistry builds a registry whose farms all share the given
// config. The context bounds the lifetime of every ticker it starts.
func NewRegistry(ctx context.Context, cfg Config, opts RegistryOptions, log *logger.Logger) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Registry{
		cfg:     cfg,
		farms:   make(map[string]*farmEntry),
		ctx:     ctx,
		options: opts,
		logger:  log,
	}, nil
}

// Get returns the engine for a farm, creating and starting it on first
// access.
func (r *Registry) Get(farmID string) (*Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.farms[farmID]; ok {
		return entry.engine, nil
	}

	seed := r.options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Mix the farm ID in so every farm draws a distinct stream.
	for _, c := range farmID {
		seed = seed*31 + int64(c)
	}

	eng, err := New(r.cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	ticker := NewTicker(farmID, eng, r.options.TickInterval, r.options.Broadcaster, r.options.Persister, r.logger)
	go ticker.Start(r.ctx)

	r.farms[farmID] = &farmEntry{engine: eng, ticker: ticker}
	r.logger.Event("FARM_CREATED", farmID, "engine and ticker started")
	return eng, nil
}

// Lookup returns the engine for a farm without creating one.
func (r *Registry) Lookup(farmID string) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.farms[farmID]
	if !ok {
		return nil, false
	}
	return entry.engine, true
}

// FarmIDs lists the farms currently simulated, sorted for stable
// output.
func (r *Registry) FarmIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.farms))
	for id := range r.farms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StopAll stops every ticker. The registry remains usable for reads
// but farms no longer advance.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.farms {
		entry.ticker.Stop()
		r.logger.Info("Stopped ticker for farm " + id)
	}
}
