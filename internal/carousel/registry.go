// internal/carousel/registry.go
package carousel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RegistryConfig controls how mounted carousels behave.
type RegistryConfig struct {
	Interval    time.Duration
	IdleTimeout time.Duration
	Clock       clockwork.Clock
}

type entry struct {
	carousel *Carousel
	lastSeen time.Time
}

// Registry keeps one carousel per signed-in user. Mount and Unmount stand in
// for the dashboard appearing and going away.
type Registry struct {
	cfg RegistryConfig

	mu      sync.Mutex
	items   []Item
	entries map[string]*entry
}

func NewRegistry(items []Item, cfg RegistryConfig) (*Registry, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	return &Registry{
		cfg:     cfg,
		items:   copyItems(items),
		entries: make(map[string]*entry),
	}, nil
}

// Mount returns the carousel for key, creating and starting it if needed.
func (r *Registry) Mount(key string) (*Carousel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.cfg.Clock.Now()
	if e, ok := r.entries[key]; ok {
		e.lastSeen = now
		return e.carousel, nil
	}
	c, err := New(r.items, r.cfg.Clock, r.cfg.Interval)
	if err != nil {
		return nil, fmt.Errorf("mount carousel for %q: %w", key, err)
	}
	c.Start()
	r.entries[key] = &entry{carousel: c, lastSeen: now}
	slog.Debug("Carousel mounted", "key", key, "items", len(r.items))
	return c, nil
}

// Lookup returns a mounted carousel without creating one.
func (r *Registry) Lookup(key string) (*Carousel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.cfg.Clock.Now()
	return e.carousel, true
}

// Unmount stops and forgets the carousel for key.
func (r *Registry) Unmount(key string) bool {
	r.mu.Lock()
	e, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()
	if !ok {
		return false
	}
	e.carousel.Close()
	slog.Debug("Carousel unmounted", "key", key)
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) Items() []Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyItems(r.items)
}

// SetItems replaces the sequence used by new and already mounted carousels.
func (r *Registry) SetItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	r.mu.Lock()
	if sameItems(r.items, items) {
		r.mu.Unlock()
		return nil
	}
	r.items = copyItems(items)
	mounted := make([]*Carousel, 0, len(r.entries))
	for _, e := range r.entries {
		mounted = append(mounted, e.carousel)
	}
	r.mu.Unlock()

	for _, c := range mounted {
		if err := c.SetItems(items); err != nil {
			return err
		}
	}
	slog.Info("Featured items updated", "items", len(items), "mounted_carousels", len(mounted))
	return nil
}

// SweepIdle unmounts carousels nobody has looked at for IdleTimeout.
func (r *Registry) SweepIdle() int {
	now := r.cfg.Clock.Now()
	r.mu.Lock()
	var idle []*Carousel
	for key, e := range r.entries {
		if now.Sub(e.lastSeen) > r.cfg.IdleTimeout {
			idle = append(idle, e.carousel)
			delete(r.entries, key)
		}
	}
	r.mu.Unlock()

	for _, c := range idle {
		c.Close()
	}
	if len(idle) > 0 {
		slog.Info("Idle carousels unmounted", "count", len(idle))
	}
	return len(idle)
}

// StartSweeper runs SweepIdle every interval until ctx is done.
func (r *Registry) StartSweeper(ctx context.Context, every time.Duration) {
	slog.Info("Carousel idle sweeper started", "interval", every.String(), "idle_timeout", r.cfg.IdleTimeout.String())
	ticker := r.cfg.Clock.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				r.SweepIdle()
			}
		}
	}()
}

// ItemLoader fetches the current featured item sequence.
type ItemLoader func(ctx context.Context) ([]Item, error)

// StartItemSync polls load every interval and pushes changes to SetItems.
func (r *Registry) StartItemSync(ctx context.Context, every time.Duration, load ItemLoader) {
	slog.Info("Featured items sync started", "interval", every.String())
	ticker := r.cfg.Clock.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				r.syncItems(ctx, load)
			}
		}
	}()
}

func (r *Registry) syncItems(ctx context.Context, load ItemLoader) {
	items, err := load(ctx)
	if err != nil {
		slog.Error("Failed to load featured items", "error", err)
		return
	}
	if len(items) == 0 {
		slog.Warn("Featured items source is empty, keeping current sequence")
		return
	}
	if err := r.SetItems(items); err != nil {
		slog.Error("Failed to apply featured items", "error", err)
	}
}

// Close unmounts every carousel.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()
	for _, e := range entries {
		e.carousel.Close()
	}
}
