package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"coderr-web/logger"
	"coderr-web/metrics"
	"coderr-web/models"

	"github.com/google/uuid"
)

type session struct {
	controller *OfferListController
	lastAccess time.Time
}

// Registry keeps one OfferListController per browser session.
type Registry struct {
	source      OfferSource
	metrics     metrics.MetricsCollector
	idleTimeout time.Duration
	now         func() time.Time
	log         *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry creates an empty Registry. Sessions unused for longer than
// idleTimeout are dropped by Cleanup.
func NewRegistry(source OfferSource, collector metrics.MetricsCollector, idleTimeout time.Duration) *Registry {
	return &Registry{
		source:      source,
		metrics:     collector,
		idleTimeout: idleTimeout,
		now:         time.Now,
		log:         logger.Component("Registry"),
		sessions:    make(map[string]*session),
	}
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Get returns the controller of sessionID and marks the session as used.
func (r *Registry) Get(sessionID string) (*OfferListController, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	s.lastAccess = r.now()
	return s.controller, true
}

// Create replaces the controller of sessionID with a fresh one for creds.
func (r *Registry) Create(sessionID string, creds models.Credentials) *OfferListController {
	ctrl := NewOfferListController(r.source, creds, r.metrics)
	r.mu.Lock()
	r.sessions[sessionID] = &session{controller: ctrl, lastAccess: r.now()}
	r.mu.Unlock()
	return ctrl
}

// Remove forgets sessionID.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Cleanup drops idle sessions and returns how many were removed.
func (r *Registry) Cleanup() int {
	now := r.now()
	removed := 0

	r.mu.Lock()
	for id, s := range r.sessions {
		if now.Sub(s.lastAccess) > r.idleTimeout {
			delete(r.sessions, id)
			removed++
		}
	}
	r.mu.Unlock()

	return removed
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (r *Registry) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := r.Cleanup(); n > 0 {
					r.log.Info("dropped idle sessions", slog.Int("count", n))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
