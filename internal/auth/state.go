// File: internal/auth/state.go
package auth

import (
	"context"
	"sync"

	"mynunny_backend/internal/profile"
	"mynunny_backend/internal/shared"

	"go.uber.org/zap"
)

// Phase is the session bootstrap state.
type Phase string

const (
	PhaseInitializing    Phase = "initializing"
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseAuthenticated   Phase = "authenticated"
)

// Snapshot is the published identity/profile state. Subscribers receive
// copies and never mutate tracker internals.
type Snapshot struct {
	Phase    Phase             `json:"phase"`
	Loading  bool              `json:"loading"`
	Identity *shared.Identity  `json:"identity,omitempty"`
	Profile  *profile.Response `json:"profile,omitempty"`
}

// ProfileFetcher loads the profile for a verified identity during a state
// transition.
type ProfileFetcher func(ctx context.Context, firebaseUID string) (*profile.Profile, error)

// StateTracker is the single writer over the reactive identity/profile pair.
// Events are applied strictly in the order HandleAuthChange is entered; the
// provider subscription is trusted to deliver them in order and nothing here
// re-orders. Loading is true only until the first event resolves the
// Initializing phase.
type StateTracker struct {
	mu          sync.RWMutex
	snapshot    Snapshot
	fetch       ProfileFetcher
	logger      *zap.Logger
	subscribers []chan Snapshot
}

// NewStateTracker creates a tracker in the Initializing phase.
func NewStateTracker(fetch ProfileFetcher, logger *zap.Logger) *StateTracker {
	return &StateTracker{
		snapshot: Snapshot{Phase: PhaseInitializing, Loading: true},
		fetch:    fetch,
		logger:   logger,
	}
}

// Bootstrap resolves the Initializing phase at process start. The server
// keeps no session of its own, so the initial event is always "no session";
// Authenticated only ever arrives through a login.
func (t *StateTracker) Bootstrap(ctx context.Context) {
	t.HandleAuthChange(ctx, nil)
	t.logger.Info("Session state bootstrapped")
}

// HandleAuthChange applies one provider auth-state event. A verified session
// transitions to Authenticated and triggers a profile fetch; no session, or
// an unverified one, transitions to Unauthenticated and drops identity and
// profile together so the two can never disagree.
func (t *StateTracker) HandleAuthChange(ctx context.Context, identity *shared.Identity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if identity != nil && identity.EmailVerified {
		next := Snapshot{Phase: PhaseAuthenticated, Identity: identity}
		p, err := t.fetch(ctx, identity.UID)
		if err != nil {
			t.logger.Error("Error fetching profile during auth state change",
				zap.Error(err), zap.String("uid", identity.UID))
		} else {
			resp := profile.ToResponse(p)
			next.Profile = &resp
		}
		t.snapshot = next
	} else {
		t.snapshot = Snapshot{Phase: PhaseUnauthenticated}
	}
	t.publishLocked()
}

// RefreshProfile replaces the held profile after an authoritative re-fetch,
// without touching the identity. No-op unless the tracker currently holds an
// authenticated session for the same identity.
func (t *StateTracker) RefreshProfile(firebaseUID string, p *profile.Profile) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snapshot.Phase != PhaseAuthenticated || t.snapshot.Identity == nil ||
		t.snapshot.Identity.UID != firebaseUID {
		return
	}
	resp := profile.ToResponse(p)
	t.snapshot.Profile = &resp
	t.publishLocked()
}

// Clear drops identity and profile unconditionally. Used as the local
// fallback on logout in case the provider's own change notification never
// fires.
func (t *StateTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshot = Snapshot{Phase: PhaseUnauthenticated}
	t.publishLocked()
}

// Snapshot returns a copy of the current state.
func (t *StateTracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot
}

// Subscribe registers a listener for state transitions. The channel is
// buffered; a subscriber that falls behind misses intermediate snapshots but
// always observes the latest one eventually.
func (t *StateTracker) Subscribe() <-chan Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan Snapshot, 8)
	t.subscribers = append(t.subscribers, ch)
	return ch
}

func (t *StateTracker) publishLocked() {
	for _, ch := range t.subscribers {
		select {
		case ch <- t.snapshot:
		default:
			// drop stale snapshot, replace with the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- t.snapshot:
			default:
			}
		}
	}
}
