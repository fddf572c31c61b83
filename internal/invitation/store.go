package invitation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"wedding/internal/domain"
)

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	ID              string     `json:"sessionId"`
	GuestID         string     `json:"guestId"`
	Stage           Stage      `json:"stage"`
	Audio           AudioState `json:"audio"`
	AutoplayBlocked bool       `json:"autoplayBlocked"`
	Changed         bool       `json:"changed"`
}

type session struct {
	id       string
	guestID  string
	machine  *Machine
	lastSeen time.Time
}

func (s *session) snapshot(changed bool) Snapshot {
	return Snapshot{
		ID:              s.id,
		GuestID:         s.guestID,
		Stage:           s.machine.Stage(),
		Audio:           s.machine.Audio(),
		AutoplayBlocked: s.machine.AutoplayBlocked(),
		Changed:         changed,
	}
}

// Store keeps one Machine per visitor session and expires idle ones.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start opens a new session for guestID in the invite stage.
func (s *Store) Start(guestID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &session{
		id:       uuid.NewString(),
		guestID:  guestID,
		machine:  NewMachine(),
		lastSeen: s.now(),
	}
	s.sessions[sess.id] = sess
	return sess.snapshot(false)
}

func (s *Store) lookup(guestID, id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok || sess.guestID != guestID || s.now().Sub(sess.lastSeen) > s.ttl {
		return nil, domain.NotFoundError{Resource: "invitation session", ID: id}
	}
	sess.lastSeen = s.now()
	return sess, nil
}

func (s *Store) Get(guestID, id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(guestID, id)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.snapshot(false), nil
}

// Fire applies e to the session's machine.
func (s *Store) Fire(guestID, id string, e Event) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(guestID, id)
	if err != nil {
		return Snapshot{}, err
	}
	changed := sess.machine.Fire(e)
	return sess.snapshot(changed), nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration, onSweep func(int)) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 && onSweep != nil {
					onSweep(n)
				}
			}
		}
	}()
}
