package repository

import (
	"context"
	"sync"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/pkg/apperror"

	"github.com/google/uuid"
)

type sessionEntry struct {
	mu   sync.Mutex
	sess *domain.Session
}

// SessionStore keeps editing sessions in process memory. Each session has
// its own lock so a request, including any gateway call it makes, is the
// document's only writer for its whole duration.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[uuid.UUID]*sessionEntry{}}
}

func (s *SessionStore) Create(_ context.Context, doc *model.Resume) (*domain.Session, error) {
	if doc == nil {
		doc = model.NewResume()
	}
	now := time.Now().UTC()
	sess := &domain.Session{ID: uuid.New(), Doc: doc, CreatedAt: now, UpdatedAt: now}
	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{sess: sess}
	s.mu.Unlock()
	return sess, nil
}

// With runs fn with exclusive access to the session. UpdatedAt is bumped
// when fn succeeds.
func (s *SessionStore) With(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) error {
	return s.locked(ctx, id, true, fn)
}

// View is With for readers; the session is still locked but not touched.
func (s *SessionStore) View(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) error {
	return s.locked(ctx, id, false, fn)
}

func (s *SessionStore) locked(ctx context.Context, id uuid.UUID, touch bool, fn func(*domain.Session) error) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return apperror.NewNotFound("session", id.String())
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(e.sess); err != nil {
		return err
	}
	if touch {
		e.sess.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return apperror.NewNotFound("session", id.String())
	}
	delete(s.sessions, id)
	return nil
}
