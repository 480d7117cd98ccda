package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/pkg/apperror"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreWith(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	sess, err := s.Create(ctx, model.SampleResume())
	require.NoError(t, err)

	require.NoError(t, s.With(ctx, sess.ID, func(got *domain.Session) error {
		got.Doc.Summary = "edited"
		return nil
	}))
	require.NoError(t, s.With(ctx, sess.ID, func(got *domain.Session) error {
		assert.Equal(t, "edited", got.Doc.Summary)
		return nil
	}))

	boom := errors.New("boom")
	assert.Equal(t, boom, s.With(ctx, sess.ID, func(*domain.Session) error { return boom }))

	err = s.With(ctx, uuid.New(), func(*domain.Session) error { return nil })
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	require.NoError(t, s.Delete(ctx, sess.ID))
	assert.True(t, errors.Is(s.Delete(ctx, sess.ID), apperror.ErrNotFound))
}

func TestSessionStoreViewLeavesUpdatedAt(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	sess, _ := s.Create(ctx, nil)
	before := sess.UpdatedAt

	require.NoError(t, s.View(ctx, sess.ID, func(*domain.Session) error { return nil }))
	assert.Equal(t, before, sess.UpdatedAt)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, s.View(cctx, sess.ID, func(*domain.Session) error { return nil }), context.Canceled)
}

func TestSessionStoreSerializesWriters(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()
	sess, _ := s.Create(ctx, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(ctx, sess.ID, func(got *domain.Session) error {
				got.Doc.Skills = append(got.Doc.Skills, "x")
				return nil
			})
		}()
	}
	wg.Wait()
	_ = s.With(ctx, sess.ID, func(got *domain.Session) error {
		assert.Len(t, got.Doc.Skills, 50)
		return nil
	})
}

func TestExportsRepoNilPoolIsNoop(t *testing.T) {
	r := NewExportsRepo(nil)
	require.NoError(t, r.Save(context.Background(), &domain.ExportRecord{ID: uuid.New()}))
	list, err := r.ListBySession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryCredentialStore(t *testing.T) {
	s := NewMemoryCredentialStore()
	ctx := context.Background()
	v, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, v)
	require.NoError(t, s.Set(ctx, "k"))
	v, _ = s.Get(ctx)
	assert.Equal(t, "k", v)
}

func TestRedisCredentialStore(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	s := NewRedisCredentialStore(client, "test:credential")
	ctx := context.Background()

	v, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, v, "missing key reads as empty")

	require.NoError(t, s.Set(ctx, "secret"))
	v, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	stored, err := m.Get("test:credential")
	require.NoError(t, err)
	assert.Equal(t, "secret", stored)
}
