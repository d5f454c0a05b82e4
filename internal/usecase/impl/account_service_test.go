package impl

import (
	"context"
	"testing"
	"time"

	"bountyhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuditRepo records the paging arguments it was called with.
type fakeAuditRepo struct {
	entries    []*entity.AuditEntry
	lastLimit  int
	lastOffset int
}

func (r *fakeAuditRepo) Append(_ context.Context, entry *entity.AuditEntry) error {
	r.entries = append(r.entries, entry)

	return nil
}

func (r *fakeAuditRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.AuditEntry, error) {
	var out []*entity.AuditEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (r *fakeAuditRepo) List(_ context.Context, limit, offset int) ([]*entity.AuditEntry, error) {
	r.lastLimit = limit
	r.lastOffset = offset

	return r.entries, nil
}

func TestAccountService_Sessions(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	userID := uuid.New()
	require.NoError(t, sessionRepo.Create(context.Background(), &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	srv := &accountService{
		sessionRepo: sessionRepo,
		auditRepo:   &fakeAuditRepo{},
		logger:      newDiscardLogger(),
	}

	sessions, err := srv.Sessions(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	sessions, err = srv.Sessions(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestAccountService_AuditLog_ClampsPaging(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	srv := &accountService{
		sessionRepo: newFakeSessionRepo(),
		auditRepo:   auditRepo,
		logger:      newDiscardLogger(),
	}
	ctx := context.Background()

	cases := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 50, 0},
		{-5, -3, 50, 0},
		{500, 10, 50, 10},
		{25, 5, 25, 5},
	}

	for _, tc := range cases {
		_, err := srv.AuditLog(ctx, tc.limit, tc.offset)
		require.NoError(t, err)
		assert.Equal(t, tc.wantLimit, auditRepo.lastLimit)
		assert.Equal(t, tc.wantOffset, auditRepo.lastOffset)
	}
}
