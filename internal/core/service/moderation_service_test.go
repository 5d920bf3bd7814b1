package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

func (f *ledgerFixture) setState(t *testing.T, postID string, state domain.PostState) *ports.StateChangeResult {
	t.Helper()
	res, err := f.moderation.SetState(context.Background(), ports.SetStateInput{PostID: postID, State: string(state), Actor: adminID})
	require.NoError(t, err)
	return res
}

func TestModerationService_CompletedThenRejected(t *testing.T) {
	f := newLedgerFixture(t)

	res := f.setState(t, f.post.ID, domain.StateCompleted)
	assert.Equal(t, 3, res.XPDelta)
	assert.Equal(t, 13, f.identities.xp(f.author.ID))

	res = f.setState(t, f.post.ID, domain.StateRejected)
	assert.Equal(t, -5, res.XPDelta)
	assert.Equal(t, domain.StateCompleted, res.From)
	assert.Equal(t, 8, f.identities.xp(f.author.ID))
}

func TestModerationService_RedundantRequestIsNoop(t *testing.T) {
	f := newLedgerFixture(t)
	f.setState(t, f.post.ID, domain.StateInReview)

	res := f.setState(t, f.post.ID, domain.StateInReview)
	assert.False(t, res.Changed)
	assert.Zero(t, res.XPDelta)
	assert.Equal(t, 11, f.identities.xp(f.author.ID))
	assert.Len(t, f.audit.events, 1)
}

func TestModerationService_XPReflectsOnlyCurrentState(t *testing.T) {
	f := newLedgerFixture(t)
	path := []domain.PostState{
		domain.StateInReview, domain.StateCompleted, domain.StatePending,
		domain.StateRejected, domain.StateCompleted, domain.StateInReview,
	}
	for _, st := range path {
		f.setState(t, f.post.ID, st)
	}
	// InReview grants +1 over the starting 10.
	assert.Equal(t, 11, f.identities.xp(f.author.ID))

	stored, _ := f.posts.FindByID(context.Background(), f.post.ID)
	assert.Equal(t, domain.StateInReview, stored.State)
	assert.Len(t, f.audit.events, len(path))
}

func TestModerationService_RejectionFloorsAtZero(t *testing.T) {
	f := newLedgerFixture(t)
	poor := f.identities.add("06543210", "Poor", 1)
	p, _ := f.posts.Create(context.Background(), &domain.Post{AuthorID: poor.ID, State: domain.StatePending})

	f.setState(t, p.ID, domain.StateRejected)
	assert.Equal(t, 0, f.identities.xp(poor.ID))
}

func TestModerationService_UnknownAuthorStillPersistsState(t *testing.T) {
	f := newLedgerFixture(t)
	orphan, _ := f.posts.Create(context.Background(), &domain.Post{State: domain.StatePending})
	gone, _ := f.posts.Create(context.Background(), &domain.Post{AuthorID: "id-gone", State: domain.StatePending})

	for _, p := range []*domain.Post{orphan, gone} {
		res := f.setState(t, p.ID, domain.StateCompleted)
		assert.True(t, res.Changed)
		stored, _ := f.posts.FindByID(context.Background(), p.ID)
		assert.Equal(t, domain.StateCompleted, stored.State)
	}
}

func TestModerationService_Errors(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.moderation.SetState(ctx, ports.SetStateInput{PostID: f.post.ID, State: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidPostState)

	_, err = f.moderation.SetState(ctx, ports.SetStateInput{PostID: "missing", State: "completed"})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestModerationService_AuditFailureIsNonFatal(t *testing.T) {
	f := newLedgerFixture(t)
	f.audit.err = errors.New("mongo down")

	res := f.setState(t, f.post.ID, domain.StateCompleted)
	assert.True(t, res.Changed)
	assert.Equal(t, 13, f.identities.xp(f.author.ID))
}
