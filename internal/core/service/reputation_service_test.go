package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

func TestReputationService_ApplyDelta(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := NewReputationService(repo, zerolog.Nop())
	id := repo.add(citizenID, "Ana", 2)

	xp, err := svc.ApplyDelta(context.Background(), id.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, xp)

	xp, err = svc.ApplyDelta(context.Background(), id.ID, -1000)
	require.NoError(t, err)
	assert.Equal(t, 0, xp)
}

func TestReputationService_UnknownIdentity(t *testing.T) {
	svc := NewReputationService(newStubIdentityRepo(), zerolog.Nop())
	_, err := svc.ApplyDelta(context.Background(), "nobody", 1)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}
