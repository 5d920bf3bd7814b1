package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type ledgerFixture struct {
	identities *stubIdentityRepo
	posts      *stubPostRepo
	comments   *stubCommentRepo
	votes      *stubVoteRepo
	audit      *stubAuditRepo
	votesSvc   ports.VoteService
	moderation ports.ModerationService
	author     *domain.Identity
	post       *domain.Post
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		identities: newStubIdentityRepo(),
		posts:      newStubPostRepo(),
		comments:   newStubCommentRepo(),
		votes:      newStubVoteRepo(),
		audit:      &stubAuditRepo{},
	}
	log := zerolog.Nop()
	ledger := NewReputationService(f.identities, log)
	serializer := &mutexSerializer{}
	f.votesSvc = NewVoteService(f.identities, f.votes, f.posts, f.comments, ledger, serializer, log)
	f.moderation = NewModerationService(f.posts, ledger, f.audit, serializer, log)

	f.author = f.identities.add("22222222", "Author", 10)
	post, err := f.posts.Create(context.Background(), &domain.Post{AuthorID: f.author.ID, State: domain.StatePending})
	require.NoError(t, err)
	f.post = post
	return f
}

func (f *ledgerFixture) toggle(t *testing.T, voter, target string, kind domain.TargetKind) *ports.VoteResult {
	t.Helper()
	res, err := f.votesSvc.Toggle(context.Background(), ports.ToggleVoteInput{
		VoterNationalID: voter,
		TargetID:        target,
		TargetKind:      string(kind),
	})
	require.NoError(t, err)
	return res
}

func TestVoteService_CastThenRetract(t *testing.T) {
	f := newLedgerFixture(t)
	f.identities.add(citizenID, "Voter", 0)

	res := f.toggle(t, citizenID, f.post.ID, domain.TargetPost)
	assert.Equal(t, domain.VoteCast, res.Outcome)
	assert.Equal(t, int64(1), res.VoteCount)
	assert.Equal(t, 11, f.identities.xp(f.author.ID))

	res = f.toggle(t, citizenID, f.post.ID, domain.TargetPost)
	assert.Equal(t, domain.VoteRetraction, res.Outcome)
	assert.Equal(t, int64(0), res.VoteCount)
	assert.Equal(t, 10, f.identities.xp(f.author.ID))

	// Reactivation reuses the soft-deleted row.
	res = f.toggle(t, citizenID, f.post.ID, domain.TargetPost)
	assert.Equal(t, domain.VoteCast, res.Outcome)
	assert.Len(t, f.votes.rowsFor(f.post.ID), 1)

	stored, _ := f.posts.FindByID(context.Background(), f.post.ID)
	assert.Equal(t, int64(1), stored.VoteCount)
}

func TestVoteService_ToggleTwiceRestoresCount(t *testing.T) {
	f := newLedgerFixture(t)
	f.identities.add(citizenID, "Voter", 0)
	f.identities.add("34567894", "Other", 0)
	f.toggle(t, "34567894", f.post.ID, domain.TargetPost)

	before, _ := f.posts.FindByID(context.Background(), f.post.ID)
	f.toggle(t, citizenID, f.post.ID, domain.TargetPost)
	after := f.toggle(t, citizenID, f.post.ID, domain.TargetPost)

	assert.Equal(t, before.VoteCount, after.VoteCount)
}

func TestVoteService_CommentVotesDoNotMoveReputation(t *testing.T) {
	f := newLedgerFixture(t)
	f.identities.add(citizenID, "Voter", 0)
	c, err := f.comments.Create(context.Background(), &domain.Comment{PostID: f.post.ID, AuthorID: f.author.ID})
	require.NoError(t, err)

	res := f.toggle(t, citizenID, c.ID, domain.TargetComment)

	assert.Equal(t, int64(1), res.VoteCount)
	assert.Equal(t, 10, f.identities.xp(f.author.ID))
	stored, _ := f.comments.FindByID(context.Background(), c.ID)
	assert.Equal(t, int64(1), stored.VoteCount)
}

func TestVoteService_Errors(t *testing.T) {
	f := newLedgerFixture(t)
	f.identities.add(citizenID, "Voter", 0)
	ctx := context.Background()

	_, err := f.votesSvc.Toggle(ctx, ports.ToggleVoteInput{VoterNationalID: "41234563", TargetID: f.post.ID, TargetKind: "post"})
	assert.ErrorIs(t, err, domain.ErrVoterNotFound)

	_, err = f.votesSvc.Toggle(ctx, ports.ToggleVoteInput{VoterNationalID: citizenID, TargetID: f.post.ID, TargetKind: "user"})
	assert.ErrorIs(t, err, domain.ErrInvalidTargetKind)

	_, err = f.votesSvc.Toggle(ctx, ports.ToggleVoteInput{VoterNationalID: citizenID, TargetID: "missing", TargetKind: "post"})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
	assert.Empty(t, f.votes.rowsFor("missing"))
}

func TestVoteService_UnknownAuthorStillCountsVote(t *testing.T) {
	f := newLedgerFixture(t)
	f.identities.add(citizenID, "Voter", 0)
	orphan, _ := f.posts.Create(context.Background(), &domain.Post{AuthorID: "id-gone", State: domain.StatePending})

	res := f.toggle(t, citizenID, orphan.ID, domain.TargetPost)
	assert.Equal(t, int64(1), res.VoteCount)
}

func TestVoteService_RandomToggleSequencesMatchLedger(t *testing.T) {
	voters := []string{"11111111", "12345672", "34567894", "41234563", "06543210"}
	rng := rand.New(rand.NewPCG(1, 2))

	for round := range 20 {
		f := newLedgerFixture(t)
		for _, v := range voters {
			f.identities.add(v, "V", 0)
		}
		startXP := f.identities.xp(f.author.ID)
		active := make(map[string]bool)

		for range 50 {
			v := voters[rng.IntN(len(voters))]
			res := f.toggle(t, v, f.post.ID, domain.TargetPost)
			active[v] = !active[v]

			var want int64
			for _, row := range f.votes.rowsFor(f.post.ID) {
				if row.DeletedAt == nil {
					want++
				}
			}
			require.Equal(t, want, res.VoteCount, "round %d", round)
		}

		var n int
		for _, on := range active {
			if on {
				n++
			}
		}
		assert.LessOrEqual(t, len(f.votes.rowsFor(f.post.ID)), len(voters))
		assert.Equal(t, startXP+n, f.identities.xp(f.author.ID), "round %d", round)
	}
}

func TestVoteService_ConcurrentTogglesStayConsistent(t *testing.T) {
	f := newLedgerFixture(t)
	voters := []string{"11111111", "12345672", "34567894", "41234563"}
	for _, v := range voters {
		f.identities.add(v, "V", 0)
	}

	var wg sync.WaitGroup
	for _, v := range voters {
		for range 3 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.votesSvc.Toggle(context.Background(), ports.ToggleVoteInput{
					VoterNationalID: v, TargetID: f.post.ID, TargetKind: "post",
				})
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	// Three toggles per voter leave every vote active.
	stored, _ := f.posts.FindByID(context.Background(), f.post.ID)
	assert.Equal(t, int64(len(voters)), stored.VoteCount)
	assert.Equal(t, 10+len(voters), f.identities.xp(f.author.ID))
}
