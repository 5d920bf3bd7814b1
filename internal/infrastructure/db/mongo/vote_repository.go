package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// VoteRepository stores one document per (voter, target, kind). Retraction
// sets deleted_at; reactivation unsets it.
type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{col: db.Collection(collectionVotes)}
}

type mongoVote struct {
	VoterID    string     `bson:"voter_id"`
	TargetID   string     `bson:"target_id"`
	TargetKind string     `bson:"target_kind"`
	CreatedAt  time.Time  `bson:"created_at"`
	DeletedAt  *time.Time `bson:"deleted_at,omitempty"`
}

func keyFilter(key domain.VoteKey) bson.M {
	return bson.M{"voter_id": key.VoterID, "target_id": key.TargetID, "target_kind": string(key.TargetKind)}
}

func (r *VoteRepository) Find(ctx context.Context, key domain.VoteKey) (*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoVote
	if err := r.col.FindOne(ctx, keyFilter(key)).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, fmt.Errorf("find vote: %w", err)
	}
	return &domain.Vote{
		VoterID:    m.VoterID,
		TargetID:   m.TargetID,
		TargetKind: domain.TargetKind(m.TargetKind),
		CreatedAt:  m.CreatedAt,
		DeletedAt:  m.DeletedAt,
	}, nil
}

func (r *VoteRepository) SetActive(ctx context.Context, key domain.VoteKey, isActive bool, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{"created_at": at.UTC()}}
	if isActive {
		update["$unset"] = bson.M{"deleted_at": ""}
	} else {
		update["$set"] = bson.M{"deleted_at": at.UTC()}
	}

	if _, err := r.col.UpdateOne(ctx, keyFilter(key), update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("write vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) CountActive(ctx context.Context, targetID string, kind domain.TargetKind) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, active(bson.M{"target_id": targetID, "target_kind": string(kind)}))
	if err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}
	return n, nil
}
