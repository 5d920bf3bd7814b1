package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type IdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{coll: db.Collection(collectionIdentities)}
}

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

type mongoAuthenticator struct {
	CredentialID   []byte `bson:"credential_id"`
	PublicKey      []byte `bson:"public_key"`
	SignCount      int64  `bson:"sign_count"`
	BackupEligible bool   `bson:"backup_eligible"`
	BackupState    bool   `bson:"backup_state"`
}

type mongoIdentity struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	NationalID    string              `bson:"national_id"`
	DisplayName   string              `bson:"display_name"`
	Role          string              `bson:"role"`
	XP            int                 `bson:"xp"`
	Verified      bool                `bson:"verified"`
	Authenticator *mongoAuthenticator `bson:"authenticator,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
	DeletedAt     *time.Time          `bson:"deleted_at,omitempty"`
}

func (m *mongoIdentity) toDomain() *domain.Identity {
	i := &domain.Identity{
		ID:          m.ID.Hex(),
		NationalID:  m.NationalID,
		DisplayName: m.DisplayName,
		Role:        m.Role,
		XP:          m.XP,
		Verified:    m.Verified,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
	if a := m.Authenticator; a != nil {
		i.Authenticator = &domain.Authenticator{
			CredentialID:   a.CredentialID,
			PublicKey:      a.PublicKey,
			SignCount:      uint32(a.SignCount),
			BackupEligible: a.BackupEligible,
			BackupState:    a.BackupState,
		}
	}
	return i
}

// active matches identities that have not been soft-deleted.
func active(filter bson.M) bson.M {
	filter["deleted_at"] = nil
	return filter
}

func (r *IdentityRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Identity, error) {
	return r.findOne(ctx, active(bson.M{"national_id": nationalID}))
}

func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}
	return r.findOne(ctx, active(bson.M{"_id": oid}))
}

func (r *IdentityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoIdentity
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return m.toDomain(), nil
}

// BindAuthenticator upserts the identity and replaces its authenticator.
// Name and role only apply when the identity is created. A soft-deleted
// identity is never revived; it reports domain.ErrIdentityNotFound.
func (r *IdentityRepository) BindAuthenticator(ctx context.Context, nationalID, displayName, role string, auth *domain.Authenticator) (*domain.Identity, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"authenticator": mongoAuthenticator{
				CredentialID:   auth.CredentialID,
				PublicKey:      auth.PublicKey,
				SignCount:      int64(auth.SignCount),
				BackupEligible: auth.BackupEligible,
				BackupState:    auth.BackupState,
			},
			"updated_at": now,
		},
		"$setOnInsert": newIdentityFields(displayName, role, now),
	}
	return r.upsert(ctx, nationalID, update)
}

func (r *IdentityRepository) EnsureIdentity(ctx context.Context, nationalID, displayName, role string) (*domain.Identity, error) {
	now := time.Now().UTC()
	fields := newIdentityFields(displayName, role, now)
	fields["updated_at"] = now
	return r.upsert(ctx, nationalID, bson.M{"$setOnInsert": fields})
}

func newIdentityFields(displayName, role string, now time.Time) bson.M {
	return bson.M{
		"display_name": displayName,
		"role":         role,
		"xp":           0,
		"verified":     false,
		"created_at":   now,
	}
}

func (r *IdentityRepository) upsert(ctx context.Context, nationalID string, update bson.M) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Only live identities match. With the unique national_id index, an
	// upsert over a soft-deleted one collides instead of inserting a twin.
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var m mongoIdentity
	if err := r.coll.FindOneAndUpdate(ctx, active(bson.M{"national_id": nationalID}), update, opts).Decode(&m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("upsert identity: %w", err)
	}
	return m.toDomain(), nil
}

func (r *IdentityRepository) UpdateSignCount(ctx context.Context, id string, count uint32) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrIdentityNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "authenticator": bson.M{"$exists": true}},
		bson.M{"$set": bson.M{"authenticator.sign_count": int64(count), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update sign count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

// AddXP applies the delta server-side so concurrent writers never lose an
// update, and floors the result at zero.
func (r *IdentityRepository) AddXP(ctx context.Context, id string, delta int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrIdentityNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "xp", Value: bson.D{{Key: "$max", Value: bson.A{
				0,
				bson.D{{Key: "$add", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$xp", 0}}}, delta}}},
			}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoIdentity
	if err := r.coll.FindOneAndUpdate(ctx, active(bson.M{"_id": oid}), pipeline, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrIdentityNotFound
		}
		return 0, fmt.Errorf("add xp: %w", err)
	}
	return m.XP, nil
}

func (r *IdentityRepository) SetVerified(ctx context.Context, nationalID string, verified bool, displayName string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"verified": verified, "updated_at": time.Now().UTC()}
	if displayName != "" {
		set["display_name"] = displayName
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m mongoIdentity
	err := r.coll.FindOneAndUpdate(ctx, active(bson.M{"national_id": nationalID}), bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("set verified: %w", err)
	}
	return m.toDomain(), nil
}
