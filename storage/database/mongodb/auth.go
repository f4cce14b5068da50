package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/auth"
)

// The shared password hash lives in a single well-known credentials document.
const passwordDocID = "password"

type authRepository struct {
	col *mongo.Collection
	cfg *core.Config
}

var _ auth.Repository = (*authRepository)(nil)

func NewAuthRepository(db *mongo.Database, conf *core.Config) *authRepository {
	return &authRepository{col: db.Collection(credentialsCollection), cfg: conf}
}

func (r *authRepository) GetPasswordHash(ctx context.Context) ([]byte, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	var doc struct {
		Hash []byte `bson:"hash"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": passwordDocID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Wrap(err, "loading credentials")
	}
	return doc.Hash, nil
}

func (r *authRepository) SetPasswordHash(ctx context.Context, hash []byte) error {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	_, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": passwordDocID},
		bson.M{"$set": bson.M{"hash": hash}},
		options.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "storing credentials")
}
