package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/group"
)

type groupDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type groupRepository struct {
	col *mongo.Collection
	cfg *core.Config
}

var _ group.Repository = (*groupRepository)(nil)

func NewGroupRepository(db *mongo.Database, conf *core.Config) *groupRepository {
	return &groupRepository{col: db.Collection(groupsCollection), cfg: conf}
}

func (r *groupRepository) CheckGroupNameExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, errors.Wrap(err, "counting groups by name")
	}
	return n > 0, nil
}

func (r *groupRepository) CreateGroup(ctx context.Context, grp group.Group) (group.Group, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, groupDoc{Name: grp.Name})
	if err != nil {
		return group.Group{}, errors.Wrap(err, "inserting group")
	}
	grp.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return grp, nil
}

func (r *groupRepository) QueryAllGroups(ctx context.Context) ([]group.Group, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying groups")
	}
	defer cursor.Close(ctx)

	groups := make([]group.Group, 0)
	for cursor.Next(ctx) {
		var doc groupDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decoding group")
		}
		groups = append(groups, group.Group{ID: doc.ID.Hex(), Name: doc.Name})
	}
	return groups, errors.Wrap(cursor.Err(), "iterating groups")
}

func (r *groupRepository) UpdateGroupName(ctx context.Context, id, name string) (group.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return group.Group{}, group.ErrNotFound
	}

	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return group.Group{}, errors.Wrap(err, "updating group name")
	}
	if res.MatchedCount == 0 {
		return group.Group{}, group.ErrNotFound
	}
	return group.Group{ID: id, Name: name}, nil
}

func (r *groupRepository) DeleteGroup(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return group.ErrNotFound
	}

	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "deleting group")
	}
	if res.DeletedCount == 0 {
		return group.ErrNotFound
	}
	return nil
}
