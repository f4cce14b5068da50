// Package mongodb implements the storage repositories against a hosted
// MongoDB document database.
package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upperenglish/backend/core"
)

const (
	studentsCollection    = "students"
	teachersCollection    = "teachers"
	groupsCollection      = "groups"
	classroomsCollection  = "classrooms"
	countersCollection    = "counters"
	credentialsCollection = "credentials"
)

// Open connects to the configured database and verifies the connection.
func Open(conf *core.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "pinging mongodb")
	}
	return client.Database(conf.Database.Name), nil
}

// EnsureIndexes creates the indexes the repositories rely on: the name
// lookups backing the duplicate pre-checks, the group_id reverse index and
// the (seq, _id) listing index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for col, models := range map[string][]mongo.IndexModel{
		studentsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "group_id", Value: 1}}},
		},
		groupsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		classroomsCollection: {
			{Keys: bson.D{{Key: "seq", Value: -1}, {Key: "_id", Value: -1}}},
		},
	} {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", col)
		}
	}
	return nil
}

// nextSeq atomically increments and returns the monotonic sequence counter
// for the named collection.
func nextSeq(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(countersCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, errors.Wrap(err, "incrementing sequence counter")
	}
	return counter.Seq, nil
}

func opContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
