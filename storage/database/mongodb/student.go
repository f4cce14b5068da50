package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/student"
)

type studentDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	GroupID string             `bson:"group_id,omitempty"`
}

func (d studentDoc) toStudent() student.Student {
	return student.Student{
		ID:      d.ID.Hex(),
		Name:    d.Name,
		GroupID: d.GroupID,
	}
}

type studentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
	cfg *core.Config
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *mongo.Database, conf *core.Config) *studentRepository {
	return &studentRepository{db: db, col: db.Collection(studentsCollection), cfg: conf}
}

func (r *studentRepository) CheckStudentNameExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, errors.Wrap(err, "counting students by name")
	}
	return n > 0, nil
}

func (r *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	doc := studentDoc{Name: std.Name, GroupID: std.GroupID}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toStudent(), nil
}

func (r *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	return r.query(ctx, bson.M{})
}

func (r *studentRepository) QueryStudentsByGroupID(ctx context.Context, groupID string) ([]student.Student, error) {
	return r.query(ctx, bson.M{"group_id": groupID})
}

func (r *studentRepository) query(ctx context.Context, filter bson.M) ([]student.Student, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	defer cursor.Close(ctx)

	students := make([]student.Student, 0)
	for cursor.Next(ctx) {
		var doc studentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decoding student")
		}
		students = append(students, doc.toStudent())
	}
	return students, errors.Wrap(cursor.Err(), "iterating students")
}

func (r *studentRepository) SetStudentGroup(ctx context.Context, id, groupID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return student.ErrNotFound
	}

	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"group_id": groupID}}
	if groupID == "" {
		update = bson.M{"$unset": bson.M{"group_id": ""}}
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return errors.Wrap(err, "updating student group")
	}
	if res.MatchedCount == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (r *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return student.ErrNotFound
	}

	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if res.DeletedCount == 0 {
		return student.ErrNotFound
	}
	return nil
}
