package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/teacher"
)

type teacherDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type teacherRepository struct {
	col *mongo.Collection
	cfg *core.Config
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *mongo.Database, conf *core.Config) *teacherRepository {
	return &teacherRepository{col: db.Collection(teachersCollection), cfg: conf}
}

func (r *teacherRepository) CreateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, teacherDoc{Name: tch.Name})
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	tch.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return tch, nil
}

func (r *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	defer cursor.Close(ctx)

	teachers := make([]teacher.Teacher, 0)
	for cursor.Next(ctx) {
		var doc teacherDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decoding teacher")
		}
		teachers = append(teachers, teacher.Teacher{ID: doc.ID.Hex(), Name: doc.Name})
	}
	return teachers, errors.Wrap(cursor.Err(), "iterating teachers")
}
