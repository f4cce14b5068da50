package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/classroom"
)

type (
	teacherRefDoc struct {
		ID   string `bson:"id"`
		Name string `bson:"name"`
	}

	studentRefDoc struct {
		ID      string `bson:"id"`
		Name    string `bson:"name"`
		Present bool   `bson:"present"`
	}

	groupRefDoc struct {
		ID   string `bson:"id"`
		Name string `bson:"name"`
	}

	classroomDoc struct {
		ID            primitive.ObjectID `bson:"_id,omitempty"`
		Seq           int64              `bson:"seq"`
		Teacher       teacherRefDoc      `bson:"teacher"`
		Students      []studentRefDoc    `bson:"students"`
		Unit          int                `bson:"unit"`
		Page          int                `bson:"page"`
		LastWord      string             `bson:"lastWord"`
		LastDictation string             `bson:"lastDictation,omitempty"`
		LastReading   string             `bson:"lastReading,omitempty"`
		DateTime      time.Time          `bson:"dateTime"`
		DateShow      string             `bson:"dateShow"`
		Group         *groupRefDoc       `bson:"group,omitempty"`
	}
)

func newClassroomDoc(cls classroom.Classroom) classroomDoc {
	doc := classroomDoc{
		Seq:           cls.Seq,
		Teacher:       teacherRefDoc(cls.Teacher),
		Students:      make([]studentRefDoc, 0, len(cls.Students)),
		Unit:          cls.Unit,
		Page:          cls.Page,
		LastWord:      cls.LastWord,
		LastDictation: cls.LastDictation,
		LastReading:   cls.LastReading,
		DateTime:      cls.DateTime,
		DateShow:      cls.DateShow,
	}
	for _, std := range cls.Students {
		doc.Students = append(doc.Students, studentRefDoc(std))
	}
	if cls.Group != nil {
		grp := groupRefDoc(*cls.Group)
		doc.Group = &grp
	}
	return doc
}

func (d classroomDoc) toClassroom() classroom.Classroom {
	cls := classroom.Classroom{
		ID:            d.ID.Hex(),
		Seq:           d.Seq,
		Teacher:       classroom.TeacherRef(d.Teacher),
		Students:      make([]classroom.StudentRef, 0, len(d.Students)),
		Unit:          d.Unit,
		Page:          d.Page,
		LastWord:      d.LastWord,
		LastDictation: d.LastDictation,
		LastReading:   d.LastReading,
		DateTime:      d.DateTime,
		DateShow:      d.DateShow,
	}
	for _, std := range d.Students {
		cls.Students = append(cls.Students, classroom.StudentRef(std))
	}
	if d.Group != nil {
		grp := classroom.GroupRef(*d.Group)
		cls.Group = &grp
	}
	return cls
}

type classroomRepository struct {
	db  *mongo.Database
	col *mongo.Collection
	cfg *core.Config
}

var _ classroom.Repository = (*classroomRepository)(nil)

func NewClassroomRepository(db *mongo.Database, conf *core.Config) *classroomRepository {
	return &classroomRepository{db: db, col: db.Collection(classroomsCollection), cfg: conf}
}

func (r *classroomRepository) CreateClassroom(ctx context.Context, cls classroom.Classroom) (classroom.Classroom, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	seq, err := nextSeq(ctx, r.db, classroomsCollection)
	if err != nil {
		return classroom.Classroom{}, err
	}
	cls.Seq = seq

	res, err := r.col.InsertOne(ctx, newClassroomDoc(cls))
	if err != nil {
		return classroom.Classroom{}, errors.Wrap(err, "inserting classroom")
	}
	cls.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return cls, nil
}

// QueryAllClassrooms returns every record in listing order, descending by
// (seq, _id); this is the one index both listings iterate.
func (r *classroomRepository) QueryAllClassrooms(ctx context.Context) ([]classroom.Classroom, error) {
	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	sort := options.Find().SetSort(bson.D{{Key: "seq", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, sort)
	if err != nil {
		return nil, errors.Wrap(err, "querying classrooms")
	}
	defer cursor.Close(ctx)

	classrooms := make([]classroom.Classroom, 0)
	for cursor.Next(ctx) {
		var doc classroomDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decoding classroom")
		}
		classrooms = append(classrooms, doc.toClassroom())
	}
	return classrooms, errors.Wrap(cursor.Err(), "iterating classrooms")
}

func (r *classroomRepository) DeleteClassroom(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return classroom.ErrNotFound
	}

	ctx, cancel := opContext(ctx, r.cfg.Database.Timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "deleting classroom")
	}
	if res.DeletedCount == 0 {
		return classroom.ErrNotFound
	}
	return nil
}
