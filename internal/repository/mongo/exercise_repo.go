package mongo

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// exerciseDocument is the read shape of an exercise. Date stays raw so
// legacy representations reach the date normalizer untouched.
type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      primitive.ObjectID `bson:"userId"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        bson.RawValue      `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// newExerciseDocument is the write shape of an exercise.
type newExerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      primitive.ObjectID `bson:"userId"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        any                `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d exerciseDocument) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Description: d.Description,
		Duration:    d.Duration,
		Date:        rawDate(d.Date),
		CreatedAt:   d.CreatedAt,
	}
}

// rawDate unwraps the BSON value into the Go type the normalizer expects.
func rawDate(v bson.RawValue) any {
	if v.Type == 0 && len(v.Value) == 0 {
		return nil
	}
	switch v.Type {
	case bsontype.DateTime:
		return v.Time().UTC()
	case bsontype.String:
		return v.StringValue()
	case bsontype.Int32:
		return v.Int32()
	case bsontype.Int64:
		return v.Int64()
	case bsontype.Double:
		return v.Double()
	case bsontype.Null, bsontype.Undefined:
		return nil
	default:
		// Unsupported BSON type; the normalizer rejects its string form.
		return v.String()
	}
}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise entry for an existing user.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Description == "" || exercise.Duration < 1 {
		return "", fmt.Errorf("exercise description and positive duration are required: %w", repository.ErrInvalidInput)
	}
	userID, err := primitive.ObjectIDFromHex(exercise.UserID)
	if err != nil {
		return "", fmt.Errorf("user ID %q: %w", exercise.UserID, repository.ErrInvalidInput)
	}

	doc := newExerciseDocument{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
		CreatedAt:   time.Now().UTC(),
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("failed to convert inserted ID")
	}

	exercise.ID = insertedID.Hex()
	exercise.CreatedAt = doc.CreatedAt
	return exercise.ID, nil
}

// GetByUserID retrieves all entries of a user in insertion order.
// ObjectIDs start with their creation second followed by a counter, so
// sorting by _id follows insertion order.
func (r *mongoExerciseRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Exercise, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("user ID %q: %w", userID, repository.ErrInvalidInput)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": oid}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []exerciseDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, len(docs))
	for i, d := range docs {
		exercises[i] = d.toDomain()
	}
	return exercises, nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Serves GetByUserID including its sort
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
