package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"note-share-be/internal/entity"
	"note-share-be/internal/pkg/serverutils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoNoteRepository struct {
	coll *mongo.Collection
}

// ConnectMongo dials uri and returns the named database after a ping.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(dbName), nil
}

func NewMongoNoteRepository(ctx context.Context, db *mongo.Database) (INoteRepository, error) {
	coll := db.Collection("notes")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	return &mongoNoteRepository{coll: coll}, nil
}

func (r *mongoNoteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %v", serverutils.ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	notes := []*entity.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("%w: decode notes: %v", serverutils.ErrStoreUnavailable, err)
	}
	for _, n := range notes {
		n.CreatedAt = n.CreatedAt.UTC()
	}
	return notes, nil
}

func (r *mongoNoteRepository) Create(ctx context.Context, note *entity.Note) (*entity.Note, error) {
	stored := *note
	// BSON dates carry millisecond precision.
	stored.CreatedAt = stored.CreatedAt.Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, &stored); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: note %s", serverutils.ErrConflict, note.Id)
		}
		return nil, fmt.Errorf("%w: insert note: %v", serverutils.ErrStoreUnavailable, err)
	}
	return &stored, nil
}

func (r *mongoNoteRepository) GetById(ctx context.Context, id string) (*entity.Note, error) {
	var note entity.Note
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, serverutils.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find note %s: %v", serverutils.ErrStoreUnavailable, id, err)
	}
	note.CreatedAt = note.CreatedAt.UTC()
	return &note, nil
}

func (r *mongoNoteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("%w: delete note %s: %v", serverutils.ErrStoreUnavailable, id, err)
	}
	return nil
}

func (r *mongoNoteRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.coll.Database().Client().Disconnect(ctx)
}
