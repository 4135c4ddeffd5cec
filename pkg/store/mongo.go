package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nakamurapomeo/collage-app/pkg/album"
)

const albumCollection = "albums"

// MongoStore persists albums in a MongoDB collection, one document per album
// with the album ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures a MongoDB store connection.
type MongoConfig struct {
	// URI is the MongoDB connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database is the database name (default "collage").
	Database string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "collage"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(albumCollection),
	}, nil
}

// Get retrieves an album by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (album.Album, error) {
	var a album.Album
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return album.Album{}, ErrNotFound
	}
	if err != nil {
		return album.Album{}, fmt.Errorf("find album %s: %w", id, err)
	}
	return a, nil
}

// List returns all stored albums, ordered by name.
func (s *MongoStore) List(ctx context.Context) ([]album.Album, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer cur.Close(ctx)

	var out []album.Album
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode albums: %w", err)
	}
	return out, nil
}

// Put stores an album, replacing any existing album with the same ID.
func (s *MongoStore) Put(ctx context.Context, a album.Album) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": a.ID},
		a,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("store album %s: %w", a.ID, err)
	}
	return nil
}

// Delete removes an album. Deleting a missing album is not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete album %s: %w", id, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
