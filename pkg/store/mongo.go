package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/logsheet/pkg/workout"
)

// DefaultMongoDatabase is used when no database name is configured.
const DefaultMongoDatabase = "logsheet"

const mongoCollection = "workouts"

// MongoStore keeps workouts in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

type mongoDoc struct {
	ID        string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	CreatedAt time.Time `bson:"created_at"`
	Document  []byte    `bson:"document"`
}

// NewMongoStore connects to uri and ensures the owner index.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = retry(ctx, pingAttempts, pingDelay, func(ctx context.Context) error {
		return transient(client.Ping(ctx, nil))
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(mongoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create mongo index: %w", err)
	}
	return &MongoStore{client: client, coll: coll, now: time.Now}, nil
}

func (s *MongoStore) Get(ctx context.Context, owner string, id uuid.UUID) (*workout.Workout, error) {
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String(), "owner": owner}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find workout: %w", err)
	}
	return decode(doc.Document)
}

func (s *MongoStore) List(ctx context.Context, owner string) ([]workout.Summary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("find workouts: %w", err)
	}
	defer cur.Close(ctx)

	out := []workout.Summary{}
	for cur.Next(ctx) {
		var doc mongoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode workout: %w", err)
		}
		w, err := decode(doc.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, w.Summarize())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	sortSummaries(out)
	return out, nil
}

func (s *MongoStore) Put(ctx context.Context, w *workout.Workout) error {
	data, err := prepare(w, s.now())
	if err != nil {
		return err
	}
	doc := mongoDoc{ID: w.ID.String(), Owner: w.Owner, CreatedAt: w.CreatedAt, Document: data}
	// A foreign owner makes the filter miss, so the upsert collides on _id.
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID, "owner": doc.Owner}, doc, options.Replace().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return taken(w.ID)
	}
	if err != nil {
		return fmt.Errorf("upsert workout: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String(), "owner": owner})
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
