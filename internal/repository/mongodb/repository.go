package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/harvest-tracker/internal/config"
)

const (
	sessionsCollection  = "sessions"
	snapshotsCollection = "season_reports"
)

// Repository owns the MongoDB connection and hands out collection-backed stores.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewRepository connects and pings MongoDB.
func NewRepository(ctx context.Context, cfg config.MongoDBConfig) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client: client,
		db:     client.Database(cfg.DBName),
	}, nil
}

// Sessions returns the session store.
func (r *Repository) Sessions() *SessionStore {
	return NewSessionStore(r.db.Collection(sessionsCollection))
}

// Snapshots returns the season report snapshot store.
func (r *Repository) Snapshots() *SnapshotStore {
	return NewSnapshotStore(r.db.Collection(snapshotsCollection))
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
