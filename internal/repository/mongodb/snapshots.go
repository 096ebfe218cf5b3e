package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
)

// ErrSnapshotNotFound is returned when a season has no stored report.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore keeps a history of computed season reports.
type SnapshotStore struct {
	coll *mongo.Collection
}

// NewSnapshotStore wraps coll.
func NewSnapshotStore(coll *mongo.Collection) *SnapshotStore {
	return &SnapshotStore{coll: coll}
}

// SaveSeasonReport appends a report snapshot.
func (s *SnapshotStore) SaveSeasonReport(ctx context.Context, report models.SeasonReport) error {
	if _, err := s.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert season report: %w", err)
	}
	return nil
}

// LatestSeasonReport returns the most recent snapshot of a season owned by
// ownerID.
func (s *SnapshotStore) LatestSeasonReport(ctx context.Context, ownerID, seasonID int64) (*models.SeasonReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})

	var out models.SeasonReport
	err := s.coll.FindOne(ctx, bson.M{"owner_id": ownerID, "season_id": seasonID}, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load season report: %w", err)
	}
	return &out, nil
}
