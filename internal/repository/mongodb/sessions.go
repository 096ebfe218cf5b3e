package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/harvest-tracker/internal/service/session"
)

// SessionStore implements session.Store on a MongoDB collection keyed by session id.
type SessionStore struct {
	coll *mongo.Collection
}

// NewSessionStore wraps coll.
func NewSessionStore(coll *mongo.Collection) *SessionStore {
	return &SessionStore{coll: coll}
}

// Get loads a session by id.
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	var out session.Session
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &out, nil
}

// Save upserts the session.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sess.ID}, sess, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
