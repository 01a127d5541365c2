// Package store persists finished layouts so the API can serve them by ID.
//
// Two backends implement [Store]:
//   - [MemoryStore]: in-process map for development, tests and the CLI server
//   - [MongoStore]: a MongoDB collection for multi-instance deployments
//
// IDs are random UUIDs assigned on Save.
//
//	s := store.NewMemoryStore()
//	id, err := s.Save(ctx, &l)
//	got, err := s.Get(ctx, id)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

// ErrNotFound is returned when no layout has the requested ID.
var ErrNotFound = errors.New("layout not found")

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store is the interface for layout storage backends.
type Store interface {
	// Save assigns l an ID and creation time when missing, stores it and
	// returns the ID.
	Save(ctx context.Context, l *layout.Layout) (string, error)

	// Get returns the layout with id, or ErrNotFound.
	Get(ctx context.Context, id string) (layout.Layout, error)

	// Delete removes a layout. Deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns summaries of the most recent layouts, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Summary describes a stored layout without its words.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Width     int       `json:"width" bson:"width"`
	Height    int       `json:"height" bson:"height"`
	Placed    int       `json:"placed" bson:"placed"`
	Skipped   int       `json:"skipped" bson:"skipped"`
	Complete  bool      `json:"complete" bson:"complete"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewID returns a random layout ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the form NewID produces.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// prepare fills the ID and creation time of a layout about to be saved.
func prepare(l *layout.Layout) {
	if l.ID == "" {
		l.ID = NewID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
}

func summarize(l layout.Layout) Summary {
	return Summary{
		ID:        l.ID,
		Width:     l.Width,
		Height:    l.Height,
		Placed:    len(l.Words),
		Skipped:   len(l.Skipped),
		Complete:  l.Complete,
		CreatedAt: l.CreatedAt,
	}
}
