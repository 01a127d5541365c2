package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/layout"
)

func sampleLayout(words ...string) layout.Layout {
	l := layout.Layout{Version: layout.FormatVersion, Width: 100, Height: 50, Margin: 2, Complete: true}
	for i, w := range words {
		l.Words = append(l.Words, layout.Word{Text: w, Size: 10, X: i * 20, Width: 15, Height: 12, Weight: 1, Orientation: cloud.Horizontal})
	}
	return l
}

// exercise runs the behavior every backend must share.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	l := sampleLayout("alpha", "beta")
	id, err := s.Save(ctx, &l)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !ValidID(id) || l.ID != id {
		t.Fatalf("Save id = %q, layout id = %q", id, l.ID)
	}
	if l.CreatedAt.IsZero() {
		t.Error("Save should set CreatedAt")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != id || len(got.Words) != 2 || got.Words[1].Text != "beta" {
		t.Errorf("Get = %+v", got)
	}
	if !got.CreatedAt.Equal(l.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, l.CreatedAt)
	}

	later := sampleLayout("gamma")
	later.CreatedAt = l.CreatedAt.Add(time.Second)
	if _, err := s.Save(ctx, &later); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) < 2 || list[0].ID != later.ID || list[0].Placed != 1 {
		t.Errorf("List = %+v, want newest first", list)
	}
	if one, _ := s.List(ctx, 1); len(one) != 1 {
		t.Errorf("List(1) returned %d", len(one))
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
	_ = s.Delete(ctx, later.ID)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	exercise(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	l := sampleLayout("alpha")
	id, _ := s.Save(ctx, &l)

	l.Words[0].Text = "mutated"
	got, _ := s.Get(ctx, id)
	if got.Words[0].Text != "alpha" {
		t.Error("Save should store a copy")
	}
	got.Words[0].Text = "mutated"
	again, _ := s.Get(ctx, id)
	if again.Words[0].Text != "alpha" {
		t.Error("Get should return a copy")
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{NewID(), true},
		{"", false},
		{"not-a-uuid", false},
		{"../etc/passwd", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

// TestMongoStore runs against a live server when WORDCLOUD_TEST_MONGO holds
// its URI.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("WORDCLOUD_TEST_MONGO")
	if uri == "" {
		t.Skip("WORDCLOUD_TEST_MONGO not set")
	}
	ctx := context.Background()
	db := "wordcloud_test_" + NewID()[:8]
	s, err := NewMongoStore(ctx, uri, db)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.client.Database(db).Drop(ctx)
		_ = s.Close(ctx)
	}()
	exercise(t, s)
}
