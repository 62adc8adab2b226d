package chesshub

import (
	"context"
	"errors"
	"testing"
)

// stubUsers serves a fixed, ordered set of user documents.
type stubUsers struct {
	docs []map[string]any
	err  error
}

func (s *stubUsers) List(ctx context.Context, kind string, filter map[string]any, limit int64) ([]map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	if kind != KindUser {
		return nil, errors.New("unexpected kind " + kind)
	}
	return s.docs, nil
}

func userDoc(id, username string, rating int) map[string]any {
	return map[string]any{"id": id, "username": username, "rating": rating}
}

func TestFindMatchClosestRating(t *testing.T) {
	src := &stubUsers{docs: []map[string]any{
		userDoc("a", "alice", 1200),
		userDoc("b", "bob", 1300),
		userDoc("c", "carol", 1500),
	}}

	res, err := NewMatchmaker(src).FindMatch(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found {
		t.Fatal("expected a match")
	}
	if res.Opponent.ID != "b" {
		t.Errorf("expected opponent b, got %s", res.Opponent.ID)
	}
	if res.Opponent.Username != "bob" || res.Opponent.Rating != 1300 {
		t.Errorf("unexpected opponent summary: %+v", res.Opponent)
	}
}

func TestFindMatchTieBreakKeepsFirst(t *testing.T) {
	// b and c are both 100 away from a; b comes first in fetch order.
	src := &stubUsers{docs: []map[string]any{
		userDoc("a", "alice", 1200),
		userDoc("b", "bob", 1300),
		userDoc("c", "carol", 1100),
	}}

	res, err := NewMatchmaker(src).FindMatch(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if res.Opponent.ID != "b" {
		t.Errorf("tie must keep the first-encountered candidate, got %s", res.Opponent.ID)
	}
}

func TestFindMatchNoOtherUsers(t *testing.T) {
	src := &stubUsers{docs: []map[string]any{
		userDoc("a", "alice", 1200),
	}}

	res, err := NewMatchmaker(src).FindMatch(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if res.Found {
		t.Error("expected found=false with a single user")
	}
	if res.Opponent != nil {
		t.Error("expected no opponent")
	}
}

func TestFindMatchUnknownUser(t *testing.T) {
	src := &stubUsers{docs: []map[string]any{
		userDoc("a", "alice", 1200),
	}}

	_, err := NewMatchmaker(src).FindMatch(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindMatchMissingRatingDefaults(t *testing.T) {
	// Documents without a rating count as DefaultRating (1200).
	src := &stubUsers{docs: []map[string]any{
		userDoc("a", "alice", 1200),
		{"id": "b", "username": "bob"},
		userDoc("c", "carol", 1500),
	}}

	res, err := NewMatchmaker(src).FindMatch(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if res.Opponent.ID != "b" {
		t.Errorf("expected opponent b at default rating, got %s", res.Opponent.ID)
	}
	if res.Opponent.Rating != DefaultRating {
		t.Errorf("expected default rating, got %d", res.Opponent.Rating)
	}
}

func TestFindMatchStoreRatingWidths(t *testing.T) {
	// The store may hand back int32 or int64 ratings.
	src := &stubUsers{docs: []map[string]any{
		{"id": "a", "username": "alice", "rating": int32(1200)},
		{"id": "b", "username": "bob", "rating": int64(1250)},
		{"id": "c", "username": "carol", "rating": float64(1500)},
	}}

	res, err := NewMatchmaker(src).FindMatch(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	if res.Opponent.ID != "b" || res.Opponent.Rating != 1250 {
		t.Errorf("unexpected opponent: %+v", res.Opponent)
	}
}

func TestFindMatchPropagatesSourceError(t *testing.T) {
	wantErr := errors.New("boom")
	src := &stubUsers{err: wantErr}

	_, err := NewMatchmaker(src).FindMatch(context.Background(), "a")
	if !errors.Is(err, wantErr) {
		t.Errorf("expected source error to propagate, got %v", err)
	}
}
