package chesshub

import (
	"context"
	"errors"
	"math"
)

// ErrUserNotFound is returned when a matchmaking request names a user that
// does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserSource lists stored user documents in a stable fetch order. The
// persistence façade satisfies it.
type UserSource interface {
	List(ctx context.Context, kind string, filter map[string]any, limit int64) ([]map[string]any, error)
}

// Opponent summarizes a selected opponent.
type Opponent struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
}

// MatchResult is the outcome of a matchmaking request. Found is false when
// no other user exists; that is a negative result, not an error.
type MatchResult struct {
	Found    bool      `json:"found"`
	Opponent *Opponent `json:"opponent,omitempty"`
}

// Matchmaker selects the closest-rated opponent for a user.
type Matchmaker struct {
	users UserSource
}

// NewMatchmaker returns a Matchmaker reading users from the given source.
func NewMatchmaker(users UserSource) *Matchmaker {
	return &Matchmaker{users: users}
}

// FindMatch scans every known user and returns the one other user minimizing
// the absolute rating difference to the requester. Ties keep the candidate
// encountered first in fetch order. The scan is a read-only snapshot with no
// freshness guarantee, and it is O(n) in the total user count.
func (m *Matchmaker) FindMatch(ctx context.Context, userID string) (*MatchResult, error) {
	users, err := m.users.List(ctx, KindUser, nil, 0)
	if err != nil {
		return nil, err
	}

	var me map[string]any
	for _, u := range users {
		if stringField(u, "id") == userID {
			me = u
			break
		}
	}
	if me == nil {
		return nil, ErrUserNotFound
	}

	myRating := ratingField(me)

	var best map[string]any
	bestDiff := math.MaxInt
	for _, u := range users {
		if stringField(u, "id") == userID {
			continue
		}
		diff := ratingField(u) - myRating
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			best = u
		}
	}

	if best == nil {
		return &MatchResult{Found: false}, nil
	}

	return &MatchResult{
		Found: true,
		Opponent: &Opponent{
			ID:       stringField(best, "id"),
			Username: stringField(best, "username"),
			Rating:   ratingField(best),
		},
	}, nil
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

// ratingField reads a numeric rating out of a stored document. The store may
// hand back any integer width, and documents written before ratings existed
// have none at all; those count as DefaultRating.
func ratingField(doc map[string]any) int {
	switch v := doc["rating"].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return DefaultRating
	}
}
