package chesshub

import (
	"fmt"
)

// Record kind names. A record's collection is its lowercased kind, e.g.
// User -> "user", ChatMessage -> "chatmessage". Stored data is addressed by
// that derivation, so it must never change.
const (
	KindUser        = "User"
	KindGame        = "Game"
	KindPuzzle      = "Puzzle"
	KindLesson      = "Lesson"
	KindChatMessage = "ChatMessage"
)

// Rating bounds and default for users. Both bounds are inclusive.
const (
	MinRating     = 100
	MaxRating     = 4000
	DefaultRating = 1200
)

// DefaultFEN is the position stored on games that do not supply one.
const DefaultFEN = "rn1qkbnr/pp3ppp/2p1p3/3p4/3P4/2N1PN2/PPP2PPP/R1BQKB1R w KQkq - 0 1"

// DefaultClockMS is the per-side clock, in milliseconds, for new games.
const DefaultClockMS = 300000

// Game status values.
const (
	StatusOngoing  = "ongoing"
	StatusWhiteWon = "white_won"
	StatusBlackWon = "black_won"
	StatusDraw     = "draw"
)

var (
	gameStatuses       = []string{StatusOngoing, StatusWhiteWon, StatusBlackWon, StatusDraw}
	timeControls       = []string{"bullet", "blitz", "rapid", "classical"}
	turns              = []string{"w", "b"}
	lessonTopics       = []string{"openings", "strategy", "tactics", "endgames", "basics"}
	lessonDifficulties = []string{"beginner", "intermediate", "advanced"}
)

// Record is anything the persistence façade can store: a named kind with a
// storable document form and its own validation.
type Record interface {
	Kind() string
	Document() map[string]any
	Validate() error
}

// ValidationError names the field that violated its declared constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// User is a member of the platform. Username uniqueness is by convention
// only; the store does not enforce it.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Rating      int    `json:"rating"`
	Country     string `json:"country,omitempty"`
}

// NewUser returns a User with defaults applied. Decoding a JSON payload over
// the returned value leaves omitted fields at their defaults.
func NewUser() *User {
	return &User{Rating: DefaultRating}
}

// Kind implements Record.
func (u *User) Kind() string { return KindUser }

// Validate implements Record.
func (u *User) Validate() error {
	if n := len(u.Username); n < 3 || n > 32 {
		return invalid("username", "must be 3 to 32 characters")
	}
	if len(u.DisplayName) > 64 {
		return invalid("display_name", "must be at most 64 characters")
	}
	if u.Rating < MinRating || u.Rating > MaxRating {
		return invalid("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

// Document implements Record.
func (u *User) Document() map[string]any {
	return map[string]any{
		"username":     u.Username,
		"display_name": u.DisplayName,
		"email":        u.Email,
		"rating":       u.Rating,
		"country":      u.Country,
	}
}

// Game is a stored snapshot of a chess game. The board position and move
// history are opaque to this service; no move validation happens here, and
// nothing checks that the status matches the move history. Identical white
// and black ids are accepted.
type Game struct {
	WhiteID     string   `json:"white_id"`
	BlackID     string   `json:"black_id"`
	Status      string   `json:"status"`
	TimeControl string   `json:"time_control"`
	Increment   int      `json:"increment"`
	FEN         string   `json:"fen"`
	Moves       []string `json:"moves"`
	Turn        string   `json:"turn"`
	WhiteTimeMS int      `json:"white_time_ms"`
	BlackTimeMS int      `json:"black_time_ms"`
}

// NewGame returns a Game with defaults applied.
func NewGame() *Game {
	return &Game{
		Status:      StatusOngoing,
		TimeControl: "blitz",
		FEN:         DefaultFEN,
		Moves:       []string{},
		Turn:        "w",
		WhiteTimeMS: DefaultClockMS,
		BlackTimeMS: DefaultClockMS,
	}
}

// Kind implements Record.
func (g *Game) Kind() string { return KindGame }

// Validate implements Record.
func (g *Game) Validate() error {
	if g.WhiteID == "" {
		return invalid("white_id", "is required")
	}
	if g.BlackID == "" {
		return invalid("black_id", "is required")
	}
	if !oneOf(g.Status, gameStatuses) {
		return invalid("status", fmt.Sprintf("must be one of %v", gameStatuses))
	}
	if !oneOf(g.TimeControl, timeControls) {
		return invalid("time_control", fmt.Sprintf("must be one of %v", timeControls))
	}
	if g.Increment < 0 || g.Increment > 60 {
		return invalid("increment", "must be between 0 and 60 seconds")
	}
	if !oneOf(g.Turn, turns) {
		return invalid("turn", `must be "w" or "b"`)
	}
	if g.WhiteTimeMS < 0 {
		return invalid("white_time_ms", "must not be negative")
	}
	if g.BlackTimeMS < 0 {
		return invalid("black_time_ms", "must not be negative")
	}
	return nil
}

// Document implements Record.
func (g *Game) Document() map[string]any {
	moves := g.Moves
	if moves == nil {
		moves = []string{}
	}

	return map[string]any{
		"white_id":      g.WhiteID,
		"black_id":      g.BlackID,
		"status":        g.Status,
		"time_control":  g.TimeControl,
		"increment":     g.Increment,
		"fen":           g.FEN,
		"moves":         moves,
		"turn":          g.Turn,
		"white_time_ms": g.WhiteTimeMS,
		"black_time_ms": g.BlackTimeMS,
	}
}

// Puzzle is a tactics puzzle: a starting position plus the best line. The
// moves field must be present, but an empty best line is accepted.
type Puzzle struct {
	FEN    string   `json:"fen"`
	Moves  []string `json:"moves"`
	Themes []string `json:"themes"`
	Rating int      `json:"rating"`
}

// NewPuzzle returns a Puzzle with defaults applied.
func NewPuzzle() *Puzzle {
	return &Puzzle{Themes: []string{}, Rating: 1000}
}

// Kind implements Record.
func (p *Puzzle) Kind() string { return KindPuzzle }

// Validate implements Record.
func (p *Puzzle) Validate() error {
	if p.FEN == "" {
		return invalid("fen", "is required")
	}
	if p.Moves == nil {
		return invalid("moves", "is required")
	}
	return nil
}

// Document implements Record.
func (p *Puzzle) Document() map[string]any {
	themes := p.Themes
	if themes == nil {
		themes = []string{}
	}

	return map[string]any{
		"fen":    p.FEN,
		"moves":  p.Moves,
		"themes": themes,
		"rating": p.Rating,
	}
}

// Lesson is a short learning item.
type Lesson struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

// NewLesson returns a Lesson with defaults applied.
func NewLesson() *Lesson {
	return &Lesson{Topic: "basics", Difficulty: "beginner"}
}

// Kind implements Record.
func (l *Lesson) Kind() string { return KindLesson }

// Validate implements Record.
func (l *Lesson) Validate() error {
	if l.Title == "" {
		return invalid("title", "is required")
	}
	if l.Content == "" {
		return invalid("content", "is required")
	}
	if !oneOf(l.Topic, lessonTopics) {
		return invalid("topic", fmt.Sprintf("must be one of %v", lessonTopics))
	}
	if !oneOf(l.Difficulty, lessonDifficulties) {
		return invalid("difficulty", fmt.Sprintf("must be one of %v", lessonDifficulties))
	}
	return nil
}

// Document implements Record.
func (l *Lesson) Document() map[string]any {
	return map[string]any{
		"title":      l.Title,
		"content":    l.Content,
		"topic":      l.Topic,
		"difficulty": l.Difficulty,
	}
}

// ChatMessage is an in-game chat line.
type ChatMessage struct {
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// NewChatMessage returns an empty ChatMessage; it has no defaults.
func NewChatMessage() *ChatMessage {
	return &ChatMessage{}
}

// Kind implements Record.
func (c *ChatMessage) Kind() string { return KindChatMessage }

// Validate implements Record.
func (c *ChatMessage) Validate() error {
	if c.GameID == "" {
		return invalid("game_id", "is required")
	}
	if c.UserID == "" {
		return invalid("user_id", "is required")
	}
	if c.Text == "" {
		return invalid("text", "is required")
	}
	return nil
}

// Document implements Record.
func (c *ChatMessage) Document() map[string]any {
	return map[string]any{
		"game_id": c.GameID,
		"user_id": c.UserID,
		"text":    c.Text,
	}
}
