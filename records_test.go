package chesshub

import (
	"encoding/json"
	"testing"
)

func TestUserRatingBounds(t *testing.T) {
	cases := []struct {
		rating int
		ok     bool
	}{
		{99, false},
		{100, true},
		{1200, true},
		{4000, true},
		{4001, false},
	}

	for _, c := range cases {
		u := NewUser()
		u.Username = "magnus"
		u.Rating = c.rating

		err := u.Validate()
		if c.ok && err != nil {
			t.Errorf("rating %d: unexpected error %v", c.rating, err)
		}
		if !c.ok {
			if err == nil {
				t.Errorf("rating %d: expected validation error", c.rating)
				continue
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Errorf("rating %d: expected *ValidationError, got %T", c.rating, err)
				continue
			}
			if verr.Field != "rating" {
				t.Errorf("rating %d: expected field rating, got %s", c.rating, verr.Field)
			}
		}
	}
}

func TestUserValidation(t *testing.T) {
	cases := []struct {
		name  string
		user  User
		field string
	}{
		{"username too short", User{Username: "ab", Rating: 1200}, "username"},
		{"username too long", User{Username: "abcdefghijklmnopqrstuvwxyzabcdefg", Rating: 1200}, "username"},
		{"display name too long", User{Username: "abc", DisplayName: string(make([]byte, 65)), Rating: 1200}, "display_name"},
		{"valid minimal", User{Username: "abc", Rating: 1200}, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.user.Validate()
			if c.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != c.field {
				t.Errorf("expected field %s, got %s", c.field, verr.Field)
			}
		})
	}
}

func TestUserDefaults(t *testing.T) {
	u := NewUser()
	if err := json.Unmarshal([]byte(`{"username":"anna"}`), u); err != nil {
		t.Fatal(err)
	}
	if u.Rating != DefaultRating {
		t.Errorf("expected default rating %d, got %d", DefaultRating, u.Rating)
	}

	// An explicit value survives decoding over the defaults.
	u = NewUser()
	if err := json.Unmarshal([]byte(`{"username":"anna","rating":2000}`), u); err != nil {
		t.Fatal(err)
	}
	if u.Rating != 2000 {
		t.Errorf("expected rating 2000, got %d", u.Rating)
	}
}

func TestGameDefaults(t *testing.T) {
	g := NewGame()
	if err := json.Unmarshal([]byte(`{"white_id":"w1","black_id":"b1"}`), g); err != nil {
		t.Fatal(err)
	}

	if g.Status != StatusOngoing {
		t.Errorf("expected status %q, got %q", StatusOngoing, g.Status)
	}
	if g.TimeControl != "blitz" {
		t.Errorf("expected time control blitz, got %q", g.TimeControl)
	}
	if g.FEN != DefaultFEN {
		t.Errorf("expected default FEN, got %q", g.FEN)
	}
	if g.Turn != "w" {
		t.Errorf("expected turn w, got %q", g.Turn)
	}
	if g.WhiteTimeMS != DefaultClockMS || g.BlackTimeMS != DefaultClockMS {
		t.Errorf("expected default clocks, got %d/%d", g.WhiteTimeMS, g.BlackTimeMS)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("defaulted game should validate, got %v", err)
	}
}

func TestGameValidation(t *testing.T) {
	valid := func() *Game {
		g := NewGame()
		g.WhiteID = "w1"
		g.BlackID = "b1"
		return g
	}

	cases := []struct {
		name   string
		mutate func(*Game)
		field  string
	}{
		{"missing white", func(g *Game) { g.WhiteID = "" }, "white_id"},
		{"missing black", func(g *Game) { g.BlackID = "" }, "black_id"},
		{"bad status", func(g *Game) { g.Status = "paused" }, "status"},
		{"bad time control", func(g *Game) { g.TimeControl = "correspondence" }, "time_control"},
		{"increment too large", func(g *Game) { g.Increment = 61 }, "increment"},
		{"negative increment", func(g *Game) { g.Increment = -1 }, "increment"},
		{"bad turn", func(g *Game) { g.Turn = "x" }, "turn"},
		{"negative white clock", func(g *Game) { g.WhiteTimeMS = -1 }, "white_time_ms"},
		{"negative black clock", func(g *Game) { g.BlackTimeMS = -1 }, "black_time_ms"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := valid()
			c.mutate(g)
			verr, ok := g.Validate().(*ValidationError)
			if !ok {
				t.Fatal("expected *ValidationError")
			}
			if verr.Field != c.field {
				t.Errorf("expected field %s, got %s", c.field, verr.Field)
			}
		})
	}

	// White and black may be the same user; nothing rules it out.
	g := valid()
	g.BlackID = g.WhiteID
	if err := g.Validate(); err != nil {
		t.Errorf("same white and black id should validate, got %v", err)
	}
}

func TestPuzzleValidation(t *testing.T) {
	p := NewPuzzle()
	p.FEN = "8/8/8/8/8/8/8/K1k5 w - - 0 1"

	if err := p.Validate(); err == nil {
		t.Error("expected error for absent moves")
	}

	// An empty best line is accepted; only absence is rejected.
	p.Moves = []string{}
	if err := p.Validate(); err != nil {
		t.Errorf("empty moves should validate, got %v", err)
	}

	p.FEN = ""
	p.Moves = []string{"e2e4"}
	verr, ok := p.Validate().(*ValidationError)
	if !ok || verr.Field != "fen" {
		t.Errorf("expected fen validation error, got %v", p.Validate())
	}
}

func TestLessonValidation(t *testing.T) {
	l := NewLesson()
	l.Title = "Openings 101"
	l.Content = "Control the center."

	if err := l.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Topic = "gambits"
	verr, ok := l.Validate().(*ValidationError)
	if !ok || verr.Field != "topic" {
		t.Errorf("expected topic validation error, got %v", l.Validate())
	}

	l.Topic = "openings"
	l.Difficulty = "expert"
	verr, ok = l.Validate().(*ValidationError)
	if !ok || verr.Field != "difficulty" {
		t.Errorf("expected difficulty validation error, got %v", l.Validate())
	}
}

func TestChatMessageValidation(t *testing.T) {
	m := NewChatMessage()
	if err := m.Validate(); err == nil {
		t.Error("expected error for empty message")
	}

	m.GameID = "g1"
	m.UserID = "u1"
	m.Text = "gg"
	if err := m.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDocumentHasNoIdentifier(t *testing.T) {
	records := []Record{
		&User{Username: "magnus", Rating: 2850},
		NewGame(),
		NewPuzzle(),
		NewLesson(),
		&ChatMessage{GameID: "g", UserID: "u", Text: "hi"},
	}

	for _, rec := range records {
		doc := rec.Document()
		if _, ok := doc["_id"]; ok {
			t.Errorf("%s document must not carry an internal identifier", rec.Kind())
		}
		if _, ok := doc["id"]; ok {
			t.Errorf("%s document must not carry an identifier", rec.Kind())
		}
	}
}

func TestUserDocumentFields(t *testing.T) {
	u := &User{Username: "magnus", DisplayName: "Magnus C.", Email: "m@example.com", Rating: 2850, Country: "NO"}
	doc := u.Document()

	want := map[string]any{
		"username":     "magnus",
		"display_name": "Magnus C.",
		"email":        "m@example.com",
		"rating":       2850,
		"country":      "NO",
	}
	for k, v := range want {
		if doc[k] != v {
			t.Errorf("field %s: expected %v, got %v", k, v, doc[k])
		}
	}
	if len(doc) != len(want) {
		t.Errorf("expected %d fields, got %d", len(want), len(doc))
	}
}
