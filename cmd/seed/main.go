// Command seed posts sample records against a running server so local
// development starts with data to look at.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/chesshub/chesshub"
)

var opts struct {
	Server string `short:"s" long:"server" description:"Base URL of a running server" default:"http://localhost:8080"`
	Users  int    `short:"u" long:"users" description:"Number of sample users to create" default:"4"`
}

var sampleUsers = []chesshub.User{
	{Username: "magnus", DisplayName: "Magnus C.", Rating: 2850, Country: "NO"},
	{Username: "judit", DisplayName: "Judit P.", Rating: 2735, Country: "HU"},
	{Username: "hikaru", DisplayName: "Hikaru N.", Rating: 2790, Country: "US"},
	{Username: "beth", DisplayName: "Beth H.", Rating: 2100, Country: "US"},
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	n := opts.Users
	if n > len(sampleUsers) {
		n = len(sampleUsers)
	}

	var userIDs []string
	for _, u := range sampleUsers[:n] {
		u := u
		id, err := post("/users", &u)
		if err != nil {
			log.Fatalf("create user %s: %v", u.Username, err)
		}
		log.Printf("user %s -> %s", u.Username, id)
		userIDs = append(userIDs, id)
	}

	if len(userIDs) >= 2 {
		game := map[string]any{
			"white_id":     userIDs[0],
			"black_id":     userIDs[1],
			"time_control": "rapid",
			"increment":    2,
		}
		gid, err := post("/games", game)
		if err != nil {
			log.Fatalf("create game: %v", err)
		}
		log.Printf("game -> %s", gid)

		msg := chesshub.ChatMessage{GameID: gid, UserID: userIDs[0], Text: "good luck!"}
		cid, err := post("/chat", &msg)
		if err != nil {
			log.Fatalf("create chat message: %v", err)
		}
		log.Printf("chat -> %s", cid)
	}

	puzzle := chesshub.Puzzle{
		FEN:    "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1",
		Moves:  []string{"d1d8"},
		Themes: []string{"backRankMate", "mateIn1"},
		Rating: 800,
	}
	pid, err := post("/puzzles", &puzzle)
	if err != nil {
		log.Fatalf("create puzzle: %v", err)
	}
	log.Printf("puzzle -> %s", pid)

	lesson := chesshub.Lesson{
		Title:      "The back rank",
		Content:    "Keep an escape square for your king or a rook on the back rank will end the game.",
		Topic:      "tactics",
		Difficulty: "beginner",
	}
	lid, err := post("/lessons", &lesson)
	if err != nil {
		log.Fatalf("create lesson: %v", err)
	}
	log.Printf("lesson -> %s", lid)

	if len(userIDs) > 0 {
		body, err := request("/matchmake", map[string]any{"user_id": userIDs[0]})
		if err != nil {
			log.Fatalf("matchmake: %v", err)
		}
		log.Printf("matchmake -> %s", body)
	}
}

// post creates a record and returns its external identifier.
func post(path string, payload any) (string, error) {
	body, err := request(path, payload)
	if err != nil {
		return "", err
	}

	var res struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

func request(path string, payload any) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(opts.Server+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s: %s", path, resp.Status, out.String())
	}
	return out.Bytes(), nil
}
