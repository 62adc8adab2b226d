package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/chesshub/chesshub"
	"github.com/chesshub/chesshub/docstore"
)

type server struct {
	store      docstore.Store
	records    *docstore.Records
	matchmaker *chesshub.Matchmaker
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if err := Renderer.JSON(w, status, v); err != nil {
		log.Errorw("failed to render JSON", zap.Error(err))
	}
}

// writeError maps the error taxonomy onto status codes. Validation and
// identifier errors are the caller's fault; an unavailable store is a
// service-level failure and must stay distinguishable from both.
func writeError(w http.ResponseWriter, err error) {
	var verr *chesshub.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error()})
	case errors.Is(err, docstore.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	case errors.Is(err, chesshub.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case errors.Is(err, docstore.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func (s *server) createRecord(w http.ResponseWriter, r *http.Request, rec chesshub.Record) {
	id, err := s.records.Create(r.Context(), rec)
	if err != nil {
		log.Errorw("could not create record", "kind", rec.Kind(), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, IDResponse{ID: id})
}

func (s *server) listRecords(w http.ResponseWriter, r *http.Request, kind string, filter map[string]any, defaultLimit int64) {
	docs, err := s.records.List(r.Context(), kind, filter, queryLimit(r, defaultLimit))
	if err != nil {
		log.Errorw("could not list records", "kind", kind, zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func queryLimit(r *http.Request, fallback int64) int64 {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// @Summary Create a user
// @Description Validates and stores a new user record
// @Tags users
// @Accept json
// @Produce json
// @Param user body chesshub.User true "User to create"
// @Success 200 {object} IDResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /users [post]
func (s *server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	user := chesshub.NewUser()
	if err := json.NewDecoder(r.Body).Decode(user); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON payload"})
		return
	}
	s.createRecord(w, r, user)
}

// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {array} object
// @Failure 503 {object} ErrorResponse
// @Router /users [get]
func (s *server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	s.listRecords(w, r, chesshub.KindUser, nil, 20)
}

// @Summary Create a game
// @Description Stores a new game between two users with default position and clocks
// @Tags games
// @Accept json
// @Produce json
// @Param game body CreateGameRequest true "Game configuration"
// @Success 200 {object} IDResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /games [post]
func (s *server) createGameHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON payload"})
		return
	}

	game := chesshub.NewGame()
	game.WhiteID = req.WhiteID
	game.BlackID = req.BlackID
	if req.TimeControl != "" {
		game.TimeControl = req.TimeControl
	}
	game.Increment = req.Increment

	s.createRecord(w, r, game)
}

// @Summary List games
// @Tags games
// @Produce json
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {array} object
// @Failure 503 {object} ErrorResponse
// @Router /games [get]
func (s *server) listGamesHandler(w http.ResponseWriter, r *http.Request) {
	s.listRecords(w, r, chesshub.KindGame, nil, 20)
}

// @Summary Create a puzzle
// @Tags learning
// @Accept json
// @Produce json
// @Param puzzle body chesshub.Puzzle true "Puzzle to create"
// @Success 200 {object} IDResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /puzzles [post]
func (s *server) createPuzzleHandler(w http.ResponseWriter, r *http.Request) {
	puzzle := chesshub.NewPuzzle()
	if err := json.NewDecoder(r.Body).Decode(puzzle); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON payload"})
		return
	}
	s.createRecord(w, r, puzzle)
}

// @Summary List puzzles
// @Tags learning
// @Produce json
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {array} object
// @Failure 503 {object} ErrorResponse
// @Router /puzzles [get]
func (s *server) listPuzzlesHandler(w http.ResponseWriter, r *http.Request) {
	s.listRecords(w, r, chesshub.KindPuzzle, nil, 20)
}

// @Summary Create a lesson
// @Tags learning
// @Accept json
// @Produce json
// @Param lesson body chesshub.Lesson true "Lesson to create"
// @Success 200 {object} IDResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /lessons [post]
func (s *server) createLessonHandler(w http.ResponseWriter, r *http.Request) {
	lesson := chesshub.NewLesson()
	if err := json.NewDecoder(r.Body).Decode(lesson); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON payload"})
		return
	}
	s.createRecord(w, r, lesson)
}

// @Summary List lessons
// @Tags learning
// @Produce json
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {array} object
// @Failure 503 {object} ErrorResponse
// @Router /lessons [get]
func (s *server) listLessonsHandler(w http.ResponseWriter, r *http.Request) {
	s.listRecords(w, r, chesshub.KindLesson, nil, 20)
}

// @Summary Post a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param message body chesshub.ChatMessage true "Message to store"
// @Success 200 {object} IDResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /chat [post]
func (s *server) postChatHandler(w http.ResponseWriter, r *http.Request) {
	msg := chesshub.NewChatMessage()
	if err := json.NewDecoder(r.Body).Decode(msg); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON payload"})
		return
	}
	msg.Text = ugcPolicy.Sanitize(msg.Text)
	s.createRecord(w, r, msg)
}

// @Summary List chat messages
// @Description Lists stored chat messages, optionally for a single game
// @Tags chat
// @Produce json
// @Param game_id query string false "Only messages for this game"
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {array} object
// @Failure 503 {object} ErrorResponse
// @Router /chat [get]
func (s *server) listChatHandler(w http.ResponseWriter, r *http.Request) {
	var filter map[string]any
	if gameID := ugcPolicy.Sanitize(r.URL.Query().Get("game_id")); gameID != "" {
		filter = map[string]any{"game_id": gameID}
	}
	s.listRecords(w, r, chesshub.KindChatMessage, filter, 50)
}

// @Summary Find the closest-rated opponent
// @Description Scans all users and returns the other user with minimal rating difference
// @Tags matchmaking
// @Accept json
// @Produce json
// @Param request body MatchRequest true "Requesting user"
// @Success 200 {object} chesshub.MatchResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /matchmake [post]
func (s *server) matchmakeHandler(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
		return
	}

	result, err := s.matchmaker.FindMatch(r.Context(), req.UserID)
	if err != nil {
		log.Errorw("matchmaking failed", "user_id", req.UserID, zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// @Summary Backend and database status
// @Description Reports connectivity to the document store
// @Tags info
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /test [get]
func (s *server) statusHandler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Backend:          "running",
		Database:         "unavailable",
		DatabaseURL:      "not set",
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}
	if s.store.Available() {
		resp.Database = "available"
		resp.ConnectionStatus = "connected"
		if m, ok := s.store.(*docstore.Mongo); ok {
			resp.DatabaseName = m.Name()
		}
		if names, err := s.store.Collections(r.Context()); err == nil {
			if len(names) > 10 {
				names = names[:10]
			}
			resp.Collections = names
		} else {
			log.Errorw("could not list collections", zap.Error(err))
			resp.Database = "connected but erroring"
		}
	}
	if os.Getenv("DATABASE_URL") != "" {
		resp.DatabaseURL = "set"
	}

	writeJSON(w, http.StatusOK, resp)
}
