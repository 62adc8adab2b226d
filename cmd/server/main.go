package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/unrolled/render"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/chesshub/chesshub"
	"github.com/chesshub/chesshub/cmd/server/docs"
	"github.com/chesshub/chesshub/docstore"
)

var (
	// Renderer is a renderer for all occasions. These are our preferred
	// default options. See:
	//  - https://github.com/unrolled/render/blob/v1/README.md
	Renderer = render.New(render.Options{
		Charset:                   "UTF-8",
		DisableHTTPErrorRendering: false,
		IndentJSON:                false,
	})

	log       = chesshub.MustLogger()
	ugcPolicy = bluemonday.StrictPolicy()
)

// @title ChessHub API
// @version 1.0
// @description A chess platform backend: users, games, puzzles, lessons, chat and matchmaking.
// @license.name MIT
// @BasePath /

func main() {
	// A missing .env is fine; real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	port := "8080"
	if fromEnv := os.Getenv("PORT"); fromEnv != "" {
		port = fromEnv
	}
	log.Infow("Starting up", "port", port)

	isDev := os.Getenv("CHESSHUB_ENV") != "production"

	dbName := os.Getenv("DATABASE_NAME")
	if dbName == "" {
		dbName = chesshub.Service
	}

	// A dead store degrades the service; every request against it reports
	// unavailable instead of the process refusing to start.
	store := docstore.Dial(context.Background(), os.Getenv("DATABASE_URL"), dbName, log)
	if !store.Available() {
		log.Warnw("starting without a live store")
	}

	records := docstore.NewRecords(store)
	srv := &server{
		store:      store,
		records:    records,
		matchmaker: chesshub.NewMatchmaker(records),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.New(cors.Options{
		AllowCredentials: true,
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)

	r.NotFound(notFoundHandler)

	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:     true,
			ContentTypeNosniff:   true,
			FrameDeny:            true,
			HostsProxyHeaders:    []string{"X-Forwarded-Host"},
			IsDevelopment:        isDev,
			SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
			SSLRedirect:          !isDev,
			STSIncludeSubdomains: true,
			STSPreload:           true,
			STSSeconds:           315360000,
		}).Handler)

		r.Get("/", rootHandler)
		r.Get("/healthz", healthCheckHandler)
		r.Get("/test", srv.statusHandler)
		r.Mount("/metrics", promhttp.Handler())
		r.Get("/swagger/doc.json", docs.SpecHandler)
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))

		r.Post("/users", srv.createUserHandler)
		r.Get("/users", srv.listUsersHandler)
		r.Post("/games", srv.createGameHandler)
		r.Get("/games", srv.listGamesHandler)
		r.Post("/puzzles", srv.createPuzzleHandler)
		r.Get("/puzzles", srv.listPuzzlesHandler)
		r.Post("/lessons", srv.createLessonHandler)
		r.Get("/lessons", srv.listLessonsHandler)
		r.Post("/chat", srv.postChatHandler)
		r.Get("/chat", srv.listChatHandler)
		r.Post("/matchmake", srv.matchmakeHandler)
	})

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
	log.Fatal(server.ListenAndServe())
}

// @Summary Get API information
// @Description Returns a plain HTML index of the available endpoints
// @Tags info
// @Produce html
// @Success 200 {string} string "HTML page with API information"
// @Router / [get]
func rootHandler(w http.ResponseWriter, r *http.Request) {
	html := `
<html>
  <head>
    <title>ChessHub API</title>
    <style>
      body { font-family: Arial, sans-serif; max-width: 800px; margin: 40px auto; padding: 20px; }
      .endpoint { margin: 12px 0; padding: 10px; border-left: 4px solid #007acc; background: #f8f9fa; }
      .method { font-weight: bold; color: #007acc; text-transform: uppercase; }
      .path { font-family: monospace; color: #333; }
    </style>
  </head>
  <body>
    <h1>ChessHub API</h1>
    <p>A chess platform backend.</p>
    <p><a href="/swagger/">View Swagger Documentation</a></p>
    <h2>Available Endpoints</h2>`

	spec, err := docs.GetSwaggerSpec()
	if err != nil {
		log.Errorw("failed to parse swagger.json", zap.Error(err))
	} else {
		for path, methods := range spec.Paths {
			for method, info := range methods {
				html += fmt.Sprintf(`
    <div class="endpoint">
      <span class="method">%s</span>
      <span class="path">%s</span>
      <div>%s</div>
    </div>`, method, path, info.Summary)
			}
		}
	}

	html += `
  </body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		log.Errorw("failed to write response", zap.Error(err))
	}
}

// @Summary Health check
// @Description Returns service health status
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Healthy:  "true",
		Revision: os.Getenv("GIT_REVISION"),
		Tag:      os.Getenv("GIT_TAG"),
		Branch:   os.Getenv("GIT_BRANCH"),
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error: "404: This page could not be found",
	})
}
