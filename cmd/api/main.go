package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"

	"taskrank-backend/internal/auth"
	"taskrank-backend/internal/config"
	"taskrank-backend/internal/db"
	"taskrank-backend/internal/tasks"
)

func main() {
	cfg := config.Load()

	var database *sql.DB
	if cfg.HasDB() {
		var err error
		database, err = db.Connect(cfg.ConnString())
		if err != nil {
			log.Fatal("❌ Failed to connect DB:", err)
		}
		defer database.Close()

		if err := db.EnsureSchema(database); err != nil {
			log.Fatal("❌ Failed to ensure schema:", err)
		}
		log.Println("✅ Connected to PostgreSQL!")
	} else {
		log.Println("ℹ️ No DB configured — running stateless, analyze/suggest only")
	}

	h := tasks.NewHandler(database, cfg.Weights)
	guard := auth.New([]byte(cfg.AuthSecret))
	if guard.Enabled() {
		log.Println("🔒 Bearer auth enabled")
	}

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- SCORING API -----
	mux.HandleFunc("/tasks/analyze", guard.Wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Analyze(w, r)
		case http.MethodGet:
			requireDB(database, h.AnalyzeStored)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/tasks/suggest", guard.Wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Suggest(w, r)
		case http.MethodGet:
			requireDB(database, h.SuggestStored)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// ----- STORED TASKS API -----
	mux.HandleFunc("/tasks", guard.Wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			requireDB(database, h.ListTasks)(w, r)
		case http.MethodPost:
			requireDB(database, h.CreateTask)(w, r)
		case http.MethodDelete:
			requireDB(database, h.DeleteTask)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Println("🚀 API server is running on", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

// requireDB guards endpoints that only make sense with persistence.
func requireDB(database *sql.DB, next http.HandlerFunc) http.HandlerFunc {
	if database != nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no database configured", http.StatusServiceUnavailable)
	}
}
