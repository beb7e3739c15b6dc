package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mkarahan/storeaudit/internal/api"
	"github.com/mkarahan/storeaudit/internal/db"
	"github.com/mkarahan/storeaudit/internal/middleware"
	"github.com/mkarahan/storeaudit/internal/utils"
)

func main() {
	_ = godotenv.Load()

	addr := utils.SafeEnv("AUDIT_ADDR", ":8080")
	store := openStore()

	if os.Getenv("AUDIT_SEED") != "" {
		if err := seedIfEmpty(store); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"name": "StoreAudit API",
		})
	})

	// Static frontend bundle, when one is baked into the image.
	if staticDir := os.Getenv("AUDIT_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.SecureHeaders(middleware.NoStore(middleware.CORS(middleware.WithAuth(mux))))

	log.Printf("StoreAudit server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore prefers SQLite when a path is configured and falls back to
// the in-memory store, which is enough for local development and tests.
func openStore() api.Datastore {
	path := os.Getenv("AUDIT_SQLITE_PATH")
	if path == "" {
		log.Printf("AUDIT_SQLITE_PATH not set, using in-memory store")
		return api.NewMemoryStore()
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Fatalf("open sqlite %s: %v", path, err)
	}
	if err := db.RunMigrations(conn, os.Getenv("AUDIT_MIGRATIONS_DIR")); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	store, err := db.NewStore(conn)
	if err != nil {
		log.Fatalf("init sqlite store: %v", err)
	}
	log.Printf("using sqlite store at %s", path)
	return store
}
