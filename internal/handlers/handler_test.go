// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"thememarket/internal/database"
	"thememarket/internal/middleware"
	"thememarket/internal/render"
	"thememarket/internal/session"
	"thememarket/internal/storage"
	"thememarket/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "thememarket")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "thememarket")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := database.Connect(dsn)
	if err != nil {
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(context.Background(), db.DB); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "thememarket:session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sqlx.DB
	Valkey    *redis.Client
	Renderer  *render.Renderer
	Sessions  *session.Store
	Records   *store.RecordStore
	UserStore *store.UserStore
	Admin     *Admin
	Auth      *Auth
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	records := store.NewRecordStore(db)
	userStore := store.NewUserStore(db)

	return &testEnv{
		DB:        db,
		Valkey:    vk,
		Renderer:  renderer,
		Sessions:  sessions,
		Records:   records,
		UserStore: userStore,
		Admin:     NewAdmin(renderer, sessions, records, nil),
		Auth:      NewAuth(renderer, sessions, userStore),
	}
}

// testBucket is an in-process S3 endpoint that accepts every request and
// records the keys of deleted objects.
type testBucket struct {
	Client *storage.Client
	URL    string

	mu      sync.Mutex
	deleted []string
}

func newTestBucket(t *testing.T) *testBucket {
	t.Helper()
	b := &testBucket{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			b.mu.Lock()
			b.deleted = append(b.deleted, strings.TrimPrefix(r.URL.Path, "/media/"))
			b.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("ETag", `"0"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client, err := storage.New(srv.URL, "us-east-1", "key", "secret", "media", "")
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	b.Client = client
	b.URL = srv.URL + "/media/"
	return b
}

// Deleted returns the deleted keys, sorted.
func (b *testBucket) Deleted() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]string(nil), b.deleted...)
	sort.Strings(out)
	return out
}

// withStorage returns the environment's admin handler backed by bucket.
func (env *testEnv) withStorage(b *testBucket) *Admin {
	return NewAdmin(env.Renderer, env.Sessions, env.Records, b.Client)
}

// testSession creates a session.Data for testing.
func testSession(role string) *session.Data {
	return &session.Data{
		UserID:        uuid.New(),
		Email:         "staff@thememarket.test",
		DisplayName:   "Test User",
		Role:          role,
		TwoFAVerified: true,
	}
}

// withParams adds chi URL parameters and an optional session to a request.
func withParams(r *http.Request, sess *session.Data, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if sess != nil {
		ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	}
	return r.WithContext(ctx)
}

// cleanBySlug removes rows from a slugged table.
func cleanBySlug(t *testing.T, db *sqlx.DB, table string, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM "+table+" WHERE slug = $1", s)
	}
}
