package handler_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/handler"
	sqliteRepo "github.com/sakif/starwars-api/internal/repository/sqlite"
	"github.com/sakif/starwars-api/internal/service"
)

// testEnv wires real services over an in-memory database. Handlers are
// called directly; routing is exercised in the server package.
type testEnv struct {
	db         *sqliteRepo.DB
	tokens     *auth.TokenService
	users      *handler.UserHandler
	planets    *handler.PlanetHandler
	characters *handler.CharacterHandler
	vehicles   *handler.VehicleHandler
	favorites  *handler.FavoriteHandler
	login      *handler.AuthHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewTokenService("handler-test-secret-0123456789", "starwars-api", time.Minute)
	require.NoError(t, err)
	passwords := auth.NewPasswordService(4)

	return &testEnv{
		db:         db,
		tokens:     tokens,
		users:      handler.NewUserHandler(service.NewUserService(db, passwords, logger)),
		planets:    handler.NewPlanetHandler(service.NewPlanetService(db, logger)),
		characters: handler.NewCharacterHandler(service.NewCharacterService(db, logger)),
		vehicles:   handler.NewVehicleHandler(service.NewVehicleService(db, logger)),
		favorites:  handler.NewFavoriteHandler(service.NewFavoriteService(db, db, db, db, db, logger)),
		login:      handler.NewAuthHandler(service.NewAuthService(db, tokens, passwords, logger)),
	}
}

// request builds a request with an optional JSON body, {id} path parameter
// and caller identity.
func request(method, path, body string, id string, identity string) *http.Request {
	var r io.Reader = http.NoBody
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	if identity != "" {
		ctx = auth.WithIdentity(ctx, identity)
	}
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

// createUser registers a user through the handler and returns its id.
func (e *testEnv) createUser(t *testing.T, email, username string) int64 {
	t.Helper()
	body := `{"email":"` + email + `","username":"` + username + `","password":"hunter22"}`
	rr := serve(e.users.HandleCreate, request(http.MethodPost, "/user", body, "", ""))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return int64(decode(t, rr)["result"].(map[string]any)["id"].(float64))
}

func (e *testEnv) createPlanet(t *testing.T, name string) int64 {
	t.Helper()
	rr := serve(e.planets.HandleCreate, request(http.MethodPost, "/planets", `{"name":"`+name+`"}`, "", ""))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return int64(decode(t, rr)["result"].(map[string]any)["id"].(float64))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
