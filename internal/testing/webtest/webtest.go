// Package webtest wires handlers against a fake Xano server and a miniredis
// backed session store so tests can drive full request cycles.
package webtest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/view"
	"github.com/platehub/backoffice/internal/xano"
	_ "github.com/platehub/backoffice/testing"
)

// Call is one request received by the fake API.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body.
func (c Call) JSON(t *testing.T, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(c.Body, dest))
}

// API is a scripted stand-in for the remote backend.
type API struct {
	Server *httptest.Server
	Client *xano.Client

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []Call
}

// NewAPI starts a fake backend. Unrouted requests answer 404.
func NewAPI(t *testing.T) *API {
	t.Helper()
	api := &API{routes: make(map[string]http.HandlerFunc)}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Server.Close)
	client, err := xano.New(api.Server.URL, xano.WithTimeout(5*time.Second), xano.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	api.Client = client
	return api
}

// Handle routes "METHOD /path" to fn.
func (a *API) Handle(pattern string, fn http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[pattern] = fn
}

// Reply routes pattern to a fixed JSON answer.
func (a *API) Reply(pattern string, status int, body any) {
	a.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

// Calls returns the requests received so far.
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}

// CallsTo filters recorded calls by "METHOD /path".
func (a *API) CallsTo(pattern string) []Call {
	var out []Call
	for _, c := range a.Calls() {
		if c.Method+" "+c.Path == pattern {
			out = append(out, c)
		}
	}
	return out
}

func (a *API) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	a.mu.Lock()
	a.calls = append(a.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Header: r.Header.Clone(), Body: body})
	fn := a.routes[r.Method+" "+r.URL.Path]
	a.mu.Unlock()
	if fn == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":"ERROR_CODE_NOT_FOUND","message":"Not found"}`)
		return
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	fn(w, r)
}

// Env bundles sessions, CSRF and the presenter around a fake API.
type Env struct {
	API       *API
	Redis     *redis.Client
	Miniredis *miniredis.Miniredis
	Sessions  *shared.SessionManager
	CSRF      *shared.CSRFManager
	Presenter *view.Presenter
	Logger    *slog.Logger

	cookie *http.Cookie
}

// New builds an Env with parsed templates.
func New(t *testing.T) *Env {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine, err := view.NewEngine()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrfsecret")
	return &Env{
		API:       NewAPI(t),
		Redis:     client,
		Miniredis: mr,
		Sessions:  sessions,
		CSRF:      csrf,
		Logger:    logger,
		Presenter: &view.Presenter{Templates: engine, CSRF: csrf, Sessions: sessions, Logger: logger},
	}
}

// SignIn seeds the session with a token, restaurant and flags.
func (e *Env) SignIn(t *testing.T, flags permissions.Flags) {
	t.Helper()
	e.WithSession(t, func(sess *shared.Session) {
		sess.SetUser("1")
		sess.Set(shared.SessionKeyAuthToken, "test-token")
		sess.Set(shared.SessionKeyRestaurantID, "9")
		sess.Set(shared.SessionKeyDisplayName, "Ada Lovelace")
		permissions.Store(sess, flags)
	})
}

// WithSession loads the current session, lets fn edit it and stores it.
func (e *Env) WithSession(t *testing.T, fn func(*shared.Session)) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	sess, err := e.Sessions.Load(context.Background(), req)
	require.NoError(t, err)
	fn(sess)
	rec := httptest.NewRecorder()
	require.NoError(t, e.Sessions.Commit(context.Background(), rec, req, sess))
	e.keepCookie(rec)
}

// Session returns a snapshot of the stored session.
func (e *Env) Session(t *testing.T) *shared.Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	sess, err := e.Sessions.Load(context.Background(), req)
	require.NoError(t, err)
	return sess
}

// Token returns the CSRF token of the session, issuing one when missing.
func (e *Env) Token(t *testing.T) string {
	t.Helper()
	var token string
	e.WithSession(t, func(sess *shared.Session) {
		var err error
		token, err = e.CSRF.EnsureToken(context.Background(), sess)
		require.NoError(t, err)
	})
	return token
}

// Do runs req through h with the session attached, the way the middleware
// stack does, and commits the session afterwards.
func (e *Env) Do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	sess, err := e.Sessions.Load(req.Context(), req)
	require.NoError(t, err)
	ctx := shared.ContextWithSession(req.Context(), sess)
	if token := sess.Token(); token != "" {
		ctx = xano.ContextWithToken(ctx, token)
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	commit := httptest.NewRecorder()
	require.NoError(t, e.Sessions.Commit(ctx, commit, req, sess))
	e.keepCookie(commit)
	return rec
}

// Get issues a GET through h.
func (e *Env) Get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.Do(t, h, httptest.NewRequest(http.MethodGet, target, nil))
}

// PostForm issues a urlencoded POST through h.
func (e *Env) PostForm(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.Do(t, h, req)
}

func (e *Env) keepCookie(rec *httptest.ResponseRecorder) {
	for _, c := range rec.Result().Cookies() {
		if c.Name != e.Sessions.CookieName() {
			continue
		}
		if c.MaxAge < 0 {
			e.cookie = nil
			continue
		}
		e.cookie = &http.Cookie{Name: c.Name, Value: c.Value}
	}
}

// TokenContext carries the token SignIn stores, for calling services directly.
func TokenContext() context.Context {
	return xano.ContextWithToken(context.Background(), "test-token")
}
