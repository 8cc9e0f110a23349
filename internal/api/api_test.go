package api_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/api"
	"github.com/vytor/flashdeck/internal/deck"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository/memory"
	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/session"
	"github.com/vytor/flashdeck/internal/stats"
)

type fakeChecker struct{ err error }

func (f fakeChecker) Check(context.Context) error { return f.err }

func newTestServer(t *testing.T) *api.Server {
	t.Helper()
	tmpl, err := api.LoadTemplates()
	require.NoError(t, err)

	catalog := deck.Default()
	m := session.New(context.Background(), catalog, stats.NewStore(memory.NewKVRepository(), ""))
	return &api.Server{
		StudyService: services.NewStudyService(m, catalog, 300),
		Templates:    tmpl,
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) models.View {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v models.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder, status int) errorBody {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStudyPage(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := do(t, h, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "What is a closure?")
	assert.Contains(t, body, `<option value="html"`)
	assert.Contains(t, body, "1 / 6")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newTestServer(t).Routes()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc123", rec.Header().Get("X-Request-ID"))
}

func TestDecks(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := do(t, h, http.MethodGet, "/api/decks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Decks []models.DeckSummary `json:"decks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []models.DeckSummary{
		{ID: "javascript", Name: "JavaScript", Size: 6},
		{ID: "html", Name: "HTML", Size: 5},
		{ID: "css", Name: "CSS", Size: 5},
	}, body.Decks)
}

func TestNavigationFlow(t *testing.T) {
	h := newTestServer(t).Routes()

	v := decodeView(t, do(t, h, http.MethodPost, "/api/deck", `{"deck":"html"}`))
	assert.Equal(t, "html", v.DeckID)
	assert.Equal(t, 1, v.Stats.Viewed)

	for i := 0; i < 3; i++ {
		v = decodeView(t, do(t, h, http.MethodPost, "/api/next", ""))
	}
	assert.Equal(t, 4, v.Progress.Position)

	v = decodeView(t, do(t, h, http.MethodPost, "/api/next", ""))
	v = decodeView(t, do(t, h, http.MethodPost, "/api/next", ""))
	assert.Equal(t, 1, v.Progress.Position)
	assert.Equal(t, 6, v.Stats.Viewed)

	v = decodeView(t, do(t, h, http.MethodPost, "/api/prev", ""))
	assert.Equal(t, 5, v.Progress.Position)
	assert.Equal(t, float64(100), v.Progress.Percent)

	v = decodeView(t, do(t, h, http.MethodPost, "/api/flip", ""))
	assert.True(t, v.Flipped)
	assert.Equal(t, 1, v.Stats.Flipped)

	v = decodeView(t, do(t, h, http.MethodPost, "/api/shuffle", ""))
	assert.Equal(t, 1, v.Progress.Position)
	assert.False(t, v.Flipped)

	rec := do(t, h, http.MethodGet, "/api/stats/html", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deck":"html","stats":{"viewed":8,"flipped":1}}`, rec.Body.String())
}

func TestSelectDeck_Errors(t *testing.T) {
	h := newTestServer(t).Routes()

	body := decodeError(t, do(t, h, http.MethodPost, "/api/deck", `{"deck":"unknown"}`), http.StatusNotFound)
	assert.Equal(t, "INVALID_DECK", body.Error.Code)

	body = decodeError(t, do(t, h, http.MethodPost, "/api/deck", `{}`), http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)

	body = decodeError(t, do(t, h, http.MethodPost, "/api/deck", `not json`), http.StatusBadRequest)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)

	v := decodeView(t, do(t, h, http.MethodGet, "/api/state", ""))
	assert.Equal(t, "javascript", v.DeckID)
}

func TestStudyModeReveal(t *testing.T) {
	h := newTestServer(t).Routes()

	v := decodeView(t, do(t, h, http.MethodPost, "/api/study-mode", ""))
	assert.True(t, v.StudyMode)
	assert.Equal(t, session.DefaultPlaceholder, v.Back)

	v = decodeView(t, do(t, h, http.MethodPost, "/api/key", `{"key":" "}`))
	require.True(t, v.Flipped)
	assert.Equal(t, session.DefaultPlaceholder, v.Back)
	assert.Equal(t, 300, v.RevealDelayMS)

	stale := decodeView(t, do(t, h, http.MethodPost, "/api/reveal", `{"generation":999}`))
	assert.False(t, stale.Revealed)

	revealed := decodeView(t, do(t, h, http.MethodPost, "/api/reveal", `{"generation":`+jsonNumber(v.Generation)+`}`))
	assert.True(t, revealed.Revealed)
	assert.NotEqual(t, session.DefaultPlaceholder, revealed.Back)

	decodeError(t, do(t, h, http.MethodPost, "/api/reveal", `{}`), http.StatusBadRequest)
}

func TestKeyAndCommand(t *testing.T) {
	h := newTestServer(t).Routes()

	v := decodeView(t, do(t, h, http.MethodPost, "/api/key", `{"key":"ArrowRight"}`))
	assert.Equal(t, 2, v.Progress.Position)
	v = decodeView(t, do(t, h, http.MethodPost, "/api/key", `{"key":"ArrowLeft"}`))
	assert.Equal(t, 1, v.Progress.Position)

	body := decodeError(t, do(t, h, http.MethodPost, "/api/key", `{"key":"Enter"}`), http.StatusBadRequest)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)

	v = decodeView(t, do(t, h, http.MethodPost, "/api/command/next", ""))
	assert.Equal(t, 2, v.Progress.Position)

	decodeError(t, do(t, h, http.MethodPost, "/api/command/launch", ""), http.StatusBadRequest)
}

func TestDeckStats_Unknown(t *testing.T) {
	h := newTestServer(t).Routes()
	body := decodeError(t, do(t, h, http.MethodGet, "/api/stats/rust", ""), http.StatusNotFound)
	assert.Equal(t, "INVALID_DECK", body.Error.Code)
}

func TestUnknownAPIRoute(t *testing.T) {
	h := newTestServer(t).Routes()
	body := decodeError(t, do(t, h, http.MethodGet, "/api/nope", ""), http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(t, srv.Routes(), http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, srv.Routes(), http.MethodGet, "/ready", "").Code)

	srv.Store = fakeChecker{err: stderrors.New("locked")}
	assert.Equal(t, http.StatusServiceUnavailable, do(t, srv.Routes(), http.MethodGet, "/ready", "").Code)

	srv.Store = fakeChecker{}
	assert.Equal(t, http.StatusOK, do(t, srv.Routes(), http.MethodGet, "/ready", "").Code)
}

func jsonNumber(n uint64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
