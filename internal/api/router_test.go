package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/require"

	"github.com/go-restream/restream/internal/player"
)

type fakeController struct {
	mu     sync.Mutex
	nexts  int
	prevs  int
	skips  []int
	status player.Status
}

func (f *fakeController) Next() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nexts++
}

func (f *fakeController) Prev() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prevs++
}

func (f *fakeController) Skip(video int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skips = append(f.skips, video)
}

func (f *fakeController) Status() player.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func newTestRouter(ctrl *fakeController) *chi.Mux {
	router := chi.NewRouter()
	New(ctrl).Mount(router)
	return router
}

func get(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestControlNext(t *testing.T) {
	ctrl := &fakeController{}
	router := newTestRouter(ctrl)

	rec, body := get(t, router, "/api/control/next")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "next", body["command"])
	require.Equal(t, 1, ctrl.nexts)
}

func TestControlPrev(t *testing.T) {
	ctrl := &fakeController{}
	router := newTestRouter(ctrl)

	rec, body := get(t, router, "/api/control/prev")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "prev", body["command"])
	require.Equal(t, 1, ctrl.prevs)
}

func TestControlSkip(t *testing.T) {
	ctrl := &fakeController{}
	router := newTestRouter(ctrl)

	rec, body := get(t, router, "/api/control/skip/3")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "skip", body["command"])
	require.Equal(t, float64(3), body["video"])
	require.Equal(t, []int{3}, ctrl.skips)
}

func TestControlSkipInvalid(t *testing.T) {
	ctrl := &fakeController{}
	router := newTestRouter(ctrl)

	for _, path := range []string{"/api/control/skip/0", "/api/control/skip/-1", "/api/control/skip/abc"} {
		rec, body := get(t, router, path)

		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		require.Equal(t, "error", body["status"], path)
	}

	// invalid skips never reach the player
	require.Empty(t, ctrl.skips)
}

func TestStatus(t *testing.T) {
	ctrl := &fakeController{
		status: player.Status{Status: "ready", Video: 2, Total: 5},
	}
	router := newTestRouter(ctrl)

	rec, body := get(t, router, "/api/status")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ready", body["status"])
	require.Equal(t, float64(2), body["video"])
	require.Equal(t, float64(5), body["total"])
}
