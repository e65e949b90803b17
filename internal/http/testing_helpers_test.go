package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/postomat/internal/converter"
	"github.com/mrlokans/postomat/internal/entities"
	"github.com/mrlokans/postomat/internal/fixtures"
	"github.com/mrlokans/postomat/internal/locker"
	"github.com/mrlokans/postomat/internal/notify"
	"github.com/mrlokans/postomat/internal/scheduler"
)

type fakeLocker struct {
	mu     sync.Mutex
	cells  []entities.Cell
	err    error
	opened []int
}

func (f *fakeLocker) GetStatus(context.Context) ([]entities.Cell, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cells, nil
}

func (f *fakeLocker) GetCell(ctx context.Context, cellID int) (*entities.Cell, error) {
	cells, err := f.GetStatus(ctx)
	if err != nil {
		return nil, err
	}
	cell, ok := entities.FindCell(cells, cellID)
	if !ok {
		return nil, locker.ErrCellNotFound
	}
	return cell, nil
}

func (f *fakeLocker) OpenCell(_ context.Context, cellID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, cellID)
	return f.err
}

type fakeMailer struct {
	sent []notify.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type fakeWatcher struct {
	state scheduler.WatchState
	runs  int
}

func (f *fakeWatcher) State() scheduler.WatchState { return f.state }
func (f *fakeWatcher) RunNow()                     { f.runs++ }

func fixtureCells(t *testing.T) []entities.Cell {
	t.Helper()
	data, err := fixtures.StatusCells()
	require.NoError(t, err)
	cells, err := converter.Load[[]entities.Cell](converter.Default(), data, true)
	require.NoError(t, err)
	return cells
}

func newTestRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(cfg)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
