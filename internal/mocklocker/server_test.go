package mocklocker

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/postomat/internal/locker"
)

func newClient(t *testing.T) (*locker.Client, *Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := New()
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return locker.NewClient("http://"+host, locker.WithPort(port)), s
}

func TestMockLocker_Status(t *testing.T) {
	client, _ := newClient(t)

	cells, err := client.GetStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, cells, 5)
	assert.Equal(t, 0, cells[4].Active)
}

func TestMockLocker_OpenTogglesSession(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	require.NoError(t, client.OpenCell(ctx, 2))

	cell, err := client.GetCell(ctx, 2)
	require.NoError(t, err)
	assert.True(t, cell.HasSession())
	assert.True(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Equal(cell.UpdatedAt))

	require.NoError(t, client.OpenCell(ctx, 2))
	cell, err = client.GetCell(ctx, 2)
	require.NoError(t, err)
	assert.False(t, cell.HasSession())
}

func TestMockLocker_OpenErrors(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	err := client.OpenCell(ctx, 5)
	assert.True(t, locker.IsStatus(err, http.StatusConflict), "inactive cell: %v", err)

	err = client.OpenCell(ctx, 42)
	assert.True(t, locker.IsStatus(err, http.StatusNotFound), "unknown cell: %v", err)
}
