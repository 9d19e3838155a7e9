package audit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudstore/internal/auth"
)

type fakeExecer struct {
	err     error
	release chan struct{}
	args    chan []any
}

func (f *fakeExecer) Exec(_ context.Context, _ string, arguments ...any) (pgconn.CommandTag, error) {
	if f.args != nil {
		f.args <- arguments
	}
	if f.release != nil {
		<-f.release
	}
	return pgconn.CommandTag{}, f.err
}

type chanWriter struct {
	ch chan string
}

func (w chanWriter) Write(p []byte) (int, error) {
	w.ch <- string(p)
	return len(p), nil
}

func TestLogger_LogFromContextBuildsEvent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/files", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Response().Header().Set(echo.HeaderXRequestID, "req-123")
	c.Set(auth.ContextKeyUserID, int64(7))

	exec := &fakeExecer{args: make(chan []any, 1)}
	l := &Logger{db: exec}

	id := int64(42)
	l.LogFromContext(c, ResourceTypeFile, &id, ActionCreate, StatusSuccess)

	select {
	case args := <-exec.args:
		require.Len(t, args, 9)
		assert.Equal(t, "create_file", args[0])
		actor, ok := args[1].(*int64)
		require.True(t, ok)
		assert.Equal(t, int64(7), *actor)
		assert.Equal(t, ResourceTypeFile, args[2])
		resource, ok := args[3].(*int64)
		require.True(t, ok)
		assert.Equal(t, int64(42), *resource)
		assert.Equal(t, ActionCreate, args[4])
		assert.Equal(t, StatusSuccess, args[5])
		assert.Equal(t, "req-123", args[6])
		assert.Equal(t, "", args[7])
	case <-time.After(2 * time.Second):
		t.Fatal("audit event was not inserted")
	}
}

func TestLogger_LogErrorRecordsFailure(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/files/1", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	exec := &fakeExecer{args: make(chan []any, 1)}
	l := &Logger{db: exec}

	id := int64(1)
	l.LogError(c, ResourceTypeFile, &id, ActionDelete, errors.New("file not found"))

	select {
	case args := <-exec.args:
		require.Len(t, args, 9)
		assert.Equal(t, "delete_file", args[0])
		assert.Nil(t, args[1])
		assert.Equal(t, StatusFailure, args[5])
		assert.Equal(t, "file not found", args[7])
	case <-time.After(2 * time.Second):
		t.Fatal("audit event was not inserted")
	}
}

func TestLogger_DispatchSurvivesContextRecycle(t *testing.T) {
	e := echo.New()
	out := chanWriter{ch: make(chan string, 1)}
	e.Logger.SetOutput(out)

	req := httptest.NewRequest(http.MethodPost, "/files", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	exec := &fakeExecer{err: errors.New("insert failed"), release: make(chan struct{})}
	l := &Logger{db: exec}

	id := int64(3)
	l.LogFromContext(c, ResourceTypeFile, &id, ActionDelete, StatusSuccess)

	// Echo returns finished contexts to its pool, so the background
	// insert must not read the context after this point.
	c.Reset(httptest.NewRequest(http.MethodGet, "/other", nil), httptest.NewRecorder())
	close(exec.release)

	select {
	case line := <-out.ch:
		assert.Contains(t, line, "audit log failed")
		assert.Contains(t, line, "insert failed")
	case <-time.After(2 * time.Second):
		t.Fatal("audit failure was not reported")
	}
}
