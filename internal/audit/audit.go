package audit

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"cloudstore/internal/auth"
)

// ResourceType represents the type of resource being acted upon
type ResourceType string

const (
	ResourceTypeUser   ResourceType = "user"
	ResourceTypeFile   ResourceType = "file"
	ResourceTypeFolder ResourceType = "folder"
	ResourceTypeShare  ResourceType = "share"
)

// Action represents the action being performed
type Action string

const (
	ActionCreate   Action = "create"
	ActionRead     Action = "read"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
	ActionShare    Action = "share"
	ActionRevoke   Action = "revoke"
	ActionDownload Action = "download"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Event represents an audit event
type Event struct {
	EventType    string
	ActorID      *int64
	ResourceType ResourceType
	ResourceID   *int64
	Action       Action
	Status       Status
	RequestID    string
	ErrorMessage string
	CreatedAt    time.Time
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Logger handles audit logging
type Logger struct {
	db execer
}

// NewLogger creates a new audit logger
func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{db: pool}
}

// Log records an audit event
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO audit_events (
			event_type, actor_id, resource_type, resource_id,
			action, status, request_id, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := l.db.Exec(ctx, query,
		event.EventType,
		event.ActorID,
		event.ResourceType,
		event.ResourceID,
		event.Action,
		event.Status,
		event.RequestID,
		event.ErrorMessage,
		event.CreatedAt,
	)

	return err
}

// LogFromContext creates and logs an audit event from an Echo context asynchronously
func (l *Logger) LogFromContext(c echo.Context, resourceType ResourceType, resourceID *int64, action Action, status Status) {
	event := &Event{
		EventType:    string(action) + "_" + string(resourceType),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Status:       status,
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if userID, err := auth.GetUserID(c); err == nil {
		event.ActorID = &userID
	}

	l.dispatch(c.Logger().Output(), event)
}

// LogError logs a failed action with error details asynchronously
func (l *Logger) LogError(c echo.Context, resourceType ResourceType, resourceID *int64, action Action, err error) {
	event := &Event{
		EventType:    string(action) + "_" + string(resourceType),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Status:       StatusFailure,
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		ErrorMessage: err.Error(),
	}

	if userID, getErr := auth.GetUserID(c); getErr == nil {
		event.ActorID = &userID
	}

	l.dispatch(c.Logger().Output(), event)
}

// dispatch inserts the event in the background. Echo recycles contexts
// once the request ends, so everything the goroutine needs is read from
// the context before this point and passed in by value.
func (l *Logger) dispatch(out io.Writer, event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			// Do not block or fail the request on audit errors.
			fmt.Fprintf(out, "audit log failed: %v\n", err)
		}
	}()
}
