package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/peer"
)

// AuditEventType categorizes audit events.
type AuditEventType string

const (
	AuditEventPopulateStart    AuditEventType = "populate.start"
	AuditEventPopulateComplete AuditEventType = "populate.complete"
	AuditEventPopulateError    AuditEventType = "populate.error"
	AuditEventDBConnect        AuditEventType = "db.connect"
	AuditEventScoreRejected    AuditEventType = "score.rejected"
)

// AuditEvent represents a single audit log entry.
type AuditEvent struct {
	Timestamp   time.Time      `json:"timestamp"`
	EventType   AuditEventType `json:"event_type"`
	SessionID   string         `json:"session_id"`
	Corpus      string         `json:"corpus,omitempty"`
	Generation  string         `json:"generation,omitempty"`
	Peer        string         `json:"peer,omitempty"`
	Success     bool           `json:"success"`
	DurationMS  int64          `json:"duration_ms,omitempty"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	ErrorDetail string         `json:"error_detail,omitempty"`
}

// AuditLogger writes audit events as JSON lines.
type AuditLogger struct {
	mu        sync.Mutex
	writer    io.Writer
	sessionID string
	enabled   bool
}

// AuditConfig configures the audit logger.
type AuditConfig struct {
	Enabled    bool
	OutputPath string // File path or "stdout"/"stderr"
	SessionID  string
}

// DefaultAuditConfig returns default audit configuration.
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		Enabled:    true,
		OutputPath: "stdout",
	}
}

// NewAuditLogger creates a new audit logger. The session ID identifies this
// process in the audit trail and is generated when not configured.
func NewAuditLogger(config *AuditConfig) (*AuditLogger, error) {
	if config == nil {
		config = DefaultAuditConfig()
	}

	var writer io.Writer
	switch config.OutputPath {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		f, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open audit log: %w", err)
		}
		writer = f
	}

	sessionID := config.SessionID
	if sessionID == "" {
		sessionID = "session-" + uuid.NewString()
	}

	return &AuditLogger{
		writer:    writer,
		sessionID: sessionID,
		enabled:   config.Enabled,
	}, nil
}

// NewAuditWriter returns an enabled logger writing to w.
func NewAuditWriter(w io.Writer, sessionID string) *AuditLogger {
	if sessionID == "" {
		sessionID = "session-" + uuid.NewString()
	}
	return &AuditLogger{writer: w, sessionID: sessionID, enabled: true}
}

// DisabledAuditLogger returns a logger that drops every event.
func DisabledAuditLogger() *AuditLogger {
	return &AuditLogger{writer: io.Discard}
}

// Log writes an audit event.
func (l *AuditLogger) Log(event *AuditEvent) error {
	if l == nil || !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.SessionID == "" {
		event.SessionID = l.sessionID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	_, err = fmt.Fprintf(l.writer, "%s\n", data)
	return err
}

func peerAddr(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return ""
}

// LogPopulateStart logs the start of an index rebuild.
func (l *AuditLogger) LogPopulateStart(ctx context.Context, kind string) {
	l.Log(&AuditEvent{
		EventType: AuditEventPopulateStart,
		Corpus:    kind,
		Peer:      peerAddr(ctx),
		Success:   true,
		Message:   fmt.Sprintf("Populate %s started", kind),
	})
}

// LogPopulateComplete logs an installed index rebuild.
func (l *AuditLogger) LogPopulateComplete(ctx context.Context, kind, generation string, documents, terms int, duration time.Duration) {
	l.Log(&AuditEvent{
		EventType:  AuditEventPopulateComplete,
		Corpus:     kind,
		Generation: generation,
		Peer:       peerAddr(ctx),
		Success:    true,
		DurationMS: duration.Milliseconds(),
		Message:    fmt.Sprintf("Populate %s installed %d documents", kind, documents),
		Details: map[string]any{
			"documents": documents,
			"terms":     terms,
		},
	})
}

// LogPopulateError logs a failed index rebuild.
func (l *AuditLogger) LogPopulateError(ctx context.Context, kind string, duration time.Duration, err error) {
	l.Log(&AuditEvent{
		EventType:   AuditEventPopulateError,
		Corpus:      kind,
		Peer:        peerAddr(ctx),
		Success:     false,
		DurationMS:  duration.Milliseconds(),
		Message:     fmt.Sprintf("Populate %s failed", kind),
		ErrorDetail: err.Error(),
	})
}

// LogDBConnect logs the outcome of connecting to the corpus database.
func (l *AuditLogger) LogDBConnect(ctx context.Context, driver string, duration time.Duration, err error) {
	event := &AuditEvent{
		EventType:  AuditEventDBConnect,
		Success:    err == nil,
		DurationMS: duration.Milliseconds(),
		Message:    fmt.Sprintf("Connect to %s database", driver),
		Details:    map[string]any{"driver": driver},
	}
	if err != nil {
		event.ErrorDetail = err.Error()
	}
	l.Log(event)
}

// LogScoreRejected logs a score request refused before any work was done.
func (l *AuditLogger) LogScoreRejected(ctx context.Context, kind string, numResults uint32, err error) {
	l.Log(&AuditEvent{
		EventType:   AuditEventScoreRejected,
		Corpus:      kind,
		Peer:        peerAddr(ctx),
		Success:     false,
		Message:     fmt.Sprintf("Score %s rejected", kind),
		ErrorDetail: err.Error(),
		Details:     map[string]any{"num_results": numResults},
	})
}

// Close closes the audit logger (if using a file).
func (l *AuditLogger) Close() error {
	if closer, ok := l.writer.(io.Closer); ok {
		if closer != os.Stdout && closer != os.Stderr {
			return closer.Close()
		}
	}
	return nil
}
