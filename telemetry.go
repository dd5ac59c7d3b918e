package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type telemetryEvent struct {
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	Sheet     string            `json:"sheet,omitempty"`
	ExtraJSON map[string]string `json:"extra_json,omitempty"`
}

type telemetryLogger struct {
	path      string
	sessionID string
	userID    string
	mu        sync.Mutex
	now       func() time.Time
}

func newTelemetryLogger(path, sessionID, userID string) *telemetryLogger {
	dir := filepath.Dir(path)
	_ = os.MkdirAll(dir, 0o755)
	return &telemetryLogger{
		path:      path,
		sessionID: strings.TrimSpace(sessionID),
		userID:    strings.TrimSpace(userID),
		now:       time.Now,
	}
}

// Emit appends one event line. The sheet name travels in its own column;
// everything else lands in extra_json.
func (t *telemetryLogger) Emit(event string, fields map[string]string) {
	if t == nil || strings.TrimSpace(event) == "" {
		return
	}
	entry := telemetryEvent{
		SessionID: t.sessionID,
		UserID:    t.userID,
		Timestamp: t.now().UTC(),
		Event:     strings.TrimSpace(event),
	}
	extra := make(map[string]string, len(fields))
	for key, value := range fields {
		if key == "sheet" {
			entry.Sheet = value
			continue
		}
		extra[key] = value
	}
	if len(extra) > 0 {
		entry.ExtraJSON = extra
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(data)
}

func telemetryPath(configDir string) string {
	return filepath.Join(configDir, "telemetry.jsonl")
}

func newTelemetrySessionID() string {
	return uuid.NewString()
}

func resolveTelemetryUserID() string {
	candidates := []string{
		os.Getenv("BITSCALE_USER_ID"),
		os.Getenv("USER"),
		os.Getenv("USERNAME"),
	}
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
