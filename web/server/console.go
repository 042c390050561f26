package server

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-ambient-occlusion/pkg/core"
)

// maxConsoleHistory bounds how many renders keep their console output
const maxConsoleHistory = 64

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	// Non-blocking: a full channel drops the message
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
		}
	}
}

// ConsoleHistory keeps the console output of the most recent renders
type ConsoleHistory struct {
	mu       sync.Mutex
	messages map[string][]ConsoleMessage
	order    []string
	limit    int
}

// NewConsoleHistory creates a history holding up to limit renders
func NewConsoleHistory(limit int) *ConsoleHistory {
	if limit <= 0 {
		limit = maxConsoleHistory
	}
	return &ConsoleHistory{
		messages: make(map[string][]ConsoleMessage),
		limit:    limit,
	}
}

// Collect drains consoleChan until it is closed and stores the messages
// under renderID, evicting the oldest render when full
func (h *ConsoleHistory) Collect(renderID string, consoleChan <-chan ConsoleMessage) {
	var collected []ConsoleMessage
	for msg := range consoleChan {
		collected = append(collected, msg)
	}

	h.Append(renderID, collected...)
}

// Append adds messages for renderID
func (h *ConsoleHistory) Append(renderID string, msgs ...ConsoleMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.messages[renderID]; !ok {
		h.order = append(h.order, renderID)
		for len(h.order) > h.limit {
			delete(h.messages, h.order[0])
			h.order = h.order[1:]
		}
	}
	h.messages[renderID] = append(h.messages[renderID], msgs...)
}

// Get returns the messages recorded for renderID
func (h *ConsoleHistory) Get(renderID string) ([]ConsoleMessage, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msgs, ok := h.messages[renderID]
	if !ok {
		return nil, false
	}
	return append([]ConsoleMessage(nil), msgs...), true
}
