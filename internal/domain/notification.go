package domain

import (
	"sync"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a transient, dismissible message for the user.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

const inboxLimit = 50

// Inbox queues notifications until the page drains them. Old entries are
// dropped once the limit is reached.
type Inbox struct {
	mu    sync.Mutex
	items []Notification
}

func (in *Inbox) Push(level Level, msg string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.items = append(in.items, Notification{Level: level, Message: msg, At: time.Now()})
	if len(in.items) > inboxLimit {
		in.items = in.items[len(in.items)-inboxLimit:]
	}
}

// Drain returns queued notifications oldest first and empties the inbox.
func (in *Inbox) Drain() []Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.items
	in.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}
