// Package notify defines the status notifications shown to the user.
package notify

import (
	"fmt"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// New returns a notification at level with a formatted message.
func New(level Level, format string, args ...any) Notification {
	return Notification{
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		CreatedAt: time.Now(),
	}
}

func Info(format string, args ...any) Notification    { return New(LevelInfo, format, args...) }
func Success(format string, args ...any) Notification { return New(LevelSuccess, format, args...) }
func Warning(format string, args ...any) Notification { return New(LevelWarning, format, args...) }

// Error returns an error-level notification describing err.
func Error(msg string, err error) Notification {
	return New(LevelError, "%s: %v", msg, err)
}
