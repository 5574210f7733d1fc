// internal/db/models.go
package db

import "time"

// tool_calls: invocation metadata only, never entity payloads
type ToolCall struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Tool       string    `gorm:"index;size:64" json:"tool"`
	Arguments  string    `gorm:"type:text" json:"arguments"` // JSON, secrets redacted
	Outcome    string    `gorm:"index;size:32" json:"outcome"` // ok or the error type
	Error      string    `gorm:"type:text" json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
