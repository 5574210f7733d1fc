package db

import (
	"fmt"
)

// Migrate creates or updates the journal schema.
func (h *Handle) Migrate() error {
	if err := h.DB.AutoMigrate(&ToolCall{}); err != nil {
		return fmt.Errorf("AutoMigrate error: %w", err)
	}
	return nil
}
