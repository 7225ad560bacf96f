package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glenigan-pipeline/dedup-engine/pkg/database"
)

// NoteRepository appends CRM notes to projects. Notes are the human-visible
// audit trail that sales staff see against a project.
type NoteRepository interface {
	Append(ctx context.Context, projectID, note string) error
}

// noteRepository implements NoteRepository using PostgreSQL.
type noteRepository struct{}

// NewNoteRepository creates a new note repository.
func NewNoteRepository() NoteRepository {
	return &noteRepository{}
}

// Append adds a note to a project's CRM history.
func (r *noteRepository) Append(ctx context.Context, projectID, note string) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO crm_notes (id, project_id, note, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := scope.Conn.Exec(ctx, query, uuid.New(), projectID, note, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append note: %w", err)
	}

	return nil
}

// Ensure noteRepository implements NoteRepository at compile time.
var _ NoteRepository = (*noteRepository)(nil)
