// Package leadsink persists booked leads and forwards them to the CRM. It
// subscribes to dialogue events and has no HTTP surface of its own.
package leadsink

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lead is a fully qualified, booked prospect.
type Lead struct {
	ID             uuid.UUID `validate:"required"`
	ConversationID string    `validate:"required"`
	Service        string    `validate:"required"`
	Intent         string    `validate:"required"`
	Detail         string
	Timeline       string
	ScheduleNote   string
	ZIP            string `validate:"required,len=5,numeric"`
	CreatedAt      time.Time
}

// Repository stores leads in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the lead repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores one booked lead.
func (r *Repository) Insert(ctx context.Context, lead *Lead) error {
	const query = `
		INSERT INTO qualified_leads (
			id, conversation_id, service, intent, detail,
			timeline, schedule_note, zip, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		lead.ID,
		lead.ConversationID,
		lead.Service,
		lead.Intent,
		lead.Detail,
		lead.Timeline,
		lead.ScheduleNote,
		lead.ZIP,
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting lead %s: %w", lead.ID, err)
	}
	return nil
}
