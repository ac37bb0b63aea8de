// Package core holds the generation subsystem's use cases: orchestrating
// fan-out, accepting suggestions, and session/template management. All
// persistence and collaborators are injected through the interfaces below so
// tests can substitute mocks.
package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/luxaris/luxaris/internal/domain"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
)

type SessionStore interface {
	Create(ctx context.Context, session *pgdb.Session) error
	Get(ctx context.Context, id uuid.UUID) (*pgdb.Session, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, ownerID uuid.UUID, filter domain.SessionFilter) ([]pgdb.Session, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type SuggestionStore interface {
	CreateBatch(ctx context.Context, suggestions []*pgdb.Suggestion) error
	Get(ctx context.Context, id uuid.UUID) (*pgdb.Suggestion, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]pgdb.Suggestion, error)
	MarkAccepted(ctx context.Context, id uuid.UUID) (bool, error)
	SoftDeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

type TemplateStore interface {
	Create(ctx context.Context, template *pgdb.Template) error
	Get(ctx context.Context, id uuid.UUID) (*pgdb.Template, error)
	Update(ctx context.Context, template *pgdb.Template) error
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]pgdb.Template, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// PostService is the post collaborator: visibility-checked reads and creation
// on behalf of a principal.
type PostService interface {
	GetPost(ctx context.Context, principalID, id uuid.UUID) (*pgdb.Post, error)
	CreatePost(ctx context.Context, principalID uuid.UUID, draft domain.PostDraft) (*pgdb.Post, error)
}

// VariantService is the variant collaborator.
type VariantService interface {
	CreateVariant(ctx context.Context, principalID uuid.UUID, draft domain.VariantDraft) (*pgdb.Variant, error)
}

// ChannelService is the channel collaborator; channels expose constraints.
type ChannelService interface {
	GetChannel(ctx context.Context, id uuid.UUID) (*pgdb.Channel, error)
}

// EventRecorder is the audit sink. Recording failures are logged by the use
// cases, never surfaced to callers.
type EventRecorder interface {
	Record(ctx context.Context, event *pgdb.Event) error
}

const (
	eventTypeGeneration = "generation"

	eventGenerationStarted   = "generation_started"
	eventGenerationCompleted = "generation_completed"
	eventGenerationFailed    = "generation_failed"
	eventSuggestionAccepted  = "suggestion_accepted"

	entitySession    = "generation_session"
	entitySuggestion = "generation_suggestion"
)
