package pgdb

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luxaris/luxaris/internal/domain"
)

// Session statuses. A session starts in progress and makes exactly one
// transition to completed or aborted.
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionAborted    = "aborted"
)

// Session tracks one generation invocation: the prompt, its optional
// template/post context, and the overall outcome.
type Session struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	PostID     *uuid.UUID `gorm:"type:uuid;index" json:"post_id"`
	TemplateID *uuid.UUID `gorm:"type:uuid;index" json:"template_id"`
	Prompt     string     `gorm:"type:text;not null" json:"prompt"`
	Status     string     `gorm:"size:20;not null" json:"status"`
	IsDeleted  bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt  *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Suggestion is one candidate piece of content for one channel within a
// session. Score is adapter-supplied and may be absent.
type Suggestion struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"session_id"`
	ChannelID uuid.UUID  `gorm:"type:uuid;not null;index" json:"channel_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Score     *float64   `json:"score"`
	Accepted  bool       `gorm:"not null;default:false" json:"accepted"`
	IsDeleted bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

func (s *Suggestion) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Template is a reusable placeholder-bearing content skeleton owned by a
// principal.
type Template struct {
	ID               uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID                     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name             string                        `gorm:"size:255;not null" json:"name"`
	Description      *string                       `json:"description"`
	Body             string                        `gorm:"type:text;not null" json:"template_body"`
	DefaultChannelID *uuid.UUID                    `gorm:"type:uuid" json:"default_channel_id"`
	Constraints      *domain.GenerationConstraints `gorm:"type:jsonb;serializer:json" json:"constraints"`
	IsDeleted        bool                          `gorm:"not null;default:false;index" json:"-"`
	DeletedAt        *time.Time                    `json:"-"`
	CreatedAt        time.Time                     `json:"created_at"`
	UpdatedAt        time.Time                     `json:"updated_at"`
}

func (t *Template) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Post is the durable content artifact a suggestion is accepted into.
type Post struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	BaseContent string     `gorm:"type:text;not null" json:"base_content"`
	Tags        []string   `gorm:"type:jsonb;serializer:json" json:"tags"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Variant is a channel-specific rendering of a post's content.
type Variant struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"post_id"`
	ChannelID uuid.UUID           `gorm:"type:uuid;not null;index" json:"channel_id"`
	Content   string              `gorm:"type:text;not null" json:"content"`
	Tone      string              `gorm:"size:50" json:"tone,omitempty"`
	Media     []domain.Attachment `gorm:"type:jsonb;serializer:json" json:"media,omitempty"`
	Source    string              `gorm:"size:20;not null" json:"source"`
	CreatedAt time.Time           `json:"created_at"`
}

func (v *Variant) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Channel is an external publishing target with its own content constraints.
type Channel struct {
	ID          uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID                  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string                     `gorm:"size:255;not null" json:"name"`
	Provider    string                     `gorm:"size:50" json:"provider"`
	Constraints *domain.ChannelConstraints `gorm:"type:jsonb;serializer:json" json:"constraints"`
	IsDeleted   bool                       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt   *time.Time                 `json:"-"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

func (c *Channel) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Event is an append-only audit row recorded around generation and
// acceptance.
type Event struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EventType   string         `gorm:"size:50;not null" json:"event_type"`
	EventName   string         `gorm:"size:100;not null;index" json:"event_name"`
	EntityType  string         `gorm:"size:50;not null" json:"entity_type"`
	EntityID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"entity_id"`
	PrincipalID uuid.UUID      `gorm:"type:uuid;not null;index" json:"principal_id"`
	Metadata    map[string]any `gorm:"type:jsonb;serializer:json" json:"metadata"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
