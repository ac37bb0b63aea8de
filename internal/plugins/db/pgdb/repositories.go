package pgdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luxaris/luxaris/internal/domain"
)

// Repositories return (nil, nil) when a row is absent or soft-deleted;
// callers decide which failure that maps to.

type SessionRepository struct {
	db *gorm.DB
}

func (r *SessionRepository) Create(ctx context.Context, session *Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SetStatus records the session's terminal transition.
func (r *SessionRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

// List returns the owner's sessions newest-first, with the unpaged total.
func (r *SessionRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.SessionFilter) ([]Session, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&Session{}).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PostID != nil {
		query = query.Where("post_id = ?", *filter.PostID)
	}
	if filter.TemplateID != nil {
		query = query.Where("template_id = ?", *filter.TemplateID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var sessions []Session
	if err := query.Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *SessionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": now}).Error
}

type SuggestionRepository struct {
	db *gorm.DB
}

func (r *SuggestionRepository) CreateBatch(ctx context.Context, suggestions []*Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(suggestions).Error
}

func (r *SuggestionRepository) Get(ctx context.Context, id uuid.UUID) (*Suggestion, error) {
	var suggestion Suggestion
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&suggestion).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// ListBySession returns the canonical ranking: best score first, unscored
// suggestions last, ties broken by insertion time.
func (r *SuggestionRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Suggestion, error) {
	var suggestions []Suggestion
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND is_deleted = ?", sessionID, false).
		Order("score DESC NULLS LAST, created_at ASC").
		Find(&suggestions).Error
	return suggestions, err
}

// MarkAccepted flips accepted conditionally so concurrent accepts cannot
// both win: the update matches only while accepted is still false, and the
// caller checks the reported row count.
func (r *SuggestionRepository) MarkAccepted(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Suggestion{}).
		Where("id = ? AND accepted = ? AND is_deleted = ?", id, false, false).
		Update("accepted", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *SuggestionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&Suggestion{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": now}).Error
}

// SoftDeleteBySession cascades a session delete to its suggestions.
func (r *SuggestionRepository) SoftDeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&Suggestion{}).
		Where("session_id = ? AND is_deleted = ?", sessionID, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": now}).Error
}

type TemplateRepository struct {
	db *gorm.DB
}

func (r *TemplateRepository) Create(ctx context.Context, template *Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *TemplateRepository) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	var template Template
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&template).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) Update(ctx context.Context, template *Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *TemplateRepository) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Template, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&Template{}).
		Where("owner_id = ? AND is_deleted = ?", ownerID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var templates []Template
	if err := query.Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

func (r *TemplateRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&Template{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": now}).Error
}

type PostRepository struct {
	db *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	var post Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

type VariantRepository struct {
	db *gorm.DB
}

func (r *VariantRepository) Create(ctx context.Context, variant *Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

type ChannelRepository struct {
	db *gorm.DB
}

func (r *ChannelRepository) Get(ctx context.Context, id uuid.UUID) (*Channel, error) {
	var channel Channel
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&channel).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

type EventRepository struct {
	db *gorm.DB
}

func (r *EventRepository) Record(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}
