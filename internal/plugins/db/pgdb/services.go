package pgdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/luxaris/luxaris/internal/domain"
)

// Collaborator-facing methods: the generation subsystem consumes posts,
// variants and channels through principal-scoped contracts rather than raw
// repository reads.

// GetPost returns the post only when it is visible to the principal.
func (r *PostRepository) GetPost(ctx context.Context, principalID, id uuid.UUID) (*Post, error) {
	post, err := r.Get(ctx, id)
	if err != nil || post == nil {
		return nil, err
	}
	if post.OwnerID != principalID {
		return nil, nil
	}
	return post, nil
}

// CreatePost creates a post owned by the principal.
func (r *PostRepository) CreatePost(ctx context.Context, principalID uuid.UUID, draft domain.PostDraft) (*Post, error) {
	post := &Post{
		OwnerID:     principalID,
		Title:       draft.Title,
		BaseContent: draft.BaseContent,
		Tags:        draft.Tags,
	}
	if err := r.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateVariant creates one channel variant of a post.
func (r *VariantRepository) CreateVariant(ctx context.Context, _ uuid.UUID, draft domain.VariantDraft) (*Variant, error) {
	variant := &Variant{
		PostID:    draft.PostID,
		ChannelID: draft.ChannelID,
		Content:   draft.Content,
		Tone:      draft.Tone,
		Media:     draft.Media,
		Source:    draft.Source,
	}
	if err := r.Create(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// GetChannel exposes a channel and its constraints to generation.
func (r *ChannelRepository) GetChannel(ctx context.Context, id uuid.UUID) (*Channel, error) {
	return r.Get(ctx, id)
}
