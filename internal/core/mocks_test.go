package core

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/luxaris/luxaris/internal/domain"
	"github.com/luxaris/luxaris/internal/plugins/ai"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
)

// fakeDB is an in-memory stand-in for every store and collaborator the use
// cases touch. Time ordering is simulated with a monotonic sequence so
// created_at ties never happen unless a test makes them happen.
type fakeDB struct {
	sessions    map[uuid.UUID]*pgdb.Session
	suggestions []*pgdb.Suggestion
	templates   map[uuid.UUID]*pgdb.Template
	posts       map[uuid.UUID]*pgdb.Post
	variants    []*pgdb.Variant
	channels    map[uuid.UUID]*pgdb.Channel
	events      []*pgdb.Event

	channelErr error
	seq        int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		sessions:  map[uuid.UUID]*pgdb.Session{},
		templates: map[uuid.UUID]*pgdb.Template{},
		posts:     map[uuid.UUID]*pgdb.Post{},
		channels:  map[uuid.UUID]*pgdb.Channel{},
	}
}

func (f *fakeDB) now() time.Time {
	f.seq++
	return time.Unix(1700000000, 0).Add(time.Duration(f.seq) * time.Second)
}

func (f *fakeDB) addChannel(maxLength int) uuid.UUID {
	id := uuid.New()
	var constraints *domain.ChannelConstraints
	if maxLength > 0 {
		constraints = &domain.ChannelConstraints{MaxLength: maxLength}
	}
	f.channels[id] = &pgdb.Channel{ID: id, Name: "channel", Constraints: constraints}
	return id
}

func (f *fakeDB) Create(_ context.Context, session *pgdb.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = f.now()
	session.UpdatedAt = session.CreatedAt
	stored := *session
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeDB) Get(_ context.Context, id uuid.UUID) (*pgdb.Session, error) {
	session, ok := f.sessions[id]
	if !ok || session.IsDeleted {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (f *fakeDB) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	session, ok := f.sessions[id]
	if !ok || session.IsDeleted {
		return errors.New("session not found")
	}
	session.Status = status
	session.UpdatedAt = f.now()
	return nil
}

func (f *fakeDB) List(_ context.Context, ownerID uuid.UUID, filter domain.SessionFilter) ([]pgdb.Session, int64, error) {
	var matched []pgdb.Session
	for _, session := range f.sessions {
		if session.IsDeleted || session.OwnerID != ownerID {
			continue
		}
		if filter.Status != "" && session.Status != filter.Status {
			continue
		}
		if filter.PostID != nil && (session.PostID == nil || *session.PostID != *filter.PostID) {
			continue
		}
		if filter.TemplateID != nil && (session.TemplateID == nil || *session.TemplateID != *filter.TemplateID) {
			continue
		}
		matched = append(matched, *session)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (f *fakeDB) SoftDelete(_ context.Context, id uuid.UUID) error {
	if session, ok := f.sessions[id]; ok {
		now := f.now()
		session.IsDeleted = true
		session.DeletedAt = &now
	}
	return nil
}

func (f *fakeDB) CreateBatch(_ context.Context, suggestions []*pgdb.Suggestion) error {
	for _, suggestion := range suggestions {
		if suggestion.ID == uuid.Nil {
			suggestion.ID = uuid.New()
		}
		suggestion.CreatedAt = f.now()
		stored := *suggestion
		f.suggestions = append(f.suggestions, &stored)
	}
	return nil
}

func (f *fakeDB) GetSuggestion(ctx context.Context, id uuid.UUID) (*pgdb.Suggestion, error) {
	for _, suggestion := range f.suggestions {
		if suggestion.ID == id && !suggestion.IsDeleted {
			copied := *suggestion
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) ListBySession(_ context.Context, sessionID uuid.UUID) ([]pgdb.Suggestion, error) {
	var matched []pgdb.Suggestion
	for _, suggestion := range f.suggestions {
		if suggestion.SessionID == sessionID && !suggestion.IsDeleted {
			matched = append(matched, *suggestion)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch {
		case a.Score == nil && b.Score == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.Score == nil:
			return false
		case b.Score == nil:
			return true
		case *a.Score != *b.Score:
			return *a.Score > *b.Score
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
	return matched, nil
}

func (f *fakeDB) MarkAccepted(_ context.Context, id uuid.UUID) (bool, error) {
	for _, suggestion := range f.suggestions {
		if suggestion.ID == id && !suggestion.IsDeleted {
			if suggestion.Accepted {
				return false, nil
			}
			suggestion.Accepted = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDB) SoftDeleteBySession(_ context.Context, sessionID uuid.UUID) error {
	now := f.now()
	for _, suggestion := range f.suggestions {
		if suggestion.SessionID == sessionID && !suggestion.IsDeleted {
			suggestion.IsDeleted = true
			suggestion.DeletedAt = &now
		}
	}
	return nil
}

func (f *fakeDB) CreateTemplate(_ context.Context, template *pgdb.Template) error {
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	template.CreatedAt = f.now()
	template.UpdatedAt = template.CreatedAt
	stored := *template
	f.templates[template.ID] = &stored
	return nil
}

func (f *fakeDB) GetTemplate(_ context.Context, id uuid.UUID) (*pgdb.Template, error) {
	template, ok := f.templates[id]
	if !ok || template.IsDeleted {
		return nil, nil
	}
	copied := *template
	return &copied, nil
}

func (f *fakeDB) UpdateTemplate(_ context.Context, template *pgdb.Template) error {
	template.UpdatedAt = f.now()
	stored := *template
	f.templates[template.ID] = &stored
	return nil
}

func (f *fakeDB) ListTemplates(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]pgdb.Template, int64, error) {
	var matched []pgdb.Template
	for _, template := range f.templates {
		if !template.IsDeleted && template.OwnerID == ownerID {
			matched = append(matched, *template)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset > 0 && offset < len(matched) {
		matched = matched[offset:]
	} else if offset >= len(matched) {
		matched = nil
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeDB) SoftDeleteTemplate(_ context.Context, id uuid.UUID) error {
	if template, ok := f.templates[id]; ok {
		now := f.now()
		template.IsDeleted = true
		template.DeletedAt = &now
	}
	return nil
}

func (f *fakeDB) GetPost(_ context.Context, principalID, id uuid.UUID) (*pgdb.Post, error) {
	post, ok := f.posts[id]
	if !ok || post.IsDeleted || post.OwnerID != principalID {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (f *fakeDB) CreatePost(_ context.Context, principalID uuid.UUID, draft domain.PostDraft) (*pgdb.Post, error) {
	post := &pgdb.Post{
		ID:          uuid.New(),
		OwnerID:     principalID,
		Title:       draft.Title,
		BaseContent: draft.BaseContent,
		Tags:        draft.Tags,
		CreatedAt:   f.now(),
	}
	f.posts[post.ID] = post
	copied := *post
	return &copied, nil
}

func (f *fakeDB) CreateVariant(_ context.Context, _ uuid.UUID, draft domain.VariantDraft) (*pgdb.Variant, error) {
	variant := &pgdb.Variant{
		ID:        uuid.New(),
		PostID:    draft.PostID,
		ChannelID: draft.ChannelID,
		Content:   draft.Content,
		Tone:      draft.Tone,
		Media:     draft.Media,
		Source:    draft.Source,
		CreatedAt: f.now(),
	}
	f.variants = append(f.variants, variant)
	copied := *variant
	return &copied, nil
}

func (f *fakeDB) GetChannel(_ context.Context, id uuid.UUID) (*pgdb.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	channel, ok := f.channels[id]
	if !ok || channel.IsDeleted {
		return nil, nil
	}
	copied := *channel
	return &copied, nil
}

func (f *fakeDB) Record(_ context.Context, event *pgdb.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeDB) eventNames() []string {
	names := make([]string, 0, len(f.events))
	for _, event := range f.events {
		names = append(names, event.EventName)
	}
	return names
}

// Interface adapters: fakeDB's suggestion/template method names differ from
// the store interfaces where Go method sets would otherwise collide.
type fakeSuggestionStore struct{ *fakeDB }

func (f fakeSuggestionStore) Get(ctx context.Context, id uuid.UUID) (*pgdb.Suggestion, error) {
	return f.GetSuggestion(ctx, id)
}

type fakeTemplateStore struct{ *fakeDB }

func (f fakeTemplateStore) Create(ctx context.Context, template *pgdb.Template) error {
	return f.CreateTemplate(ctx, template)
}

func (f fakeTemplateStore) Get(ctx context.Context, id uuid.UUID) (*pgdb.Template, error) {
	return f.GetTemplate(ctx, id)
}

func (f fakeTemplateStore) Update(ctx context.Context, template *pgdb.Template) error {
	return f.UpdateTemplate(ctx, template)
}

func (f fakeTemplateStore) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]pgdb.Template, int64, error) {
	return f.ListTemplates(ctx, ownerID, limit, offset)
}

func (f fakeTemplateStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return f.SoftDeleteTemplate(ctx, id)
}

// failAfter delegates to an inner generator for n calls, then errors.
type failAfter struct {
	inner ai.Generator
	n     int
	calls int
}

func (g *failAfter) GenerateContent(ctx context.Context, req ai.Request) ([]ai.Candidate, error) {
	g.calls++
	if g.calls > g.n {
		return nil, errors.New("model unavailable")
	}
	return g.inner.GenerateContent(ctx, req)
}
