package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/luxaris/luxaris/internal/domain"
	debuglog "github.com/luxaris/luxaris/internal/log"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
)

// Acceptor converts one suggestion into a durable post and channel variant,
// enforcing accept-once.
type Acceptor struct {
	sessions    SessionStore
	suggestions SuggestionStore
	posts       PostService
	variants    VariantService
	events      EventRecorder
}

func NewAcceptor(
	sessions SessionStore,
	suggestions SuggestionStore,
	posts PostService,
	variants VariantService,
	events EventRecorder,
) *Acceptor {
	return &Acceptor{
		sessions:    sessions,
		suggestions: suggestions,
		posts:       posts,
		variants:    variants,
		events:      events,
	}
}

type AcceptResult struct {
	Suggestion *pgdb.Suggestion `json:"suggestion"`
	Post       *pgdb.Post       `json:"post"`
	Variant    *pgdb.Variant    `json:"variant"`
}

const defaultPostTitle = "Generated Post"

// Accept marks the suggestion accepted, then materializes it: the session's
// post is reused when present, otherwise a new post is created from the
// options. Accept-once is enforced with a conditional update, so two
// concurrent accepts of the same suggestion cannot both win.
func (a *Acceptor) Accept(ctx context.Context, ownerID, suggestionID uuid.UUID, opts domain.AcceptOptions) (*AcceptResult, error) {
	suggestion, err := a.suggestions.Get(ctx, suggestionID)
	if err != nil {
		return nil, errors.Wrap(err, "load suggestion")
	}
	if suggestion == nil {
		return nil, domain.Failf(domain.CodeSuggestionNotFound, "suggestion %s not found", suggestionID)
	}

	session, err := a.sessions.Get(ctx, suggestion.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	if session == nil {
		return nil, domain.Failf(domain.CodeSuggestionNotFound, "suggestion %s has no session", suggestionID)
	}
	if session.OwnerID != ownerID {
		return nil, domain.Fail(domain.CodeSuggestionAccessDenied, "suggestion belongs to another principal")
	}
	if suggestion.Accepted {
		return nil, domain.Fail(domain.CodeSuggestionAlreadyAccepted, "suggestion has already been accepted")
	}
	if err = normalizeMedia(opts.Media); err != nil {
		return nil, err
	}

	won, err := a.suggestions.MarkAccepted(ctx, suggestionID)
	if err != nil {
		return nil, errors.Wrap(err, "mark accepted")
	}
	if !won {
		// A concurrent accept got there first.
		return nil, domain.Fail(domain.CodeSuggestionAlreadyAccepted, "suggestion has already been accepted")
	}
	suggestion.Accepted = true

	var post *pgdb.Post
	createdNewPost := false
	if session.PostID != nil {
		if post, err = a.posts.GetPost(ctx, ownerID, *session.PostID); err != nil {
			return nil, errors.Wrap(err, "load session post")
		}
		if post == nil {
			return nil, domain.Failf(domain.CodePostNotFound, "post %s not found", *session.PostID)
		}
	} else {
		title := opts.Title
		if title == "" {
			title = defaultPostTitle
		}
		tags := opts.Tags
		if tags == nil {
			tags = []string{}
		}
		if post, err = a.posts.CreatePost(ctx, ownerID, domain.PostDraft{
			Title:       title,
			BaseContent: suggestion.Content,
			Tags:        tags,
		}); err != nil {
			return nil, errors.Wrap(err, "create post")
		}
		createdNewPost = true
	}

	variant, err := a.variants.CreateVariant(ctx, ownerID, domain.VariantDraft{
		PostID:    post.ID,
		ChannelID: suggestion.ChannelID,
		Content:   suggestion.Content,
		Tone:      opts.Tone,
		Media:     opts.Media,
		Source:    "generated",
	})
	if err != nil {
		return nil, errors.Wrap(err, "create variant")
	}

	if a.events != nil {
		event := &pgdb.Event{
			EventType:   eventTypeGeneration,
			EventName:   eventSuggestionAccepted,
			EntityType:  entitySuggestion,
			EntityID:    suggestion.ID,
			PrincipalID: ownerID,
			Metadata: map[string]any{
				"session_id":       session.ID.String(),
				"post_id":          post.ID.String(),
				"variant_id":       variant.ID.String(),
				"created_new_post": createdNewPost,
			},
		}
		// Audit failures never fail the accept.
		if recErr := a.events.Record(ctx, event); recErr != nil {
			debuglog.Basicf("event %s for suggestion %s not recorded: %v", event.EventName, suggestion.ID, recErr)
		}
	}

	return &AcceptResult{Suggestion: suggestion, Post: post, Variant: variant}, nil
}

// normalizeMedia stamps each attachment with its content-derived id and,
// where it can be determined, its media type, so repeated accepts of the
// same media reference the same item. Runs before any state changes: an
// attachment with neither content nor url rejects the whole accept.
func normalizeMedia(media []domain.Attachment) error {
	for i := range media {
		att := &media[i]
		if _, err := att.GetId(); err != nil {
			return errors.Wrapf(err, "media attachment %d", i)
		}
		if att.Type != nil {
			continue
		}
		resolved, err := att.ResolveType()
		if err != nil {
			debuglog.Detailedf("media attachment %d: type not resolved: %v", i, err)
			continue
		}
		att.Type = &resolved
	}
	return nil
}
