package core

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/luxaris/luxaris/internal/domain"
	debuglog "github.com/luxaris/luxaris/internal/log"
	"github.com/luxaris/luxaris/internal/plugins/ai"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
)

// Orchestrator turns a prompt into per-channel suggestions: it validates the
// request, creates the tracking session, fans out to the generator one
// channel at a time, and persists everything it gets back.
type Orchestrator struct {
	sessions    SessionStore
	suggestions SuggestionStore
	templates   TemplateStore
	posts       PostService
	channels    ChannelService
	events      EventRecorder
	generator   ai.Generator
}

func NewOrchestrator(
	sessions SessionStore,
	suggestions SuggestionStore,
	templates TemplateStore,
	posts PostService,
	channels ChannelService,
	events EventRecorder,
	generator ai.Generator,
) *Orchestrator {
	return &Orchestrator{
		sessions:    sessions,
		suggestions: suggestions,
		templates:   templates,
		posts:       posts,
		channels:    channels,
		events:      events,
		generator:   generator,
	}
}

// GenerateResult is a session plus its suggestions in call order:
// channel-major, adapter-return order within a channel. Ranked re-sorting is
// the session read path's job, not generation's.
type GenerateResult struct {
	Session     *pgdb.Session     `json:"session"`
	Suggestions []pgdb.Suggestion `json:"suggestions"`
}

// Generate runs the full workflow. Channel fan-out is sequential: channel
// N's generator call starts only after channel N-1's suggestions are
// persisted, which keeps ordering deterministic and error attribution
// simple. On any fan-out error the session is marked aborted and a
// GENERATION_FAILED failure is returned; suggestions persisted for earlier
// channels are intentionally not rolled back.
func (o *Orchestrator) Generate(ctx context.Context, ownerID uuid.UUID, req domain.GenerateRequest) (*GenerateResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.Fail(domain.CodePromptRequired, "prompt is required")
	}
	if len(req.ChannelIDs) == 0 {
		return nil, domain.Fail(domain.CodeChannelIDsRequired, "channel_ids is required")
	}

	var templateBody string
	if req.TemplateID != nil {
		tpl, err := o.templates.Get(ctx, *req.TemplateID)
		if err != nil {
			return nil, errors.Wrap(err, "load template")
		}
		if tpl == nil {
			return nil, domain.Failf(domain.CodeTemplateNotFound, "template %s not found", *req.TemplateID)
		}
		if tpl.OwnerID != ownerID {
			return nil, domain.Fail(domain.CodeTemplateAccessDenied, "template belongs to another principal")
		}
		templateBody = tpl.Body
	}

	if req.PostID != nil {
		post, err := o.posts.GetPost(ctx, ownerID, *req.PostID)
		if err != nil {
			return nil, errors.Wrap(err, "load post")
		}
		if post == nil {
			return nil, domain.Failf(domain.CodePostNotFound, "post %s not found", *req.PostID)
		}
	}

	session := &pgdb.Session{
		OwnerID:    ownerID,
		PostID:     req.PostID,
		TemplateID: req.TemplateID,
		Prompt:     prompt,
		Status:     pgdb.SessionInProgress,
	}
	if err := o.sessions.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "create session")
	}

	o.recordEvent(ctx, &pgdb.Event{
		EventType:   eventTypeGeneration,
		EventName:   eventGenerationStarted,
		EntityType:  entitySession,
		EntityID:    session.ID,
		PrincipalID: ownerID,
		Metadata: map[string]any{
			"channel_count": len(req.ChannelIDs),
			"has_template":  req.TemplateID != nil,
			"has_post":      req.PostID != nil,
		},
	})

	perChannel := req.Constraints.SuggestionsPerChannelOrDefault()
	all := make([]pgdb.Suggestion, 0, perChannel*len(req.ChannelIDs))

	for _, channelID := range req.ChannelIDs {
		channel, err := o.channels.GetChannel(ctx, channelID)
		if err != nil {
			return nil, o.abort(ctx, session, errors.Wrapf(err, "channel %s lookup", channelID))
		}
		if channel == nil {
			return nil, o.abort(ctx, session, errors.Errorf("channel %s not found", channelID))
		}

		candidates, err := o.generator.GenerateContent(ctx, ai.Request{
			Prompt:             prompt,
			ChannelID:          channelID,
			ChannelConstraints: channel.Constraints,
			TemplateBody:       templateBody,
			Constraints:        req.Constraints,
			Count:              perChannel,
		})
		if err != nil {
			return nil, o.abort(ctx, session, errors.Wrapf(err, "generate for channel %s", channelID))
		}

		batch := make([]*pgdb.Suggestion, 0, len(candidates))
		for _, candidate := range candidates {
			batch = append(batch, &pgdb.Suggestion{
				SessionID: session.ID,
				ChannelID: channelID,
				Content:   candidate.Content,
				Score:     candidate.Score,
			})
		}
		if err := o.suggestions.CreateBatch(ctx, batch); err != nil {
			return nil, o.abort(ctx, session, errors.Wrapf(err, "persist suggestions for channel %s", channelID))
		}
		for _, s := range batch {
			all = append(all, *s)
		}
		debuglog.Detailedf("session %s: %d suggestions for channel %s", session.ID, len(batch), channelID)
	}

	if err := o.sessions.SetStatus(ctx, session.ID, pgdb.SessionCompleted); err != nil {
		return nil, o.abort(ctx, session, errors.Wrap(err, "complete session"))
	}
	session.Status = pgdb.SessionCompleted

	o.recordEvent(ctx, &pgdb.Event{
		EventType:   eventTypeGeneration,
		EventName:   eventGenerationCompleted,
		EntityType:  entitySession,
		EntityID:    session.ID,
		PrincipalID: ownerID,
		Metadata:    map[string]any{"suggestion_count": len(all)},
	})

	return &GenerateResult{Session: session, Suggestions: all}, nil
}

// abort transitions the session to its failed terminal state and wraps the
// cause. Already-persisted suggestions stay in place.
func (o *Orchestrator) abort(ctx context.Context, session *pgdb.Session, cause error) error {
	debuglog.Basicf("session %s aborted: %v", session.ID, cause)
	if err := o.sessions.SetStatus(ctx, session.ID, pgdb.SessionAborted); err != nil {
		debuglog.Basicf("session %s: abort status write failed: %v", session.ID, err)
	}
	session.Status = pgdb.SessionAborted

	o.recordEvent(ctx, &pgdb.Event{
		EventType:   eventTypeGeneration,
		EventName:   eventGenerationFailed,
		EntityType:  entitySession,
		EntityID:    session.ID,
		PrincipalID: session.OwnerID,
		Metadata:    map[string]any{"error": cause.Error()},
	})

	return domain.WrapFail(domain.CodeGenerationFailed, cause)
}

func (o *Orchestrator) recordEvent(ctx context.Context, event *pgdb.Event) {
	if o.events == nil {
		return
	}
	if err := o.events.Record(ctx, event); err != nil {
		debuglog.Basicf("event %s for %s %s not recorded: %v", event.EventName, event.EntityType, event.EntityID, err)
	}
}
