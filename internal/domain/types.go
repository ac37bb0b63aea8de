package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DefaultSuggestionsPerChannel is used when a generate request does not say
// how many candidates it wants per channel.
const DefaultSuggestionsPerChannel = 3

// GenerationConstraints is the structured constraints blob attached to
// generate requests and templates. Recognized keys are typed; everything else
// round-trips through Extra.
type GenerationConstraints struct {
	MaxLength             int            `json:"max_length,omitempty"`
	Tone                  []string       `json:"tone,omitempty"`
	SuggestionsPerChannel int            `json:"suggestions_per_channel,omitempty"`
	Extra                 map[string]any `json:"-"`
}

func (c *GenerationConstraints) UnmarshalJSON(data []byte) error {
	type alias GenerationConstraints
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "max_length")
	delete(raw, "tone")
	delete(raw, "suggestions_per_channel")
	*c = GenerationConstraints(a)
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

func (c GenerationConstraints) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	for k, v := range c.Extra {
		out[k] = v
	}
	if c.MaxLength > 0 {
		out["max_length"] = c.MaxLength
	}
	if len(c.Tone) > 0 {
		out["tone"] = c.Tone
	}
	if c.SuggestionsPerChannel > 0 {
		out["suggestions_per_channel"] = c.SuggestionsPerChannel
	}
	return json.Marshal(out)
}

// SuggestionsPerChannelOrDefault applies the default candidate count.
func (c *GenerationConstraints) SuggestionsPerChannelOrDefault() int {
	if c != nil && c.SuggestionsPerChannel > 0 {
		return c.SuggestionsPerChannel
	}
	return DefaultSuggestionsPerChannel
}

// ChannelConstraints is the constraint blob a channel exposes to generation.
type ChannelConstraints struct {
	MaxLength int            `json:"max_length,omitempty"`
	Extra     map[string]any `json:"-"`
}

func (c *ChannelConstraints) UnmarshalJSON(data []byte) error {
	type alias ChannelConstraints
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "max_length")
	*c = ChannelConstraints(a)
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

func (c ChannelConstraints) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	for k, v := range c.Extra {
		out[k] = v
	}
	if c.MaxLength > 0 {
		out["max_length"] = c.MaxLength
	}
	return json.Marshal(out)
}

// GenerateRequest is the validated input to the orchestrator.
type GenerateRequest struct {
	Prompt      string                 `json:"prompt"`
	TemplateID  *uuid.UUID             `json:"template_id,omitempty"`
	PostID      *uuid.UUID             `json:"post_id,omitempty"`
	ChannelIDs  []uuid.UUID            `json:"channel_ids"`
	Constraints *GenerationConstraints `json:"constraints,omitempty"`
}

// AcceptOptions carries the optional fields used when accepting a suggestion
// creates a new post or decorates the variant.
type AcceptOptions struct {
	Title string       `json:"title,omitempty"`
	Tags  []string     `json:"tags,omitempty"`
	Tone  string       `json:"tone,omitempty"`
	Media []Attachment `json:"media,omitempty"`
}

// PostDraft is the payload handed to the post collaborator when accepting a
// suggestion without an existing post.
type PostDraft struct {
	Title       string   `json:"title"`
	BaseContent string   `json:"base_content"`
	Tags        []string `json:"tags"`
}

// VariantDraft is the payload handed to the variant collaborator.
type VariantDraft struct {
	PostID    uuid.UUID    `json:"post_id"`
	ChannelID uuid.UUID    `json:"channel_id"`
	Content   string       `json:"content"`
	Tone      string       `json:"tone,omitempty"`
	Media     []Attachment `json:"media,omitempty"`
	Source    string       `json:"source"`
}

// SessionFilter scopes session listing.
type SessionFilter struct {
	Status     string
	PostID     *uuid.UUID
	TemplateID *uuid.UUID
	Limit      int
	Offset     int
}

// PageMeta is returned alongside paginated listings.
type PageMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
