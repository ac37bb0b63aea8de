// Package ai defines the pluggable content-generation capability the
// orchestrator fans out to. Implementations live in subpackages; the
// orchestrator only ever sees the Generator interface.
package ai

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/luxaris/luxaris/internal/domain"
)

// DefaultMaxContentLength applies when neither the channel nor the request
// constraints specify a max_length.
const DefaultMaxContentLength = 280

// Request is one generation call for one channel.
type Request struct {
	Prompt             string
	ChannelID          uuid.UUID
	ChannelConstraints *domain.ChannelConstraints
	TemplateBody       string
	Constraints        *domain.GenerationConstraints
	Count              int
}

// Candidate is one ranked piece of generated content. Score is
// adapter-supplied and may be absent; higher means better.
type Candidate struct {
	Content string
	Score   *float64
}

// Generator produces exactly Count candidates for a request. Implementations
// may ignore TemplateBody and Constraints but must honor the effective
// max-length limit.
type Generator interface {
	GenerateContent(ctx context.Context, req Request) ([]Candidate, error)
}

// EffectiveMaxLength resolves the content length limit for a request:
// channel constraints win, then request constraints, then the default.
func EffectiveMaxLength(req Request) int {
	if req.ChannelConstraints != nil && req.ChannelConstraints.MaxLength > 0 {
		return req.ChannelConstraints.MaxLength
	}
	if req.Constraints != nil && req.Constraints.MaxLength > 0 {
		return req.Constraints.MaxLength
	}
	return DefaultMaxContentLength
}

// Truncate enforces a max length on generated content, marking the cut with
// an ellipsis. Limits are in characters, not bytes, so multi-byte content is
// cut on rune boundaries.
func Truncate(content string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(content) <= maxLength {
		return content
	}
	cut := maxLength - 3
	if cut < 0 {
		cut = 0
	}
	runes := []rune(content)
	return string(runes[:cut]) + "..."
}
