// Package openai implements the Generator capability over the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"

	debuglog "github.com/luxaris/luxaris/internal/log"
	"github.com/luxaris/luxaris/internal/plugins/ai"
)

type Client struct {
	model string
	opts  []option.RequestOption
}

func NewClient(apiKey, baseURL, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if model == "" {
		return nil, errors.New("openai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{model: model, opts: opts}, nil
}

// GenerateContent asks the model for one candidate at a time so each gets an
// independent completion. The API returns no rank, so scores are assigned
// descending in return order to match the mock's ladder.
func (c *Client) GenerateContent(ctx context.Context, req ai.Request) ([]ai.Candidate, error) {
	client := goopenai.NewClient(c.opts...)
	maxLength := ai.EffectiveMaxLength(req)

	candidates := make([]ai.Candidate, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		msgs := []goopenai.ChatCompletionMessageParamUnion{
			goopenai.SystemMessage(systemPrompt(req, maxLength)),
			goopenai.UserMessage(userPrompt(req, i)),
		}
		resp, err := client.Chat.Completions.New(ctx, goopenai.ChatCompletionNewParams{
			Model:    goopenai.ChatModel(c.model),
			Messages: msgs,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "openai completion %d/%d for channel %s", i+1, req.Count, req.ChannelID)
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("openai: empty choices")
		}
		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		debuglog.Tracef("openai candidate %d for channel %s: %d chars", i+1, req.ChannelID, len(content))
		score := float64(100 - i*10)
		candidates = append(candidates, ai.Candidate{
			Content: ai.Truncate(content, maxLength),
			Score:   &score,
		})
	}
	return candidates, nil
}

func systemPrompt(req ai.Request, maxLength int) string {
	var sb strings.Builder
	sb.WriteString("You write one social media post per request. Reply with the post text only.\n")
	fmt.Fprintf(&sb, "Hard limit: %d characters.\n", maxLength)
	if req.Constraints != nil && len(req.Constraints.Tone) > 0 {
		fmt.Fprintf(&sb, "Tone: %s.\n", strings.Join(req.Constraints.Tone, ", "))
	}
	return sb.String()
}

func userPrompt(req ai.Request, variant int) string {
	var sb strings.Builder
	if req.TemplateBody != "" {
		fmt.Fprintf(&sb, "Base the post on this template:\n%s\n\n", req.TemplateBody)
	}
	fmt.Fprintf(&sb, "Prompt: %s\n", req.Prompt)
	if variant > 0 {
		fmt.Fprintf(&sb, "Write a distinct variation (#%d), not a rewording of the obvious take.\n", variant+1)
	}
	return sb.String()
}
