// Package mock provides the deterministic reference Generator used in
// development and tests. It never calls an external model.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxaris/luxaris/internal/plugins/ai"
)

type Client struct {
	mu        sync.Mutex
	callCount int
}

func NewClient() *Client {
	return &Client{}
}

// GenerateContent returns req.Count candidates with strictly descending
// scores (100, 90, 80, ...). Content derives from the template body when one
// is present, otherwise from the prompt and channel.
func (c *Client) GenerateContent(_ context.Context, req ai.Request) ([]ai.Candidate, error) {
	c.mu.Lock()
	c.callCount++
	c.mu.Unlock()

	maxLength := ai.EffectiveMaxLength(req)
	candidates := make([]ai.Candidate, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		var content string
		if req.TemplateBody != "" {
			content = fmt.Sprintf("%s [Generated variant %d]", req.TemplateBody, i+1)
		} else {
			content = fmt.Sprintf("%s - Generated content variant %d for channel %s", req.Prompt, i+1, req.ChannelID)
		}
		score := float64(100 - i*10)
		candidates = append(candidates, ai.Candidate{
			Content: ai.Truncate(content, maxLength),
			Score:   &score,
		})
	}
	return candidates, nil
}

// CallCount reports how many times GenerateContent has been invoked.
func (c *Client) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callCount
}

// Reset clears the call counter.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callCount = 0
}
