package llm

import (
	"context"
	"net/http"
)

const (
	claudeEndpoint     = "https://api.anthropic.com/v1/messages"
	anthropicVersion   = "2023-06-01"
	DefaultClaudeModel = "claude-sonnet-4-20250514"
)

// Claude talks to the Anthropic Messages API.
type Claude struct {
	apiKey   string
	client   *http.Client
	model    string
	endpoint string
}

type claudeRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error apiErrorBody `json:"error"`
}

func NewClaude(apiKey string) *Claude {
	return NewClaudeWithModel(apiKey, DefaultClaudeModel)
}

func NewClaudeWithModel(apiKey, model string) *Claude {
	return &Claude{apiKey: apiKey, client: newHTTPClient(), model: model, endpoint: claudeEndpoint}
}

// Chat returns the text blocks of the reply joined together. A reply with no
// content is an empty string.
func (c *Claude) Chat(ctx context.Context, prompt string) (string, error) {
	header := http.Header{}
	header.Set("x-api-key", c.apiKey)
	header.Set("anthropic-version", anthropicVersion)

	var resp claudeResponse
	err := postJSON(ctx, c.client, "Claude", c.endpoint, header, claudeRequest{
		Model:     c.model,
		Messages:  userMessage(prompt),
		MaxTokens: defaultMaxTokens,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", &APIError{Provider: "Claude", Message: resp.Error.Message}
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "" || block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}

func (c *Claude) GetModel() string {
	return c.model
}
