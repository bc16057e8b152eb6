package llm

import (
	"context"
	"net/http"
)

const (
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel = "gpt-4o"
)

type OpenAI struct {
	apiKey   string
	client   *http.Client
	model    string
	endpoint string
}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error apiErrorBody `json:"error"`
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithModel(apiKey, DefaultOpenAIModel)
}

func NewOpenAIWithModel(apiKey, model string) *OpenAI {
	return &OpenAI{apiKey: apiKey, client: newHTTPClient(), model: model, endpoint: openAIEndpoint}
}

func (o *OpenAI) Chat(ctx context.Context, prompt string) (string, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+o.apiKey)

	var resp openAIResponse
	err := postJSON(ctx, o.client, "OpenAI", o.endpoint, header, openAIRequest{
		Model:     o.model,
		Messages:  userMessage(prompt),
		MaxTokens: defaultMaxTokens,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", &APIError{Provider: "OpenAI", Message: resp.Error.Message}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// GetModel returns the model being used by this OpenAI client
func (o *OpenAI) GetModel() string {
	return o.model
}
