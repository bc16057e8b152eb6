package llm

import (
	"context"
	"errors"

	genai "google.golang.org/genai"
)

var ErrMissingAPIKey = errors.New("api key is required")

// LLM sends a single prompt and returns the raw text reply.
type LLM interface {
	Chat(ctx context.Context, prompt string) (string, error)
	GetModel() string
}

// JSONChatter is implemented by providers that can constrain their reply to a
// JSON schema natively instead of relying on instructions in the prompt.
type JSONChatter interface {
	ChatJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}
