package openai

import (
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI API client for the given key.
func NewClient(apiKey string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return openai.NewClient(apiKey), nil
}
