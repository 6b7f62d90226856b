package whisper

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client) *RemoteTranscriber {
	return &RemoteTranscriber{client: client}
}

// Transcript uses the OpenAI API for remote transcription. The locale hint is
// reduced to its ISO 639-1 language part, which is what the API accepts; an
// empty hint lets the API auto-detect.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath, language string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: inputFilePath,
		Language: localeToLanguage(language),
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}

	return resp.Text, nil
}

// localeToLanguage maps "tr-TR" style locale codes to "tr".
func localeToLanguage(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}
