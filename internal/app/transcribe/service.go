package transcribe

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"echonote/internal/app/api"
)

// Result is the single, final outcome of one transcription attempt. OK is
// false when no usable text was produced, whatever the reason; callers treat
// every failure mode the same way and leave the transcript unset.
type Result struct {
	Text string
	OK   bool
}

// Service submits finished assets to a speech-to-text provider. Transcribe
// never blocks the caller and delivers exactly one Result on the returned
// channel.
type Service struct {
	transcriber api.Transcriber
	language    string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewService wraps a provider. language is the default locale hint used when
// a call supplies none; timeout bounds a single attempt (zero means none).
func NewService(transcriber api.Transcriber, language string, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		transcriber: transcriber,
		language:    language,
		timeout:     timeout,
		logger:      logger,
	}
}

// Transcribe starts a single-shot transcription of the asset and returns a
// channel that yields the final result and is then closed. There is no
// retry and no partial delivery; authorization and locale failures collapse
// into an empty result, distinguished only in the logs.
func (s *Service) Transcribe(ctx context.Context, assetPath, languageHint string) <-chan Result {
	ch := make(chan Result, 1)

	language := languageHint
	if language == "" {
		language = s.language
	}

	go func() {
		defer close(ch)

		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		text, err := s.transcriber.Transcript(ctx, assetPath, language)
		if err != nil {
			s.logger.Warn("transcription unavailable",
				zap.String("asset", assetPath),
				zap.String("language", language),
				zap.Error(err))
			ch <- Result{}
			return
		}

		text = strings.TrimSpace(text)
		if text == "" {
			s.logger.Warn("transcription produced no text",
				zap.String("asset", assetPath),
				zap.String("language", language))
			ch <- Result{}
			return
		}

		ch <- Result{Text: text, OK: true}
	}()

	return ch
}
