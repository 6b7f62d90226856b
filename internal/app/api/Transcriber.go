package api

import "context"

// Transcriber converts one finished audio asset to text. The language hint is
// a locale code such as "tr-TR"; providers fall back to their default when
// they cannot honor it.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath, language string) (string, error)
}
