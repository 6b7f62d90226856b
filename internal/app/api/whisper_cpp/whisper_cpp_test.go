package whisper_cpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageArg(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"tr-TR", "tr"},
		{"en_US", "en"},
		{"", "auto"},
		{"  ", "auto"},
		{"JA", "ja"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, languageArg(tt.locale), tt.locale)
	}
}

func TestNewLocalTranscriber(t *testing.T) {
	lt := NewLocalTranscriber("/opt/whisper/main", "/opt/whisper/model.bin")
	assert.Equal(t, "/opt/whisper/main", lt.binaryPath)
	assert.Equal(t, "/opt/whisper/model.bin", lt.modelPath)
}
