package whisper

import "strings"

// Phrases the model reliably produces when fed near-silence or
// background noise. Matched case-insensitively against the trimmed
// output.
var noisePhrases = map[string]bool{
	"you":                     true,
	"thank you.":              true,
	"thanks for watching!":    true,
	"thank you for watching!": true,
	"subscribe":               true,
	"like and subscribe":      true,
	"(silence)":               true,
	"[silence]":               true,
	"[blank_audio]":           true,
	"...":                     true,
	"the end.":                true,
	"bye.":                    true,
}

// IsNoise reports whether a transcription is a known hallucination
// artifact rather than speech. Noisy results are dropped before
// delivery.
func IsNoise(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if len(t) < 2 {
		return true
	}
	if noisePhrases[t] {
		return true
	}
	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		return true
	}
	for _, r := range t {
		if r != '.' && r != ' ' {
			return false
		}
	}
	return true
}
