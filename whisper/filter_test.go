package whisper

import "testing"

func TestIsNoise(t *testing.T) {
	noisy := []string{
		"",
		" ",
		"you",
		"You",
		"Thank you.",
		"THANKS FOR WATCHING!",
		"[BLANK_AUDIO]",
		"[Music]",
		"(silence)",
		"...",
		". . .",
		"Bye.",
	}
	for _, s := range noisy {
		if !IsNoise(s) {
			t.Errorf("IsNoise(%q) = false, want true", s)
		}
	}

	clean := []string{
		"Hello world.",
		"Thank you for the report, I'll take a look.",
		"bye bye now",
		"ok",
	}
	for _, s := range clean {
		if IsNoise(s) {
			t.Errorf("IsNoise(%q) = true, want false", s)
		}
	}
}
