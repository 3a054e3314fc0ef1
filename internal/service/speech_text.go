package service

import (
	"regexp"

	"kerygma-studio/internal/domain"
)

var markupTagPattern = regexp.MustCompile(`<[^>]*>?`)

// StripMarkup removes formatting tags from a markup string, leaving plain
// text for synthesis and clipboard export.
func StripMarkup(s string) string {
	return markupTagPattern.ReplaceAllString(s, "")
}

// TruncateForSpeech hard-cuts the text at the character boundary to respect
// the upstream request-size limit. Not word-aware.
func TruncateForSpeech(s string, max int) string {
	if max <= 0 {
		max = domain.SpeechMaxChars
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// PrepareSpeechText strips markup and truncates the result for synthesis.
func PrepareSpeechText(s string, max int) string {
	return TruncateForSpeech(StripMarkup(s), max)
}
