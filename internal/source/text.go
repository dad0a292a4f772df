package source

import (
	"regexp"
	"strings"
)

var (
	hashtagPattern = regexp.MustCompile(`#[A-Za-z0-9_]+`)
	mentionPattern = regexp.MustCompile(`@[A-Za-z0-9_.]+`)
)

// ExtractHashtags returns the hashtags found in text, marker included,
// in first-seen order with case preserved. Duplicates are dropped.
func ExtractHashtags(text string) []string {
	return extract(hashtagPattern, text, false)
}

// ExtractMentions returns the @-mentions found in text, marker included,
// in first-seen order with case preserved. A trailing dot is treated as
// sentence punctuation, not part of the handle.
func ExtractMentions(text string) []string {
	return extract(mentionPattern, text, true)
}

func extract(re *regexp.Regexp, text string, trimDots bool) []string {
	matches := re.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if trimDots {
			m = strings.TrimRight(m, ".")
		}
		if len(m) < 2 {
			// marker with nothing behind it
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
