package metrics

import (
	"sort"
	"strings"

	"github.com/timahq/socialdata/internal/source"
)

// TagCount is one entry of a tag cloud. Display keeps the first-seen
// casing and marker for rendering; Tag is the lower-cased, marker-free
// form the frequency is counted on.
type TagCount struct {
	Display string `json:"display"`
	Tag     string `json:"tag"`
	Count   int    `json:"count"`
}

// HashtagCloud folds all hashtags across items into one frequency-counted
// bag, sorted by descending count and then by tag.
func HashtagCloud(items []source.Item) []TagCount {
	return cloud(items, func(it source.Item) []string { return it.Hashtags })
}

// MentionCloud folds all @-mentions across items into one
// frequency-counted bag, sorted by descending count and then by tag.
func MentionCloud(items []source.Item) []TagCount {
	return cloud(items, func(it source.Item) []string { return it.Mentions })
}

func cloud(items []source.Item, tags func(source.Item) []string) []TagCount {
	counts := make(map[string]*TagCount)
	for _, it := range items {
		for _, raw := range tags(it) {
			key := normalizeTag(raw)
			if key == "" {
				continue
			}
			tc, ok := counts[key]
			if !ok {
				tc = &TagCount{Display: raw, Tag: key}
				counts[key] = tc
			}
			tc.Count++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for _, tc := range counts {
		out = append(out, *tc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func normalizeTag(raw string) string {
	return strings.ToLower(strings.TrimLeft(raw, "#@"))
}
