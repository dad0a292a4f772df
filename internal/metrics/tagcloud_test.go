package metrics

import (
	"testing"
	"time"

	"github.com/timahq/socialdata/internal/source"
)

func TestHashtagCloud(t *testing.T) {
	ts := time.Now()
	items := []source.Item{
		{Timestamp: ts, Hashtags: []string{"#Fun", "#sun"}},
		{Timestamp: ts, Hashtags: []string{"#fun"}},
		{Timestamp: ts, Hashtags: []string{"#travel"}},
	}

	cloud := HashtagCloud(items)

	if len(cloud) != 3 {
		t.Fatalf("HashtagCloud() returned %d entries, want 3", len(cloud))
	}
	// "#Fun"/"#fun" merge on the normalized form and keep first-seen display case
	if cloud[0].Tag != "fun" || cloud[0].Count != 2 || cloud[0].Display != "#Fun" {
		t.Errorf("top entry = %+v, want tag=fun count=2 display=#Fun", cloud[0])
	}
	// equal counts tie-break by tag ascending
	if cloud[1].Tag != "sun" || cloud[2].Tag != "travel" {
		t.Errorf("tail = [%s %s], want [sun travel]", cloud[1].Tag, cloud[2].Tag)
	}
}

func TestMentionCloud(t *testing.T) {
	ts := time.Now()
	items := []source.Item{
		{Timestamp: ts, Mentions: []string{"@alice", "@Bob"}},
		{Timestamp: ts, Mentions: []string{"@bob"}},
	}

	cloud := MentionCloud(items)

	if len(cloud) != 2 {
		t.Fatalf("MentionCloud() returned %d entries, want 2", len(cloud))
	}
	if cloud[0].Tag != "bob" || cloud[0].Count != 2 {
		t.Errorf("top entry = %+v, want tag=bob count=2", cloud[0])
	}
}

func TestCloudsEmptyInput(t *testing.T) {
	if got := HashtagCloud(nil); len(got) != 0 {
		t.Errorf("HashtagCloud(nil) = %v, want empty", got)
	}
	if got := MentionCloud(nil); len(got) != 0 {
		t.Errorf("MentionCloud(nil) = %v, want empty", got)
	}
}
