package metrics

import (
	"sort"
	"time"

	"github.com/timahq/socialdata/internal/source"
)

// RecentYearWindow bounds BucketByYear to the most recent calendar years.
const RecentYearWindow = 5

// YearBucket sums one calendar year's counters.
type YearBucket struct {
	Year     int   `json:"year"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Views    int64 `json:"views"`
}

// MonthBucket sums one calendar month's counters within a year.
type MonthBucket struct {
	Year     int        `json:"year"`
	Month    time.Month `json:"month"`
	Likes    int64      `json:"likes"`
	Comments int64      `json:"comments"`
	Views    int64      `json:"views"`
}

// WeekdayHourBucket sums counters for one weekday/hour-of-day cell of the
// activity heatmap.
type WeekdayHourBucket struct {
	Weekday  time.Weekday `json:"weekday"`
	Hour     int          `json:"hour"`
	Likes    int64        `json:"likes"`
	Comments int64        `json:"comments"`
	Views    int64        `json:"views"`
}

// BucketByYear groups items by calendar year, restricted to the
// RecentYearWindow most recent years relative to now. Years with no items
// are omitted. Buckets are sorted ascending by year.
//
// Bucketing reads each item's timestamp as reported upstream; no timezone
// conversion is applied anywhere in the pipeline.
func BucketByYear(items []source.Item, now time.Time) []YearBucket {
	minYear := now.Year() - RecentYearWindow + 1

	byYear := make(map[int]*YearBucket)
	for _, it := range items {
		year := it.Timestamp.Year()
		if year < minYear || year > now.Year() {
			continue
		}
		b, ok := byYear[year]
		if !ok {
			b = &YearBucket{Year: year}
			byYear[year] = b
		}
		b.Likes += it.Likes
		b.Comments += it.Comments
		b.Views += it.ViewCount()
	}

	out := make([]YearBucket, 0, len(byYear))
	for _, b := range byYear {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// BucketByYearMonth groups the given year's items by calendar month.
// Months with no items are omitted. Buckets are sorted ascending by month.
func BucketByYearMonth(items []source.Item, year int) []MonthBucket {
	byMonth := make(map[time.Month]*MonthBucket)
	for _, it := range items {
		if it.Timestamp.Year() != year {
			continue
		}
		month := it.Timestamp.Month()
		b, ok := byMonth[month]
		if !ok {
			b = &MonthBucket{Year: year, Month: month}
			byMonth[month] = b
		}
		b.Likes += it.Likes
		b.Comments += it.Comments
		b.Views += it.ViewCount()
	}

	out := make([]MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// BucketByWeekdayHour groups items by weekday and hour of day for the
// activity heatmap. Buckets are sorted Monday-first by weekday, then by
// hour; cells with no items are omitted.
func BucketByWeekdayHour(items []source.Item) []WeekdayHourBucket {
	type cell struct {
		weekday time.Weekday
		hour    int
	}

	byCell := make(map[cell]*WeekdayHourBucket)
	for _, it := range items {
		c := cell{weekday: it.Timestamp.Weekday(), hour: it.Timestamp.Hour()}
		b, ok := byCell[c]
		if !ok {
			b = &WeekdayHourBucket{Weekday: c.weekday, Hour: c.hour}
			byCell[c] = b
		}
		b.Likes += it.Likes
		b.Comments += it.Comments
		b.Views += it.ViewCount()
	}

	out := make([]WeekdayHourBucket, 0, len(byCell))
	for _, b := range byCell {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		wi, wj := mondayFirst(out[i].Weekday), mondayFirst(out[j].Weekday)
		if wi != wj {
			return wi < wj
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// mondayFirst maps time.Weekday (Sunday=0) onto the ISO Monday-first
// ordering used by the heatmap regardless of locale.
func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}
