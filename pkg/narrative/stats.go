package narrative

import (
	"math"
	"sort"
	"strings"
	"time"

	"saga-be/internal/entity"
)

const (
	topGenreCount  = 6
	topAuthorCount = 5
	topRatedCount  = 5
)

var monthNames = [...]string{"", "Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"}

// weekday order used for ties: Monday first
var weekdayOrder = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}

var dayNames = map[time.Weekday]string{
	time.Monday:    "Pazartesi",
	time.Tuesday:   "Salı",
	time.Wednesday: "Çarşamba",
	time.Thursday:  "Perşembe",
	time.Friday:    "Cuma",
	time.Saturday:  "Cumartesi",
	time.Sunday:    "Pazar",
}

// MonthName returns the Turkish month name, "" when out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m]
}

type TopItem struct {
	Title string  `json:"baslik"`
	Kind  string  `json:"tur"`
	Score float64 `json:"puan"`
}

type MonthlyActivity struct {
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`
	Count     int    `json:"count"`
}

// YearlyStats is derived per request and never stored.
type YearlyStats struct {
	TotalCount           int               `json:"totalCount"`
	TypeCounts           map[string]int    `json:"typeCounts"`
	TopGenres            []string          `json:"topGenres"`
	TopAuthors           []string          `json:"topAuthors"`
	TotalMinutes         int               `json:"totalMinutes"`
	TotalPages           int               `json:"totalPages"`
	TopRated             []TopItem         `json:"topRated"`
	AverageRating        float64           `json:"averageRating"`
	TotalRatings         int               `json:"totalRatings"`
	TotalReviews         int               `json:"totalReviews"`
	MostActiveMonth      *string           `json:"mostActiveMonth"`
	MostActiveMonthCount int               `json:"mostActiveMonthCount"`
	FavoriteDay          *string           `json:"favoriteDay"`
	CompletedCount       int               `json:"completedCount"`
	WatchingCount        int               `json:"watchingCount"`
	PlannedCount         int               `json:"plannedCount"`
	MonthlyActivity      []MonthlyActivity `json:"monthlyActivity"`
	// SkippedMetadata counts items whose metadata was partly or wholly unusable.
	SkippedMetadata int `json:"skippedMetadata"`
}

// StatsInput is everything BuildStats reads. Times are bucketed in Location
// (UTC when nil).
type StatsInput struct {
	Library       []*entity.LibraryEntry
	Ratings       []*entity.Rating
	ReviewCount   int
	ActivityTimes []time.Time
	Location      *time.Location
}

func (in StatsInput) Empty() bool {
	return len(in.Library) == 0 && len(in.Ratings) == 0
}

// EmptyStats is the all-zero value returned when there is nothing to count.
func EmptyStats() YearlyStats {
	return YearlyStats{
		TypeCounts:      map[string]int{},
		TopGenres:       []string{},
		TopAuthors:      []string{},
		TopRated:        []TopItem{},
		MonthlyActivity: monthlySeries(map[int]int{}),
	}
}

// BuildStats is pure: same input, same output.
func BuildStats(in StatsInput) YearlyStats {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	stats := EmptyStats()
	stats.TotalCount = len(in.Library)
	stats.TotalRatings = len(in.Ratings)
	stats.TotalReviews = in.ReviewCount

	genres := newCounter()
	authors := newCounter()
	months := map[int]int{}
	days := map[time.Weekday]int{}

	for _, entry := range in.Library {
		switch {
		case entry.Status.IsCompleted():
			stats.CompletedCount++
		case entry.Status == entity.LibraryStatusInProgress:
			stats.WatchingCount++
		case entry.Status.IsPlanned():
			stats.PlannedCount++
		}

		at := entry.UpdatedAt.In(loc)
		months[int(at.Month())]++
		days[at.Weekday()]++

		if entry.Content == nil {
			continue
		}
		stats.TypeCounts[entry.Content.Kind.String()]++

		md, report := ParseMetadata(entry.Content.Metadata)
		if !report.Clean() {
			stats.SkippedMetadata++
		}
		if report.Invalid {
			continue
		}
		for _, g := range md.Genres {
			genres.add(g)
		}
		for _, c := range md.Categories {
			genres.add(c)
		}
		for _, a := range md.Authors {
			authors.add(a)
		}
		if md.Minutes != nil {
			stats.TotalMinutes += *md.Minutes
		}
		if md.Pages != nil {
			stats.TotalPages += *md.Pages
		}
	}

	for _, t := range in.ActivityTimes {
		at := t.In(loc)
		months[int(at.Month())]++
		days[at.Weekday()]++
	}

	stats.TopGenres = genres.top(topGenreCount)
	stats.TopAuthors = authors.top(topAuthorCount)
	stats.TopRated = topRated(in.Ratings, topRatedCount)
	stats.AverageRating = averageScore(in.Ratings)
	stats.MonthlyActivity = monthlySeries(months)

	if m, n := busiestMonth(months); n > 0 {
		name := MonthName(m)
		stats.MostActiveMonth = &name
		stats.MostActiveMonthCount = n
	}
	if d, n := busiestDay(days); n > 0 {
		name := dayNames[d]
		stats.FavoriteDay = &name
	}

	return stats
}

// counter is a case-insensitive frequency table that remembers the first
// spelling and first-seen order of each key.
type counter struct {
	counts map[string]int
	label  map[string]string
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}, label: map[string]string{}}
}

func (c *counter) add(s string) {
	key := strings.ToLower(s)
	if _, ok := c.counts[key]; !ok {
		c.label[key] = s
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// top sorts by count descending, ties by first appearance.
func (c *counter) top(n int) []string {
	keys := append([]string(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = c.label[k]
	}
	return out
}

func topRated(ratings []*entity.Rating, n int) []TopItem {
	rated := make([]*entity.Rating, 0, len(ratings))
	for _, r := range ratings {
		if r.Content != nil {
			rated = append(rated, r)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Score > rated[j].Score
	})
	if len(rated) > n {
		rated = rated[:n]
	}
	out := make([]TopItem, len(rated))
	for i, r := range rated {
		out[i] = TopItem{Title: r.Content.Title, Kind: r.Content.Kind.String(), Score: r.Score}
	}
	return out
}

func averageScore(ratings []*entity.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Score
	}
	return round1(sum / float64(len(ratings)))
}

func monthlySeries(months map[int]int) []MonthlyActivity {
	out := make([]MonthlyActivity, 12)
	for m := 1; m <= 12; m++ {
		out[m-1] = MonthlyActivity{Month: m, MonthName: monthNames[m], Count: months[m]}
	}
	return out
}

// busiestMonth picks the highest count, earliest month on ties.
func busiestMonth(months map[int]int) (int, int) {
	best, bestCount := 0, 0
	for m := 1; m <= 12; m++ {
		if months[m] > bestCount {
			best, bestCount = m, months[m]
		}
	}
	return best, bestCount
}

func busiestDay(days map[time.Weekday]int) (time.Weekday, int) {
	best, bestCount := time.Monday, 0
	for _, d := range weekdayOrder {
		if days[d] > bestCount {
			best, bestCount = d, days[d]
		}
	}
	return best, bestCount
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
