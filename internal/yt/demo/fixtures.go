package demo

import (
	"time"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

var demoChannel = yt.Channel{
	ID:              "UCgopherTV0000000000demo",
	Title:           "Gopher Academy",
	UploadsPlaylist: "UUgopherTV0000000000demo",
	SubscriberCount: 412000,
	VideoCount:      186,
	ViewCount:       38700000,
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 0, 0, 0, time.UTC)
}

func demoVideos() []yt.Video {
	return []yt.Video{
		{
			ID:          "gQk3fXp9aZ0",
			Title:       "Goroutines in 100 Seconds",
			Description: "A quick tour of goroutines and the Go scheduler...",
			PublishedAt: day(2025, 11, 3),
			Views:       912000, Likes: 31000, Comments: 1200,
			Privacy: "public", Duration: "PT1M52S", CategoryID: "28",
			Tags: []string{"go", "golang", "concurrency", "100seconds"},
		},
		{
			ID:          "Ch4nN3ls7xQ",
			Title:       "Channels Explained Without the Jargon",
			Description: "Buffered, unbuffered and nil channels, and when each one blocks. We build a worker pool from scratch and look at select statements, timeouts and cancellation with context.",
			PublishedAt: day(2025, 9, 18),
			Views:       640000, Likes: 22500, Comments: 870,
			Privacy: "public", Duration: "PT9M41S", CategoryID: "28",
			Tags: []string{"go", "channels", "concurrency", "tutorial", "select"},
		},
		{
			ID:          "GenR1csW4vE",
			Title:       "Generics",
			Description: "",
			PublishedAt: day(2025, 6, 2),
			Views:       455000, Likes: 14800, Comments: 640,
			Privacy: "public", Duration: "PT12M5S", CategoryID: "28",
			Tags: []string{},
		},
		{
			ID:          "pr0F1l1ngGo",
			Title:       "Profiling Go Services with pprof: CPU, Heap, Goroutines and Blocking Profiles in Production",
			Description: "Everything you need to find the hot path in a Go service...",
			PublishedAt: day(2025, 3, 27),
			Views:       288000, Likes: 9900, Comments: 310,
			Privacy: "public", Duration: "PT18M20S", CategoryID: "28",
			Tags: []string{"go", "pprof", "performance"},
		},
		{
			ID:          "err0rsW4y1s",
			Title:       "Errors Are Values: Wrapping and Inspecting",
			Description: "How errors.Is, errors.As and %w fit together, plus sentinel errors versus typed errors and how to design an error taxonomy for a library that other teams will depend on for years to come.",
			PublishedAt: day(2024, 12, 9),
			Views:       1340000, Likes: 47000, Comments: 2100,
			Privacy: "public", Duration: "PT7M33S", CategoryID: "28",
			Tags: []string{"go", "errors", "golang", "best practices", "tutorial", "wrapping"},
		},
		{
			ID:          "unl1st3dDr4",
			Title:       "Draft: Fuzzing the Standard Library",
			Description: "Work in progress.",
			PublishedAt: day(2026, 1, 14),
			Views:       120, Likes: 4, Comments: 0,
			Privacy: "unlisted", Duration: "PT3M2S", CategoryID: "28",
			Tags: []string{"go", "fuzzing"},
		},
	}
}

type demoComment struct {
	yt.Comment
	status yt.ModerationStatus
	age    time.Duration
}

func demoComments() []demoComment {
	return []demoComment{
		{Comment: yt.Comment{ID: "cmt-001", VideoID: "gQk3fXp9aZ0", Author: "NilPointer", Text: "Best explanation of the scheduler I have seen, thank you!", Likes: 1542, Replies: 12}, age: 2 * time.Hour},
		{Comment: yt.Comment{ID: "cmt-002", VideoID: "gQk3fXp9aZ0", Author: "DeferredDev", Text: "Great pacing, subscribed.", Likes: 856, Replies: 3}, age: 5 * time.Hour},
		{Comment: yt.Comment{ID: "cmt-003", VideoID: "Ch4nN3ls7xQ", Author: "SelectCase", Text: "The audio is kind of bad in the second half", Likes: 41, Replies: 2}, age: 8 * time.Hour},
		{Comment: yt.Comment{ID: "cmt-004", VideoID: "err0rsW4y1s", Author: "WrapItUp", Text: "Finally understand errors.As after ten other tutorials", Likes: 634}, age: 26 * time.Hour},
		{Comment: yt.Comment{ID: "cmt-005", VideoID: "GenR1csW4vE", Author: "TypeParam", Text: "This was confusing and the example is wrong", Likes: 12, Replies: 1}, age: 30 * time.Hour},
		{Comment: yt.Comment{ID: "cmt-006", VideoID: "pr0F1l1ngGo", Author: "FlameGraph", Text: "How do you capture a block profile in tests?", Likes: 87, Replies: 4}, age: 50 * time.Hour},
		{Comment: yt.Comment{ID: "cmt-101", VideoID: "gQk3fXp9aZ0", Author: "cheap-followers", Text: "Get 10k subs fast, check my channel!!!", Likes: 0}, status: yt.StatusHeld, age: time.Hour},
		{Comment: yt.Comment{ID: "cmt-102", VideoID: "err0rsW4y1s", Author: "GoNewbie", Text: "Is this still relevant with Go 1.24? https://go.dev/blog", Likes: 2}, status: yt.StatusHeld, age: 3 * time.Hour},
		{Comment: yt.Comment{ID: "cmt-103", VideoID: "Ch4nN3ls7xQ", Author: "crypto-giveaway", Text: "Free crypto giveaway, click the link in my profile", Likes: 0}, status: yt.StatusLikelySpam, age: 4 * time.Hour},
	}
}

// channelTotals are the baseline values for the last 28 days
var channelTotals = map[string]float64{
	"views":                              1250000,
	"estimatedMinutesWatched":            5400000,
	"averageViewDuration":                261,
	"averageViewPercentage":              48.6,
	"subscribersGained":                  18300,
	"subscribersLost":                    1400,
	"likes":                              42000,
	"dislikes":                           600,
	"comments":                           3100,
	"shares":                             5200,
	"videoThumbnailImpressions":          9800000,
	"videoThumbnailImpressionsClickRate": 7.4,
	"estimatedRevenue":                   5320.5,
	"cpm":                                6.8,
	"playbackBasedCpm":                   7.9,
}

var trafficSources = []string{"YT_SEARCH", "SUGGESTED", "BROWSE", "EXT_URL", "PLAYLIST", "NOTIFICATION"}

var countries = []string{"US", "IN", "DE", "GB", "BR", "CA", "FR", "JP"}

var deviceTypes = []string{"DESKTOP", "MOBILE", "TABLET", "TV"}
