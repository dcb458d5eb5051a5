// Package registry holds the catalog of YouTube Analytics API metrics and
// dimensions. It is the single source of truth for validating queries and for
// the discovery commands.
//
// Reference: https://developers.google.com/youtube/analytics/metrics
// and https://developers.google.com/youtube/analytics/dimensions
package registry

import "sort"

// Metric describes a quantitative measure exposed by the Analytics API.
type Metric struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
	Core        bool   `json:"core"`
	Monetary    bool   `json:"monetary"` // requires yt-analytics-monetary.readonly
}

// Dimension describes a grouping axis for an analytics query.
type Dimension struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
	FilterOnly  bool   `json:"filter_only"` // usable only in filters
}

var metrics = []Metric{
	// views
	{Name: "views", Description: "Number of times videos were viewed", Group: "views", Core: true},
	{Name: "engagedViews", Description: "Views past the initial seconds", Group: "views", Core: true},
	{Name: "redViews", Description: "Views by YouTube Premium members", Group: "views"},
	{Name: "viewerPercentage", Description: "Percentage of logged-in viewers", Group: "views", Core: true},

	// reach
	{Name: "videoThumbnailImpressions", Description: "Times thumbnails were shown to viewers", Group: "reach"},
	{Name: "videoThumbnailImpressionsClickRate", Description: "Percentage of impressions that became views (CTR)", Group: "reach"},

	// watch time
	{Name: "estimatedMinutesWatched", Description: "Total minutes watched", Group: "watch_time", Core: true},
	{Name: "estimatedRedMinutesWatched", Description: "Minutes watched by YouTube Premium members", Group: "watch_time"},
	{Name: "averageViewDuration", Description: "Average playback length in seconds", Group: "watch_time", Core: true},
	{Name: "averageViewPercentage", Description: "Average percentage of video watched", Group: "watch_time"},

	// engagement
	{Name: "likes", Description: "Number of likes", Group: "engagement", Core: true},
	{Name: "dislikes", Description: "Number of dislikes", Group: "engagement", Core: true},
	{Name: "comments", Description: "Number of comments", Group: "engagement", Core: true},
	{Name: "shares", Description: "Number of shares via the Share button", Group: "engagement", Core: true},
	{Name: "subscribersGained", Description: "New subscribers gained", Group: "engagement", Core: true},
	{Name: "subscribersLost", Description: "Subscribers lost", Group: "engagement", Core: true},
	{Name: "videosAddedToPlaylists", Description: "Times videos were added to any playlist", Group: "engagement"},
	{Name: "videosRemovedFromPlaylists", Description: "Times videos were removed from any playlist", Group: "engagement"},

	// cards
	{Name: "cardImpressions", Description: "Number of card impressions", Group: "cards"},
	{Name: "cardClicks", Description: "Number of card clicks", Group: "cards"},
	{Name: "cardClickRate", Description: "Card click-through rate", Group: "cards"},
	{Name: "cardTeaserImpressions", Description: "Number of card teaser impressions", Group: "cards"},
	{Name: "cardTeaserClicks", Description: "Number of card teaser clicks", Group: "cards"},
	{Name: "cardTeaserClickRate", Description: "Card teaser click-through rate", Group: "cards"},

	// annotations
	{Name: "annotationImpressions", Description: "Total annotation impressions", Group: "annotations"},
	{Name: "annotationClicks", Description: "Number of annotation clicks", Group: "annotations"},
	{Name: "annotationClickThroughRate", Description: "Annotation click-through rate", Group: "annotations", Core: true},
	{Name: "annotationClosableImpressions", Description: "Closable annotation impressions", Group: "annotations"},
	{Name: "annotationCloses", Description: "Number of annotation closes", Group: "annotations"},
	{Name: "annotationCloseRate", Description: "Annotation close rate", Group: "annotations", Core: true},
	{Name: "annotationClickableImpressions", Description: "Clickable annotation impressions", Group: "annotations"},

	// revenue
	{Name: "estimatedRevenue", Description: "Estimated total net revenue", Group: "revenue", Core: true, Monetary: true},
	{Name: "estimatedAdRevenue", Description: "Estimated ad net revenue", Group: "revenue", Monetary: true},
	{Name: "grossRevenue", Description: "Estimated gross revenue from ads", Group: "revenue", Monetary: true},
	{Name: "estimatedRedPartnerRevenue", Description: "Estimated YouTube Premium revenue", Group: "revenue", Monetary: true},
	{Name: "monetizedPlaybacks", Description: "Playbacks that showed at least one ad", Group: "revenue", Monetary: true},
	{Name: "playbackBasedCpm", Description: "Estimated gross revenue per 1000 playbacks", Group: "revenue", Monetary: true},
	{Name: "adImpressions", Description: "Number of verified ad impressions", Group: "revenue", Monetary: true},
	{Name: "cpm", Description: "Estimated gross revenue per 1000 ad impressions", Group: "revenue", Monetary: true},

	// in-playlist
	{Name: "playlistViews", Description: "Video views in the context of a playlist", Group: "playlist"},
	{Name: "playlistStarts", Description: "Number of times playlist playback was initiated", Group: "playlist"},
	{Name: "viewsPerPlaylistStart", Description: "Average views per playlist start", Group: "playlist"},
	{Name: "averageTimeInPlaylist", Description: "Average time (min) viewers spent in playlist", Group: "playlist"},
	{Name: "playlistSaves", Description: "Net number of playlist saves", Group: "playlist"},
	{Name: "playlistEstimatedMinutesWatched", Description: "Minutes watched in playlist context", Group: "playlist"},
	{Name: "playlistAverageViewDuration", Description: "Average video view length in playlist context", Group: "playlist"},

	// audience
	{Name: "uniques", Description: "Estimated unique viewers", Group: "audience"},
}

var dimensions = []Dimension{
	// time
	{Name: "day", Description: "Date in YYYY-MM-DD format", Group: "time"},
	{Name: "month", Description: "Month in YYYY-MM format", Group: "time"},

	// geographic
	{Name: "country", Description: "Two-letter ISO 3166-1 country code", Group: "geographic"},
	{Name: "province", Description: "US state (ISO 3166-2, requires country==US filter)", Group: "geographic"},
	{Name: "city", Description: "Estimated city (available from 2022-01-01)", Group: "geographic"},
	{Name: "continent", Description: "UN statistical region code", Group: "geographic", FilterOnly: true},
	{Name: "subContinent", Description: "UN sub-region code", Group: "geographic", FilterOnly: true},
	{Name: "dma", Description: "Nielsen Designated Market Area (3-digit)", Group: "geographic"},

	// content
	{Name: "video", Description: "YouTube video ID", Group: "content"},
	{Name: "playlist", Description: "YouTube playlist ID", Group: "content"},
	{Name: "group", Description: "YouTube Analytics group ID", Group: "content", FilterOnly: true},
	{Name: "creatorContentType", Description: "Content type: shorts, videos, or live", Group: "content"},

	// traffic
	{Name: "insightTrafficSourceType", Description: "Traffic source category", Group: "traffic"},
	{Name: "insightTrafficSourceDetail", Description: "Specific traffic source (search term, URL)", Group: "traffic"},

	// playback
	{Name: "playbackLocationType", Description: "Where the video was played (watch page, embed, etc)", Group: "playback"},
	{Name: "liveOrOnDemand", Description: "Whether content was live or on-demand", Group: "playback"},

	// device
	{Name: "deviceType", Description: "Device type (mobile, desktop, tablet, tv, etc)", Group: "device"},
	{Name: "operatingSystem", Description: "Operating system", Group: "device"},

	// audience
	{Name: "ageGroup", Description: "Viewer age group", Group: "audience"},
	{Name: "gender", Description: "Viewer gender", Group: "audience"},
	{Name: "subscribedStatus", Description: "Whether viewer is subscribed", Group: "audience"},
	{Name: "youtubeProduct", Description: "YouTube product (main, shorts, music, etc)", Group: "audience"},

	// sharing
	{Name: "sharingService", Description: "Service used to share (whatsapp, twitter, etc)", Group: "sharing"},

	// ads
	{Name: "adType", Description: "Type of ad that ran during playback", Group: "ads"},
}

var (
	metricIndex     = make(map[string]int, len(metrics))
	dimensionIndex  = make(map[string]int, len(dimensions))
	metricNames     []string
	dimensionNames  []string
	metricGroups    []string
	dimensionGroups []string
)

func init() {
	metricGroupSet := map[string]struct{}{}
	for i, m := range metrics {
		if _, dup := metricIndex[m.Name]; dup {
			panic("registry: duplicate metric " + m.Name)
		}
		metricIndex[m.Name] = i
		metricNames = append(metricNames, m.Name)
		metricGroupSet[m.Group] = struct{}{}
	}

	dimensionGroupSet := map[string]struct{}{}
	for i, d := range dimensions {
		if _, dup := dimensionIndex[d.Name]; dup {
			panic("registry: duplicate dimension " + d.Name)
		}
		dimensionIndex[d.Name] = i
		dimensionNames = append(dimensionNames, d.Name)
		dimensionGroupSet[d.Group] = struct{}{}
	}

	metricGroups = sortedKeys(metricGroupSet)
	dimensionGroups = sortedKeys(dimensionGroupSet)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Metrics returns every known metric in catalog order.
func Metrics() []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

// Dimensions returns every known dimension in catalog order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions)
	return out
}

// LookupMetric finds a metric by its exact name.
func LookupMetric(name string) (Metric, bool) {
	i, ok := metricIndex[name]
	if !ok {
		return Metric{}, false
	}
	return metrics[i], true
}

// LookupDimension finds a dimension by its exact name.
func LookupDimension(name string) (Dimension, bool) {
	i, ok := dimensionIndex[name]
	if !ok {
		return Dimension{}, false
	}
	return dimensions[i], true
}

// MetricsInGroup returns the metrics tagged with group, in catalog order.
func MetricsInGroup(group string) []Metric {
	var out []Metric
	for _, m := range metrics {
		if m.Group == group {
			out = append(out, m)
		}
	}
	return out
}

// DimensionsInGroup returns the dimensions tagged with group, in catalog order.
func DimensionsInGroup(group string) []Dimension {
	var out []Dimension
	for _, d := range dimensions {
		if d.Group == group {
			out = append(out, d)
		}
	}
	return out
}

// MetricGroups returns the distinct metric groups, sorted.
func MetricGroups() []string {
	return append([]string(nil), metricGroups...)
}

// DimensionGroups returns the distinct dimension groups, sorted.
func DimensionGroups() []string {
	return append([]string(nil), dimensionGroups...)
}
