package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

const quotaBody = `{"error":{"code":403,"message":"quota","errors":[{"domain":"youtube.quota","reason":"quotaExceeded","message":"quota"}]}}`

func newTestSet(t *testing.T, handler http.Handler) *Set {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := yt.NewClientWithOptions(context.Background(), nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return NewSet(client)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func videoItem(id string, views int) string {
	return fmt.Sprintf(`{"id":%q,"snippet":{"title":"Video %s","description":"desc","publishedAt":"2026-01-02T15:04:05Z","tags":["go"],"categoryId":"28"},"statistics":{"viewCount":"%d","likeCount":"5","commentCount":"2"},"contentDetails":{"duration":"PT4M13S"},"status":{"privacyStatus":"public"}}`, id, id, views)
}

func channelsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, `{"items":[{"id":"UC1","snippet":{"title":"Gophers"},"statistics":{"subscriberCount":"1200","videoCount":"10","viewCount":"50000"},"contentDetails":{"relatedPlaylists":{"uploads":"UU1"}}}]}`)
}

func videosHandler(w http.ResponseWriter, r *http.Request) {
	ids := strings.Split(r.URL.Query().Get("id"), ",")
	items := make([]string, 0, len(ids))
	for i, id := range ids {
		items = append(items, videoItem(id, (i+1)*100))
	}
	writeJSON(w, `{"items":[`+strings.Join(items, ",")+`]}`)
}

func TestChannelService_Mine(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/channels", channelsHandler)
	set := newTestSet(t, mux)

	channel, err := set.Channels.Mine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UC1", channel.ID)
	assert.Equal(t, "Gophers", channel.Title)
	assert.Equal(t, "UU1", channel.UploadsPlaylist)
	assert.Equal(t, uint64(1200), channel.SubscriberCount)
}

func TestChannelService_NoChannel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/channels", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, `{"items":[]}`)
	})
	set := newTestSet(t, mux)

	_, err := set.Channels.Mine(context.Background())
	assert.ErrorIs(t, err, yt.ErrNotFound)
}

func TestVideoService_ListPaginates(t *testing.T) {
	var pageSizes []string
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/channels", channelsHandler)
	mux.HandleFunc("/youtube/v3/videos", videosHandler)
	mux.HandleFunc("/youtube/v3/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "UU1", r.URL.Query().Get("playlistId"))
		pageSizes = append(pageSizes, r.URL.Query().Get("maxResults"))
		switch r.URL.Query().Get("pageToken") {
		case "":
			writeJSON(w, `{"nextPageToken":"p2","pageInfo":{"totalResults":10},"items":[{"contentDetails":{"videoId":"a"}},{"contentDetails":{"videoId":"b"}}]}`)
		case "p2":
			writeJSON(w, `{"nextPageToken":"p3","pageInfo":{"totalResults":10},"items":[{"contentDetails":{"videoId":"c"}}]}`)
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("pageToken"))
		}
	})
	set := newTestSet(t, mux)

	page, err := set.Videos.List(context.Background(), 3, "")
	require.NoError(t, err)
	require.Len(t, page.Videos, 3)
	assert.Equal(t, []string{"3", "1"}, pageSizes)
	assert.Equal(t, "a", page.Videos[0].ID)
	assert.Equal(t, "c", page.Videos[2].ID)
	assert.Equal(t, "p3", page.NextPageToken)
	assert.Equal(t, int64(10), page.TotalResults)
	assert.Equal(t, uint64(100), page.Videos[0].Views)
	assert.Equal(t, "public", page.Videos[0].Privacy)
	assert.Equal(t, "PT4M13S", page.Videos[0].Duration)
}

func TestVideoService_ListLastPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/channels", channelsHandler)
	mux.HandleFunc("/youtube/v3/videos", videosHandler)
	mux.HandleFunc("/youtube/v3/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p9", r.URL.Query().Get("pageToken"))
		writeJSON(w, `{"items":[{"contentDetails":{"videoId":"z"}}]}`)
	})
	set := newTestSet(t, mux)

	page, err := set.Videos.List(context.Background(), 20, "p9")
	require.NoError(t, err)
	require.Len(t, page.Videos, 1)
	assert.Empty(t, page.NextPageToken)
}

func TestVideoService_GetQuotaExceeded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/videos", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, quotaBody)
	})
	set := newTestSet(t, mux)

	_, err := set.Videos.Get(context.Background(), "a")
	assert.ErrorIs(t, err, yt.ErrQuotaExceeded)
}

func TestVideoService_GetNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/videos", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, `{"items":[]}`)
	})
	set := newTestSet(t, mux)

	_, err := set.Videos.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, yt.ErrNotFound)
}

func TestVideoService_UpdateKeepsUntouchedFields(t *testing.T) {
	var body string
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/videos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			assert.Equal(t, "snippet", r.URL.Query().Get("part"))
			raw, _ := io.ReadAll(r.Body)
			body = string(raw)
			writeJSON(w, `{"id":"a","snippet":{"title":"New title","description":"desc","categoryId":"28"}}`)
			return
		}
		writeJSON(w, `{"items":[{"id":"a","snippet":{"title":"Old title","description":"desc","tags":["go"],"categoryId":"28"}}]}`)
	})
	set := newTestSet(t, mux)

	title := "New title"
	video, err := set.Videos.Update(context.Background(), "a", yt.VideoUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", video.Title)
	assert.Contains(t, body, `"title":"New title"`)
	assert.Contains(t, body, `"description":"desc"`)
	assert.Contains(t, body, `"categoryId":"28"`)
	assert.Contains(t, body, `"tags":["go"]`)
}

func TestVideoService_Search(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/videos", videosHandler)
	mux.HandleFunc("/youtube/v3/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("forMine"))
		assert.Equal(t, "gopher", r.URL.Query().Get("q"))
		writeJSON(w, `{"items":[{"id":{"videoId":"b"}},{"id":{"videoId":"a"}}]}`)
	})
	set := newTestSet(t, mux)

	videos, err := set.Videos.Search(context.Background(), "gopher", 10)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "b", videos[0].ID)
	assert.Equal(t, "a", videos[1].ID)
}

func TestCommentService_ListChannelWide(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/channels", channelsHandler)
	mux.HandleFunc("/youtube/v3/commentThreads", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "UC1", q.Get("allThreadsRelatedToChannelId"))
		assert.Equal(t, "heldForReview", q.Get("moderationStatus"))
		assert.Equal(t, "time", q.Get("order"))
		writeJSON(w, `{"items":[
			{"snippet":{"videoId":"a","totalReplyCount":2,"topLevelComment":{"id":"c1","snippet":{"authorDisplayName":"ann","textOriginal":"great video","likeCount":3,"publishedAt":"2026-01-02T15:04:05Z"}}}},
			{"snippet":{"videoId":"a","topLevelComment":{"id":"c2","snippet":{"authorDisplayName":"bob","textDisplay":"meh"}}}}
		]}`)
	})
	set := newTestSet(t, mux)

	comments, err := set.Comments.List(context.Background(), yt.CommentQuery{
		Limit:  5,
		Order:  yt.OrderTime,
		Status: yt.StatusHeld,
	})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "great video", comments[0].Text)
	assert.Equal(t, int64(2), comments[0].Replies)
	assert.Equal(t, "meh", comments[1].Text)
}

func TestCommentService_ListPublishedOmitsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/commentThreads", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a", r.URL.Query().Get("videoId"))
		assert.False(t, r.URL.Query().Has("moderationStatus"))
		writeJSON(w, `{"items":[]}`)
	})
	set := newTestSet(t, mux)

	comments, err := set.Comments.List(context.Background(), yt.CommentQuery{VideoID: "a", Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentService_CommentsDisabled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/commentThreads", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"disabled","errors":[{"reason":"commentsDisabled"}]}}`)
	})
	set := newTestSet(t, mux)

	_, err := set.Comments.List(context.Background(), yt.CommentQuery{VideoID: "a", Limit: 5})
	assert.ErrorIs(t, err, yt.ErrCommentsDisabled)
}

func TestCommentService_SetModerationStatusBatches(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/comments/setModerationStatus", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rejected", r.URL.Query().Get("moderationStatus"))
		if calls.Add(1) == 2 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, quotaBody)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	set := newTestSet(t, mux)

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i)
	}
	applied, err := set.Comments.SetModerationStatus(context.Background(), ids, yt.StatusRejected)
	assert.ErrorIs(t, err, yt.ErrQuotaExceeded)
	assert.Equal(t, 50, applied)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAnalyticsService_Query(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/reports", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "channel==MINE", q.Get("ids"))
		assert.Equal(t, "views,likes", q.Get("metrics"))
		assert.Equal(t, "day", q.Get("dimensions"))
		assert.Equal(t, "-views", q.Get("sort"))
		assert.Equal(t, "5", q.Get("maxResults"))
		assert.False(t, q.Has("filters"))
		writeJSON(w, `{"columnHeaders":[{"name":"day","columnType":"DIMENSION","dataType":"STRING"},{"name":"views","columnType":"METRIC","dataType":"INTEGER"},{"name":"likes","columnType":"METRIC","dataType":"INTEGER"}],"rows":[["2026-01-01",1500,45]]}`)
	})
	set := newTestSet(t, mux)

	report, err := set.Analytics.Query(context.Background(), yt.ReportRequest{
		IDs:        "channel==MINE",
		StartDate:  "2026-01-01",
		EndDate:    "2026-01-28",
		Metrics:    []string{"views", "likes"},
		Dimensions: []string{"day"},
		Sort:       "-views",
		MaxResults: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"day", "views", "likes"}, report.Headers())
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "2026-01-01", report.Rows[0][0])
	assert.Equal(t, 1500.0, report.Rows[0][1])
}

func TestAnalyticsService_EmptyRows(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/reports", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, `{"columnHeaders":[{"name":"views"}]}`)
	})
	set := newTestSet(t, mux)

	report, err := set.Analytics.Query(context.Background(), yt.ReportRequest{IDs: "channel==MINE", Metrics: []string{"views"}})
	require.NoError(t, err)
	assert.NotNil(t, report.Rows)
	assert.Empty(t, report.Rows)
}
