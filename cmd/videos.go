package cmd

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alanpramil7/ytstudio/internal/bulk"
	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listLimit     int
	listPageToken string
	listSort      string

	updateTitle       string
	updateDescription string
	updateTags        string
	updateDryRun      bool

	searchLimit int64

	replaceSearch  string
	replaceWith    string
	replaceField   string
	replaceRegex   bool
	replaceLimit   int
	replaceExecute bool
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List, inspect and edit your uploads",
}

var videosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your videos",
	Long: `List your uploads, newest first.

Examples:
  yts videos list
  yts videos list --limit 50 --sort views
  yts videos list --page-token CDIQAA -o csv`,
	Args: cobra.NoArgs,
	RunE: runVideosList,
}

var videosGetCmd = &cobra.Command{
	Use:   "get <video-id>",
	Short: "Show details for a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideosGet,
}

var videosUpdateCmd = &cobra.Command{
	Use:   "update <video-id>",
	Short: "Update a video's title, description or tags",
	Long: `Update the metadata of one video. Fields that are not given are left
unchanged.

Examples:
  yts videos update dQw4w9WgXcQ --title "New title"
  yts videos update dQw4w9WgXcQ --tags "go,cli,youtube" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runVideosUpdate,
}

var videosSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search your own videos",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideosSearch,
}

var videosSearchReplaceCmd = &cobra.Command{
	Use:   "search-replace",
	Short: "Search and replace text in titles or descriptions",
	Long: `Find text in the titles or descriptions of your uploads and replace it.
Runs as a dry run unless --execute is given.

Examples:
  yts videos search-replace -s "2024" -r "2025" -f title
  yts videos search-replace -s "v(\d+)" -r "version $1" -f description --regex --execute`,
	Args: cobra.NoArgs,
	RunE: runVideosSearchReplace,
}

func init() {
	rootCmd.AddCommand(videosCmd)
	videosCmd.AddCommand(videosListCmd, videosGetCmd, videosUpdateCmd, videosSearchCmd, videosSearchReplaceCmd)

	videosListCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Number of videos to list")
	videosListCmd.Flags().StringVarP(&listPageToken, "page-token", "p", "", "Page token for pagination")
	videosListCmd.Flags().StringVarP(&listSort, "sort", "s", "date", "Sort by: date, views, likes")

	videosUpdateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "New title")
	videosUpdateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")
	videosUpdateCmd.Flags().StringVar(&updateTags, "tags", "", "Comma-separated tags")
	videosUpdateCmd.Flags().BoolVarP(&updateDryRun, "dry-run", "n", false, "Preview without applying")

	videosSearchCmd.Flags().Int64VarP(&searchLimit, "limit", "n", 10, "Maximum number of results (1-50)")

	videosSearchReplaceCmd.Flags().StringVarP(&replaceSearch, "search", "s", "", "Text to search for")
	videosSearchReplaceCmd.Flags().StringVarP(&replaceWith, "replace", "r", "", "Text to replace with")
	videosSearchReplaceCmd.Flags().StringVarP(&replaceField, "field", "f", "", "Field to update: title, description")
	videosSearchReplaceCmd.Flags().BoolVar(&replaceRegex, "regex", false, "Treat search as a regular expression")
	videosSearchReplaceCmd.Flags().IntVarP(&replaceLimit, "limit", "n", 10, "Maximum number of changes")
	videosSearchReplaceCmd.Flags().BoolVar(&replaceExecute, "execute", false, "Apply changes (default is dry run)")
	for _, name := range []string{"search", "replace", "field"} {
		_ = videosSearchReplaceCmd.MarkFlagRequired(name)
	}
}

func runVideosList(cmd *cobra.Command, args []string) error {
	sortBy, err := yt.ParseVideoSort(listSort)
	if err != nil {
		return err
	}
	if listLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", listLimit)
	}
	opts, err := outputOptions()
	if err != nil {
		return err
	}

	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	page, err := svc.Videos.List(cmd.Context(), listLimit, listPageToken)
	if err != nil {
		return err
	}
	sortVideos(page.Videos, sortBy)
	logger.Debug("listed videos",
		zap.Int("count", len(page.Videos)),
		zap.String("next_page_token", page.NextPageToken))

	out := cmd.OutOrStdout()
	switch opts.Format {
	case format.JSON:
		return format.WriteJSON(out, page)
	case format.CSV:
		return writeVideosCSV(out, page.Videos)
	}

	if len(page.Videos) == 0 {
		fmt.Fprintln(out, format.WarningStyle.Render("No videos found"))
		return nil
	}

	rows := make([][]string, len(page.Videos))
	for i, v := range page.Videos {
		rows[i] = []string{
			format.IDStyle.Render(v.ID),
			format.Truncate(v.Title, 40),
			format.Count(v.Views, opts.Raw),
			format.Count(v.Likes, opts.Raw),
			format.Count(v.Comments, opts.Raw),
			format.Duration(v.Duration),
			format.TimeAgo(v.PublishedAt, now()),
			v.Privacy,
		}
	}
	fmt.Fprintln(out, format.Grid(
		[]string{"ID", "TITLE", "VIEWS", "LIKES", "COMMENTS", "DURATION", "PUBLISHED", "PRIVACY"},
		rows, 2, 3, 4, 5))
	fmt.Fprintln(out, format.MutedStyle.Render(fmt.Sprintf("\n%d videos", page.TotalResults)))
	if page.NextPageToken != "" {
		fmt.Fprintln(out, format.MutedStyle.Render("Next page: --page-token "+page.NextPageToken))
	}
	return nil
}

// sortVideos orders videos in place. Date order is the API's, newest first.
func sortVideos(videos []yt.Video, by yt.VideoSort) {
	switch by {
	case yt.SortByViews:
		slices.SortStableFunc(videos, func(a, b yt.Video) int { return cmp.Compare(b.Views, a.Views) })
	case yt.SortByLikes:
		slices.SortStableFunc(videos, func(a, b yt.Video) int { return cmp.Compare(b.Likes, a.Likes) })
	}
}

func writeVideosCSV(w io.Writer, videos []yt.Video) error {
	rows := make([][]string, len(videos))
	for i, v := range videos {
		rows[i] = []string{
			v.ID,
			v.Title,
			strconv.FormatUint(v.Views, 10),
			strconv.FormatUint(v.Likes, 10),
			strconv.FormatUint(v.Comments, 10),
			v.Privacy,
			v.PublishedAt.Format(time.RFC3339),
		}
	}
	return format.WriteCSV(w, []string{"id", "title", "views", "likes", "comments", "privacy", "published_at"}, rows)
}

func runVideosGet(cmd *cobra.Command, args []string) error {
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	video, err := svc.Videos.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case format.JSON:
		return format.WriteJSON(out, video)
	case format.CSV:
		return writeVideosCSV(out, []yt.Video{*video})
	}

	fmt.Fprintln(out, format.TitleStyle.Render(video.Title))
	fmt.Fprintln(out, video.URL())
	fmt.Fprintln(out)
	fmt.Fprintln(out, format.KeyValue([][2]string{
		{"views", format.Count(video.Views, opts.Raw)},
		{"likes", format.Count(video.Likes, opts.Raw)},
		{"comments", format.Count(video.Comments, opts.Raw)},
		{"duration", format.Duration(video.Duration)},
		{"privacy", video.Privacy},
		{"published", video.PublishedAt.Format("2006-01-02")},
	}))

	if len(video.Tags) > 0 {
		tags := video.Tags
		if len(tags) > 15 {
			tags = tags[:15]
		}
		fmt.Fprintln(out, format.MutedStyle.Render("\ntags: ")+strings.Join(tags, ", "))
	}
	if video.Description != "" {
		fmt.Fprintln(out, "\n"+format.TitleStyle.Render("description:"))
		fmt.Fprintln(out, video.Description)
	}
	return nil
}

func runVideosUpdate(cmd *cobra.Command, args []string) error {
	var update yt.VideoUpdate
	if cmd.Flags().Changed("title") {
		title := updateTitle
		update.Title = &title
	}
	if cmd.Flags().Changed("description") {
		description := updateDescription
		update.Description = &description
	}
	if cmd.Flags().Changed("tags") {
		update.Tags = splitTags(updateTags)
	}
	if update.Empty() {
		return errors.New("nothing to update: pass --title, --description or --tags")
	}

	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	current, err := svc.Videos.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if updateDryRun {
		fmt.Fprintln(out, format.TitleStyle.Render("Dry run - changes:"))
		fmt.Fprintln(out)
		if update.Title != nil {
			fmt.Fprintf(out, "title: %s → %s\n", current.Title, format.SuccessStyle.Render(*update.Title))
		}
		if update.Description != nil {
			fmt.Fprintln(out, "description: "+format.SuccessStyle.Render("(updated)"))
		}
		if update.Tags != nil {
			shown := update.Tags
			if len(shown) > 5 {
				shown = shown[:5]
			}
			fmt.Fprintln(out, "tags: "+format.SuccessStyle.Render(strings.Join(shown, ", ")))
		}
		fmt.Fprintln(out, format.MutedStyle.Render("\nRun without --dry-run to apply"))
		return nil
	}

	updated, err := svc.Videos.Update(cmd.Context(), current.ID, update)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, format.SuccessStyle.Render("✓ Updated: "+updated.Title))
	return nil
}

func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func runVideosSearch(cmd *cobra.Command, args []string) error {
	if searchLimit < 1 || searchLimit > 50 {
		return fmt.Errorf("limit must be between 1 and 50, got %d", searchLimit)
	}
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	videos, err := svc.Videos.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case format.JSON:
		return format.WriteJSON(out, videos)
	case format.CSV:
		return writeVideosCSV(out, videos)
	}

	if len(videos) == 0 {
		fmt.Fprintln(out, format.WarningStyle.Render("No videos match "+strconv.Quote(args[0])))
		return nil
	}
	rows := make([][]string, len(videos))
	for i, v := range videos {
		rows[i] = []string{
			format.IDStyle.Render(v.ID),
			format.Truncate(v.Title, 50),
			format.Count(v.Views, opts.Raw),
			format.TimeAgo(v.PublishedAt, now()),
		}
	}
	fmt.Fprintln(out, format.Grid([]string{"ID", "TITLE", "VIEWS", "PUBLISHED"}, rows, 2))
	return nil
}

func runVideosSearchReplace(cmd *cobra.Command, args []string) error {
	field, err := bulk.ParseField(replaceField)
	if err != nil {
		return err
	}
	replacer, err := bulk.NewReplacer(replaceSearch, replaceWith, replaceRegex)
	if err != nil {
		return err
	}
	if replaceLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", replaceLimit)
	}

	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	changes, err := bulk.Plan(cmd.Context(), svc.Videos, field, replacer, replaceLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(changes) == 0 {
		fmt.Fprintln(out, format.WarningStyle.Render("No matches found"))
		return nil
	}

	verb := "Pending"
	if replaceExecute {
		verb = "Applying"
	}
	fmt.Fprintln(out, format.MutedStyle.Render(fmt.Sprintf("%s %d changes", verb, len(changes))))
	fmt.Fprintln(out)

	rows := make([][]string, len(changes))
	for i, c := range changes {
		rows[i] = []string{
			format.IDStyle.Render(c.VideoID),
			format.Truncate(c.Old, 35),
			format.SuccessStyle.Render(format.Truncate(c.New, 35)),
		}
	}
	fmt.Fprintln(out, format.Grid([]string{"ID", "CURRENT", "NEW " + strings.ToUpper(field.String())}, rows))

	if !replaceExecute {
		fmt.Fprintln(out, format.MutedStyle.Render("\nRun with --execute to apply changes"))
		return nil
	}

	fmt.Fprintln(out)
	result, err := bulk.Apply(cmd.Context(), svc.Videos, changes, func(c bulk.Change, err error) {
		if err != nil {
			logger.Debug("update failed", zap.String("video_id", c.VideoID), zap.Error(err))
			fmt.Fprintf(out, "%s %s: %v\n", format.ErrorStyle.Render("✗"), c.VideoID, err)
			return
		}
		fmt.Fprintf(out, "%s %s: %s\n", format.SuccessStyle.Render("✓"), c.VideoID, c.New)
	})
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("%d updated, %d failed", result.Applied, result.Failed)
	if result.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", result.Skipped)
	}
	fmt.Fprintln(out, "\n"+format.TitleStyle.Render("Done:")+" "+summary)
	return nil
}
