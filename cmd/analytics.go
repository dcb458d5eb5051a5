package cmd

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alanpramil7/ytstudio/internal/analytics"
	"github.com/alanpramil7/ytstudio/internal/auth"
	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/alanpramil7/ytstudio/internal/registry"
	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/alanpramil7/ytstudio/internal/yt/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyticsDays  int
	analyticsLimit int
	catalogGroup   string

	queryMetrics    string
	queryDimensions string
	queryFilters    []string
	queryStart      string
	queryEnd        string
	queryDays       int
	querySort       string
	queryLimit      int
	queryCurrency   string
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Channel and video analytics",
}

var analyticsOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Channel overview for the last N days",
	Args:  cobra.NoArgs,
	RunE:  runAnalyticsOverview,
}

var analyticsVideoCmd = &cobra.Command{
	Use:   "video <video-id>",
	Short: "Analytics for a single video",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyticsVideo,
}

var analyticsTrafficCmd = &cobra.Command{
	Use:   "traffic [video-id]",
	Short: "Traffic sources for the channel or one video",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyticsTraffic,
}

var analyticsTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Top performing videos",
	Args:  cobra.NoArgs,
	RunE:  runAnalyticsTop,
}

var analyticsMetricsCmd = &cobra.Command{
	Use:   "metrics [name]",
	Short: "List available metrics or describe one",
	Long: `List the YouTube Analytics metrics yts knows about, or describe one.

Examples:
  yts analytics metrics
  yts analytics metrics --group engagement
  yts analytics metrics estimatedRevenue`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyticsMetrics,
}

var analyticsDimensionsCmd = &cobra.Command{
	Use:   "dimensions [name]",
	Short: "List available dimensions or describe one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyticsDimensions,
}

var analyticsQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a custom analytics query",
	Long: `Run any YouTube Analytics report. Metric, dimension and filter names are
checked before anything is sent.

Examples:
  yts analytics query -m views,likes -d day --days 7
  yts analytics query -m views -d country --sort -views --limit 10
  yts analytics query -m views,estimatedMinutesWatched -d video --sort -views --limit 5
  yts analytics query -m views -d insightTrafficSourceType -f video==dQw4w9WgXcQ
  yts analytics query -m estimatedRevenue,cpm -d month --start 2025-01-01 --currency EUR`,
	Args: cobra.NoArgs,
	RunE: runAnalyticsQuery,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(
		analyticsOverviewCmd,
		analyticsVideoCmd,
		analyticsTrafficCmd,
		analyticsTopCmd,
		analyticsMetricsCmd,
		analyticsDimensionsCmd,
		analyticsQueryCmd,
	)

	for _, c := range []*cobra.Command{analyticsOverviewCmd, analyticsVideoCmd, analyticsTrafficCmd, analyticsTopCmd} {
		c.Flags().IntVarP(&analyticsDays, "days", "d", 0, "Number of days to analyze (default from config)")
	}
	analyticsTopCmd.Flags().IntVarP(&analyticsLimit, "limit", "n", 10, "Number of videos")

	analyticsMetricsCmd.Flags().StringVarP(&catalogGroup, "group", "g", "", "Only list this group")
	analyticsDimensionsCmd.Flags().StringVarP(&catalogGroup, "group", "g", "", "Only list this group")

	f := analyticsQueryCmd.Flags()
	f.StringVarP(&queryMetrics, "metrics", "m", "", "Comma-separated metrics (required)")
	f.StringVarP(&queryDimensions, "dimensions", "d", "", "Comma-separated dimensions")
	f.StringArrayVarP(&queryFilters, "filter", "f", nil, "Filter as dimension==value (repeatable)")
	f.StringVar(&queryStart, "start", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&queryEnd, "end", "", "End date (YYYY-MM-DD)")
	f.IntVar(&queryDays, "days", 0, "Relative window when no dates are given (default from config)")
	f.StringVar(&querySort, "sort", "", "Sort fields, prefix with - for descending")
	f.IntVar(&queryLimit, "limit", 0, "Maximum number of rows")
	f.StringVar(&queryCurrency, "currency", "", "ISO 4217 currency for revenue metrics")
	_ = analyticsQueryCmd.MarkFlagRequired("metrics")
}

// report runs a request built from fixed metric and dimension lists
func report(cmd *cobra.Command, svc *services.Set, req yt.ReportRequest) (*yt.Report, error) {
	logger.Debug("querying analytics",
		zap.Strings("metrics", req.Metrics),
		zap.Strings("dimensions", req.Dimensions),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate))
	return svc.Analytics.Query(cmd.Context(), req)
}

func window(n int) (string, string) {
	return analytics.Window(now(), days(n))
}

func value(record map[string]any, key string) float64 {
	if f, ok := record[key].(float64); ok {
		return f
	}
	return 0
}

func count(f float64, raw bool) string {
	return format.Number(math.Trunc(f), raw)
}

func clock(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func runAnalyticsOverview(cmd *cobra.Command, args []string) error {
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}

	start, end := window(analyticsDays)
	rep, err := report(cmd, svc, yt.ReportRequest{
		IDs:       analytics.ChannelIDs,
		StartDate: start,
		EndDate:   end,
		Metrics: []string{
			"views", "estimatedMinutesWatched", "averageViewDuration",
			"subscribersGained", "subscribersLost", "likes", "comments",
		},
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	record := rep.Record()
	if record == nil {
		channel, err := svc.Channels.Mine(cmd.Context())
		if err != nil {
			return err
		}
		if opts.Format == format.JSON {
			return format.WriteJSON(out, map[string]any{"channel": channel, "days": days(analyticsDays)})
		}
		fmt.Fprintln(out, format.WarningStyle.Render("No analytics data for this period. Showing channel totals."))
		fmt.Fprintln(out)
		fmt.Fprintln(out, format.TitleStyle.Render(channel.Title))
		fmt.Fprintln(out, format.KeyValue([][2]string{
			{"subscribers", format.Count(channel.SubscriberCount, opts.Raw)},
			{"total views", format.Count(channel.ViewCount, opts.Raw)},
			{"videos", format.Count(channel.VideoCount, opts.Raw)},
		}))
		return nil
	}

	switch opts.Format {
	case format.JSON:
		return format.WriteJSON(out, map[string]any{
			"analytics": format.Records(rep)[0],
			"days":      days(analyticsDays),
			"start":     start,
			"end":       end,
		})
	case format.CSV:
		return format.Render(out, rep, opts)
	}

	fmt.Fprintln(out, format.TitleStyle.Render("Channel Analytics")+" "+
		format.MutedStyle.Render(fmt.Sprintf("(last %d days)", days(analyticsDays))))
	fmt.Fprintln(out)
	fmt.Fprintln(out, format.KeyValue([][2]string{
		{"views", count(value(record, "views"), opts.Raw)},
		{"watch time", fmt.Sprintf("%d hours", int(value(record, "estimatedMinutesWatched")/60))},
		{"avg duration", clock(value(record, "averageViewDuration"))},
		{"subs gained", format.SuccessStyle.Render("+" + count(value(record, "subscribersGained"), opts.Raw))},
		{"subs lost", format.ErrorStyle.Render("-" + count(value(record, "subscribersLost"), opts.Raw))},
		{"likes", count(value(record, "likes"), opts.Raw)},
		{"comments", count(value(record, "comments"), opts.Raw)},
	}))
	return nil
}

func runAnalyticsVideo(cmd *cobra.Command, args []string) error {
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

	start, end := window(analyticsDays)
	rep, err := report(cmd, svc, yt.ReportRequest{
		IDs:       analytics.ChannelIDs,
		StartDate: start,
		EndDate:   end,
		Metrics: []string{
			"views", "estimatedMinutesWatched", "averageViewDuration",
			"averageViewPercentage", "likes", "comments",
		},
		Filters: analytics.Filter{Key: "video", Value: video.ID}.String(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case format.JSON:
		return format.WriteJSON(out, map[string]any{"video": video, "analytics": format.Records(rep)})
	case format.CSV:
		return format.Render(out, rep, opts)
	}

	fmt.Fprintln(out, format.TitleStyle.Render(video.Title))
	fmt.Fprintln(out, video.URL())
	fmt.Fprintln(out)

	record := rep.Record()
	if record == nil {
		fmt.Fprintln(out, format.MutedStyle.Render("No data for this period."))
		return nil
	}
	fmt.Fprintln(out, format.TitleStyle.Render("Analytics")+" "+
		format.MutedStyle.Render(fmt.Sprintf("(last %d days)", days(analyticsDays))))
	fmt.Fprintln(out, format.KeyValue([][2]string{
		{"views", count(value(record, "views"), opts.Raw)},
		{"watch time", fmt.Sprintf("%d min", int(value(record, "estimatedMinutesWatched")))},
		{"avg duration", clock(value(record, "averageViewDuration"))},
		{"avg % viewed", fmt.Sprintf("%.1f%%", value(record, "averageViewPercentage"))},
		{"likes", count(value(record, "likes"), opts.Raw)},
		{"comments", count(value(record, "comments"), opts.Raw)},
	}))
	return nil
}

func runAnalyticsTraffic(cmd *cobra.Command, args []string) error {
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}

	start, end := window(analyticsDays)
	req := yt.ReportRequest{
		IDs:        analytics.ChannelIDs,
		StartDate:  start,
		EndDate:    end,
		Metrics:    []string{"views", "estimatedMinutesWatched"},
		Dimensions: []string{"insightTrafficSourceType"},
		Sort:       "-views",
	}
	if len(args) == 1 {
		req.Filters = analytics.Filter{Key: "video", Value: args[0]}.String()
	}
	rep, err := report(cmd, svc, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == format.Table {
		fmt.Fprintln(out, format.TitleStyle.Render("Traffic Sources")+" "+
			format.MutedStyle.Render(fmt.Sprintf("(last %d days)", days(analyticsDays))))
		fmt.Fprintln(out)
	}
	return format.Render(out, rep, opts)
}

func runAnalyticsTop(cmd *cobra.Command, args []string) error {
	if analyticsLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", analyticsLimit)
	}
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}

	start, end := window(analyticsDays)
	rep, err := report(cmd, svc, yt.ReportRequest{
		IDs:        analytics.ChannelIDs,
		StartDate:  start,
		EndDate:    end,
		Metrics:    []string{"views", "estimatedMinutesWatched", "likes"},
		Dimensions: []string{"video"},
		Sort:       "-views",
		MaxResults: int64(analyticsLimit),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format != format.Table {
		return format.Render(out, rep, opts)
	}
	if len(rep.Rows) == 0 {
		fmt.Fprintln(out, format.MutedStyle.Render("No data for this period."))
		return nil
	}

	rows := make([][]string, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		if len(row) < 4 {
			continue
		}
		id, _ := row[0].(string)
		title := id
		if v, err := svc.Videos.Get(cmd.Context(), id); err == nil && v.ID == id {
			title = v.Title
		} else if err != nil && !errors.Is(err, yt.ErrNotFound) {
			return err
		}
		views, _ := row[1].(float64)
		minutes, _ := row[2].(float64)
		likes, _ := row[3].(float64)
		rows = append(rows, []string{
			format.Truncate(title, 40),
			count(views, opts.Raw),
			fmt.Sprintf("%dh", int(minutes/60)),
			count(likes, opts.Raw),
		})
	}

	fmt.Fprintln(out, format.TitleStyle.Render(fmt.Sprintf("Top %d Videos", analyticsLimit))+" "+
		format.MutedStyle.Render(fmt.Sprintf("(last %d days)", days(analyticsDays))))
	fmt.Fprintln(out)
	fmt.Fprintln(out, format.Grid([]string{"TITLE", "VIEWS", "WATCH TIME", "LIKES"}, rows, 1, 2, 3))
	return nil
}

func runAnalyticsMetrics(cmd *cobra.Command, args []string) error {
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		m, ok := registry.LookupMetric(args[0])
		if !ok {
			return registry.ValidateMetrics(args)[0]
		}
		if opts.Format == format.JSON {
			return format.WriteJSON(out, m)
		}
		pairs := [][2]string{
			{"name", format.TitleStyle.Render(m.Name)},
			{"group", m.Group},
			{"description", m.Description},
		}
		if m.Monetary {
			pairs = append(pairs, [2]string{"scope", "monetary (yts login --monetary)"})
		}
		fmt.Fprintln(out, format.KeyValue(pairs))
		return nil
	}

	list := registry.Metrics()
	if catalogGroup != "" {
		list = registry.MetricsInGroup(catalogGroup)
		if len(list) == 0 {
			return fmt.Errorf("unknown metric group '%s' (groups: %s)", catalogGroup, strings.Join(registry.MetricGroups(), ", "))
		}
	}

	switch opts.Format {
	case format.JSON:
		return format.WriteJSON(out, list)
	case format.CSV:
		rows := make([][]string, len(list))
		for i, m := range list {
			rows[i] = []string{m.Name, m.Group, fmt.Sprint(m.Monetary), m.Description}
		}
		return format.WriteCSV(out, []string{"name", "group", "monetary", "description"}, rows)
	}

	rows := make([][]string, len(list))
	for i, m := range list {
		name := m.Name
		if m.Monetary {
			name += " $"
		}
		rows[i] = []string{name, format.MutedStyle.Render(m.Group), m.Description}
	}
	fmt.Fprintln(out, format.Grid([]string{"METRIC", "GROUP", "DESCRIPTION"}, rows))
	fmt.Fprintln(out, format.MutedStyle.Render("\n$ requires the monetary scope"))
	return nil
}

func runAnalyticsDimensions(cmd *cobra.Command, args []string) error {
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		d, ok := registry.LookupDimension(args[0])
		if !ok {
			return registry.ValidateDimensions(args)[0]
		}
		if opts.Format == format.JSON {
			return format.WriteJSON(out, d)
		}
		pairs := [][2]string{
			{"name", format.TitleStyle.Render(d.Name)},
			{"group", d.Group},
			{"description", d.Description},
		}
		if d.FilterOnly {
			pairs = append(pairs, [2]string{"usage", "filter only (-f " + d.Name + "==...)"})
		}
		fmt.Fprintln(out, format.KeyValue(pairs))
		return nil
	}

	list := registry.Dimensions()
	if catalogGroup != "" {
		list = registry.DimensionsInGroup(catalogGroup)
		if len(list) == 0 {
			return fmt.Errorf("unknown dimension group '%s' (groups: %s)", catalogGroup, strings.Join(registry.DimensionGroups(), ", "))
		}
	}

	switch opts.Format {
	case format.JSON:
		return format.WriteJSON(out, list)
	case format.CSV:
		rows := make([][]string, len(list))
		for i, d := range list {
			rows[i] = []string{d.Name, d.Group, fmt.Sprint(d.FilterOnly), d.Description}
		}
		return format.WriteCSV(out, []string{"name", "group", "filter_only", "description"}, rows)
	}

	rows := make([][]string, len(list))
	for i, d := range list {
		name := d.Name
		if d.FilterOnly {
			name += " *"
		}
		rows[i] = []string{name, format.MutedStyle.Render(d.Group), d.Description}
	}
	fmt.Fprintln(out, format.Grid([]string{"DIMENSION", "GROUP", "DESCRIPTION"}, rows))
	fmt.Fprintln(out, format.MutedStyle.Render("\n* filter only"))
	return nil
}

func runAnalyticsQuery(cmd *cobra.Command, args []string) error {
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	currency := queryCurrency
	if currency == "" {
		currency = cfg.Currency
	}

	q, err := analytics.Build(analytics.Input{
		Metrics:    queryMetrics,
		Dimensions: queryDimensions,
		Filters:    queryFilters,
		Start:      queryStart,
		End:        queryEnd,
		Days:       days(queryDays),
		Sort:       querySort,
		Limit:      queryLimit,
		Currency:   currency,
		Now:        now(),
	})
	if err != nil {
		return err
	}

	if q.Monetary && !cfg.Demo {
		granted, err := authManager().GrantedScopes()
		if err != nil {
			return err
		}
		if granted != nil && !auth.HasMonetary(granted) {
			return errors.New("revenue metrics need the monetary scope, run 'yts login --monetary'")
		}
	}

	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	rep, err := report(cmd, svc, q.Request)
	if err != nil {
		return err
	}

	opts.Currency = q.Request.Currency
	return format.Render(cmd.OutOrStdout(), rep, opts)
}
