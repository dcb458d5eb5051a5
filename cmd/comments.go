package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/alanpramil7/ytstudio/internal/sentiment"
	"github.com/alanpramil7/ytstudio/internal/tui"
	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/alanpramil7/ytstudio/internal/yt/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	commentsLimit  int
	commentsOrder  string
	commentsStatus string
	summaryLimit   int
	moderateLimit  int
	moderateStatus string

	// runModerator shows the moderation screen and returns the decisions
	runModerator = func(comments []yt.Comment) (tui.Decisions, error) {
		return tui.Run(comments, now())
	}
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and moderate comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list [video-id]",
	Short: "List comments for a video or the whole channel",
	Long: `List top-level comments. Without a video ID, comments across the whole
channel are listed.

Examples:
  yts comments list
  yts comments list dQw4w9WgXcQ --order time
  yts comments list --status held`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommentsList,
}

var commentsSummaryCmd = &cobra.Command{
	Use:   "summary <video-id>",
	Short: "Sentiment summary of a video's comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsSummary,
}

var commentsModerateCmd = &cobra.Command{
	Use:   "moderate [video-id]",
	Short: "Review held comments interactively",
	Long: `Open an interactive list of comments held for review.

Keys:
  enter  mark for publishing
  h      mark for rejection
  space  toggle the mark
  a      mark all for publishing
  q      apply and quit
  esc    quit without changes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommentsModerate,
}

var commentsPublishCmd = &cobra.Command{
	Use:   "publish <comment-id>...",
	Short: "Publish held comments",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCommentsPublish,
}

var commentsRejectCmd = &cobra.Command{
	Use:   "reject <comment-id>...",
	Short: "Reject comments",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCommentsReject,
}

func init() {
	rootCmd.AddCommand(commentsCmd)
	commentsCmd.AddCommand(commentsListCmd, commentsSummaryCmd, commentsModerateCmd, commentsPublishCmd, commentsRejectCmd)

	commentsListCmd.Flags().IntVarP(&commentsLimit, "limit", "n", 20, "Number of comments")
	commentsListCmd.Flags().StringVar(&commentsOrder, "order", "relevance", "Order: relevance, time")
	commentsListCmd.Flags().StringVar(&commentsStatus, "status", "published", "Status: published, held, spam")

	commentsSummaryCmd.Flags().IntVarP(&summaryLimit, "limit", "n", 100, "Number of comments to analyze")

	commentsModerateCmd.Flags().IntVarP(&moderateLimit, "limit", "n", 50, "Number of comments to review")
	commentsModerateCmd.Flags().StringVar(&moderateStatus, "status", "held", "Status to review: held, spam")
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	order, err := yt.ParseCommentOrder(commentsOrder)
	if err != nil {
		return err
	}
	status, err := yt.ParseModerationStatus(commentsStatus)
	if err != nil {
		return err
	}
	opts, err := outputOptions()
	if err != nil {
		return err
	}

	query := yt.CommentQuery{Limit: commentsLimit, Order: order, Status: status}
	if len(args) == 1 {
		query.VideoID = args[0]
	}

	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	comments, err := svc.Comments.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case format.JSON:
		return format.WriteJSON(out, comments)
	case format.CSV:
		return writeCommentsCSV(out, comments)
	}

	if len(comments) == 0 {
		fmt.Fprintln(out, format.WarningStyle.Render("No comments found"))
		return nil
	}
	fmt.Fprintln(out, format.TitleStyle.Render(fmt.Sprintf("Comments (%d)", len(comments))))
	fmt.Fprintln(out)
	for _, c := range comments {
		meta := fmt.Sprintf("%s · %s · %s likes", c.Author, format.TimeAgo(c.PublishedAt, now()), format.Number(float64(c.Likes), opts.Raw))
		if c.Replies > 0 {
			meta += fmt.Sprintf(" · %d replies", c.Replies)
		}
		fmt.Fprintln(out, format.MutedStyle.Render(meta)+" "+format.IDStyle.Render(c.ID))
		fmt.Fprintf(out, "  %s\n\n", c.Text)
	}
	return nil
}

func writeCommentsCSV(w io.Writer, comments []yt.Comment) error {
	rows := make([][]string, len(comments))
	for i, c := range comments {
		rows[i] = []string{
			c.ID,
			c.VideoID,
			c.Author,
			c.Text,
			strconv.FormatInt(c.Likes, 10),
			strconv.FormatInt(c.Replies, 10),
			c.PublishedAt.Format(time.RFC3339),
		}
	}
	return format.WriteCSV(w, []string{"id", "video_id", "author", "text", "likes", "replies", "published"}, rows)
}

func runCommentsSummary(cmd *cobra.Command, args []string) error {
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	comments, err := svc.Comments.List(cmd.Context(), yt.CommentQuery{
		VideoID: args[0],
		Limit:   summaryLimit,
		Order:   yt.OrderRelevance,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(comments) == 0 {
		fmt.Fprintln(out, format.WarningStyle.Render("No comments found"))
		return nil
	}

	summary := sentiment.Summarize(comments)
	if opts.Format == format.JSON {
		return format.WriteJSON(out, summary)
	}

	fmt.Fprintln(out, format.TitleStyle.Render("Comment Sentiment")+" "+
		format.MutedStyle.Render(fmt.Sprintf("(%d analyzed)", summary.Total)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, format.KeyValue([][2]string{
		{"positive", format.SuccessStyle.Render(fmt.Sprintf("%d (%.0f%%)", summary.Positive, summary.Percent(summary.Positive)))},
		{"neutral", fmt.Sprintf("%d (%.0f%%)", summary.Neutral, summary.Percent(summary.Neutral))},
		{"negative", format.ErrorStyle.Render(fmt.Sprintf("%d (%.0f%%)", summary.Negative, summary.Percent(summary.Negative)))},
	}))

	if len(summary.Samples) > 0 {
		fmt.Fprintln(out, "\n"+format.ErrorStyle.Render("Negative comments:"))
		for _, s := range summary.Samples {
			fmt.Fprintf(out, "  %s %s\n", format.MutedStyle.Render(s.Author+":"), s.Text)
		}
	}
	return nil
}

func runCommentsModerate(cmd *cobra.Command, args []string) error {
	status, err := yt.ParseModerationStatus(moderateStatus)
	if err != nil {
		return err
	}
	if status == yt.StatusPublished || status == yt.StatusRejected {
		return fmt.Errorf("can only review held or spam comments, got %s", status)
	}

	query := yt.CommentQuery{Limit: moderateLimit, Order: yt.OrderTime, Status: status}
	if len(args) == 1 {
		query.VideoID = args[0]
	}

	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	comments, err := svc.Comments.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(comments) == 0 {
		fmt.Fprintln(out, format.SuccessStyle.Render("No comments waiting for review"))
		return nil
	}

	decisions, err := runModerator(comments)
	if err != nil {
		return err
	}
	if decisions.Empty() {
		fmt.Fprintln(out, format.MutedStyle.Render("No changes made"))
		return nil
	}

	logger.Debug("applying moderation",
		zap.Int("publish", len(decisions.Publish)),
		zap.Int("reject", len(decisions.Reject)))
	if err := moderate(cmd, svc, decisions.Publish, yt.StatusPublished); err != nil {
		return err
	}
	return moderate(cmd, svc, decisions.Reject, yt.StatusRejected)
}

// moderate sets status on ids and reports how many were changed
func moderate(cmd *cobra.Command, svc *services.Set, ids []string, status yt.ModerationStatus) error {
	if len(ids) == 0 {
		return nil
	}
	applied, err := svc.Comments.SetModerationStatus(cmd.Context(), ids, status)

	verb := "Published"
	if status == yt.StatusRejected {
		verb = "Rejected"
	}
	if applied > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), format.SuccessStyle.Render(fmt.Sprintf("✓ %s %d comments", verb, applied)))
	}
	if err != nil {
		return fmt.Errorf("%s %d of %d comments: %w", verb, applied, len(ids), err)
	}
	return nil
}

func runCommentsPublish(cmd *cobra.Command, args []string) error {
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	return moderate(cmd, svc, args, yt.StatusPublished)
}

func runCommentsReject(cmd *cobra.Command, args []string) error {
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	return moderate(cmd, svc, args, yt.StatusRejected)
}
