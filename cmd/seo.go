package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/alanpramil7/ytstudio/internal/seo"
	"github.com/alanpramil7/ytstudio/internal/yt"
	"github.com/alanpramil7/ytstudio/internal/yt/services"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var auditLimit int

var seoCmd = &cobra.Command{
	Use:   "seo",
	Short: "Check titles, descriptions and tags",
}

var seoCheckCmd = &cobra.Command{
	Use:   "check <video-id>",
	Short: "SEO score for one video",
	Args:  cobra.ExactArgs(1),
	RunE:  runSEOCheck,
}

var seoAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "SEO audit of your recent uploads",
	Args:  cobra.NoArgs,
	RunE:  runSEOAudit,
}

func init() {
	rootCmd.AddCommand(seoCmd)
	seoCmd.AddCommand(seoCheckCmd, seoAuditCmd)

	seoAuditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 50, "Number of videos to analyze")
}

func scoreStyle(score int) lipgloss.Style {
	switch seo.Rating(score) {
	case "good":
		return format.SuccessStyle
	case "fair":
		return format.WarningStyle
	}
	return format.ErrorStyle
}

// collectVideos pages through uploads until limit videos are gathered
func collectVideos(ctx context.Context, svc *services.Set, limit int) ([]yt.Video, error) {
	videos := []yt.Video{}
	pageToken := ""
	for len(videos) < limit {
		page, err := svc.Videos.List(ctx, min(limit-len(videos), 50), pageToken)
		if err != nil {
			return nil, err
		}
		videos = append(videos, page.Videos...)
		pageToken = page.NextPageToken
		if pageToken == "" || len(page.Videos) == 0 {
			break
		}
	}
	if len(videos) > limit {
		videos = videos[:limit]
	}
	return videos, nil
}

func runSEOCheck(cmd *cobra.Command, args []string) error {
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

	score := seo.Analyze(*video)
	out := cmd.OutOrStdout()
	if opts.Format == format.JSON {
		return format.WriteJSON(out, score)
	}

	fmt.Fprintln(out, format.TitleStyle.Render(video.Title))
	fmt.Fprintln(out, video.URL())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "SEO score: %s\n\n", scoreStyle(score.Total).Render(fmt.Sprintf("%d/100 (%s)", score.Total, seo.Rating(score.Total))))

	aspects := []struct {
		name   string
		aspect seo.Aspect
	}{
		{"title", score.TitleScore},
		{"description", score.Description},
		{"tags", score.Tags},
	}
	rows := make([][]string, len(aspects))
	for i, a := range aspects {
		issues := format.SuccessStyle.Render("ok")
		if len(a.aspect.Issues) > 0 {
			issues = strings.Join(a.aspect.Issues, ", ")
		}
		rows[i] = []string{a.name, scoreStyle(a.aspect.Score).Render(strconv.Itoa(a.aspect.Score)), issues}
	}
	fmt.Fprintln(out, format.Grid([]string{"ASPECT", "SCORE", "ISSUES"}, rows, 1))
	return nil
}

func runSEOAudit(cmd *cobra.Command, args []string) error {
	if auditLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", auditLimit)
	}
	opts, err := outputOptions()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context())
	if err != nil {
		return err
	}
	videos, err := collectVideos(cmd.Context(), svc, auditLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(videos) == 0 {
		fmt.Fprintln(out, format.WarningStyle.Render("No videos found"))
		return nil
	}

	audit := seo.AuditVideos(videos)
	if opts.Format == format.JSON {
		return format.WriteJSON(out, audit)
	}

	avg := int(audit.Average)
	fmt.Fprintln(out, format.TitleStyle.Render("SEO Audit")+" "+
		format.MutedStyle.Render(fmt.Sprintf("(%d videos)", len(audit.Videos))))
	fmt.Fprintf(out, "\nAverage score: %s\n", scoreStyle(avg).Render(fmt.Sprintf("%.0f/100", audit.Average)))

	if len(audit.Attention) == 0 {
		fmt.Fprintln(out, "\n"+format.SuccessStyle.Render("All videos have good SEO scores!"))
		return nil
	}

	fmt.Fprintln(out, "\n"+format.TitleStyle.Render("Videos Needing Attention"))
	fmt.Fprintln(out)
	rows := make([][]string, len(audit.Attention))
	for i, s := range audit.Attention {
		rows[i] = []string{
			format.IDStyle.Render(s.VideoID),
			format.Truncate(s.Title, 35),
			scoreStyle(s.Total).Render(strconv.Itoa(s.Total)),
			s.MainIssue(),
		}
	}
	fmt.Fprintln(out, format.Grid([]string{"ID", "TITLE", "SCORE", "MAIN ISSUE"}, rows, 2))
	return nil
}
