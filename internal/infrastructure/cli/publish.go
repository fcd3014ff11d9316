package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/reqgate/pkg/application"
)

type publishOptions struct {
	results   string
	output    string
	sha       string
	pr        int
	targetURL string
}

func newPublishCmd() *cobra.Command {
	opts := &publishOptions{}
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the quality gate verdict to GitHub",
		Long: `Publish the quality gate verdict to GitHub.

Evaluates the prompt-evaluation results, sets the reqgate/quality-gate commit
status and, with --pr, comments the Markdown report on the pull request.
Uses GITHUB_TOKEN, GITHUB_REPOSITORY and GITHUB_SHA. The command fails only
when publishing fails; the verdict itself is carried by the commit status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.results, "results", "r", "", "Prompt-evaluation result file (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Directory for quality reports (default from config)")
	cmd.Flags().StringVar(&opts.sha, "sha", "", "Commit to set the status on (default $GITHUB_SHA)")
	cmd.Flags().IntVar(&opts.pr, "pr", 0, "Pull request number to comment the report on")
	cmd.Flags().StringVar(&opts.targetURL, "target-url", "", "Link attached to the commit status")
	return cmd
}

func runPublish(cmd *cobra.Command, opts *publishOptions) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	ctx := contextOf(cmd)

	publisher, err := wiring.BuildPublishService(ctx, ws)
	if err != nil {
		return err
	}

	out, err := wiring.BuildAppServices(ws).Gate.Run(ctx,
		firstNonEmpty(opts.results, ws.Config.ResultsFile),
		firstNonEmpty(opts.output, ws.Config.OutputDir))
	if err != nil {
		return err
	}

	req := application.PublishRequest{
		SHA:         firstNonEmpty(opts.sha, ws.Config.GitHub.SHA),
		PullRequest: opts.pr,
		TargetURL:   opts.targetURL,
	}
	if err := publisher.Publish(ctx, out.Report, out.Markdown, req); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published %s to %s@%s\n",
		verdict(out.Report.Summary.Passed), ws.Config.GitHub.Repository, req.SHA)
	return nil
}
