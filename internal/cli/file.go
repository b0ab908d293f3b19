package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"miren.dev/fixme/internal/config"
	"miren.dev/fixme/internal/extract"
	"miren.dev/fixme/internal/github"
	"miren.dev/fixme/internal/linearapi"
	"miren.dev/fixme/internal/report"
	"miren.dev/fixme/internal/source"
	"miren.dev/fixme/internal/tracker"
)

// newBackend is replaced in tests.
var newBackend = func(p *config.Profile) (tracker.Backend, error) {
	switch p.Tracker {
	case config.TrackerLinear:
		return linearapi.NewBackend(linearapi.NewClient(p.APIKey), p.TeamKey), nil
	case config.TrackerGitHub:
		owner, repo, err := p.RepoParts()
		if err != nil {
			return nil, err
		}
		return github.NewBackend(p.APIKey, owner, repo), nil
	default:
		return nil, fmt.Errorf("unsupported tracker %q", p.Tracker)
	}
}

func newFileCmd(opts *options) *cobra.Command {
	var (
		profileName  string
		apply        bool
		createLabels bool
	)

	cmd := &cobra.Command{
		Use:   "file <file>...",
		Short: "File the FIXME and TODO comments found in files as tracker issues",
		Long: `file extracts FIXME and TODO comments and creates one tracker issue per comment.
Without --apply it only lists what would be filed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			lists, errs := source.ExtractFiles(args)
			var issues []extract.Issue
			for _, list := range lists {
				issues = append(issues, list.Issues...)
			}

			if len(issues) == 0 {
				fmt.Fprintln(out, "no issues found")
				return unreadable(errs)
			}

			if !apply {
				fmt.Fprintf(out, "dry-run: would file %d issues:\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(out, "  %s\t%s\t%s\n", issue.Kind, tracker.Location(issue), tracker.Title(issue))
				}
				fmt.Fprintf(out, "\nre-run with --apply to file these issues\n")
				return unreadable(errs)
			}

			profile, err := opts.cfg.Profile(profileName)
			if err != nil {
				return err
			}
			backend, err := newBackend(profile)
			if err != nil {
				return err
			}

			filer := tracker.NewFiler(backend, opts.cfg.LabelNames.Map(), opts.cfg.Concurrency)
			filer.SetCreateLabels(createLabels)

			slog.Info("filing issues", "count", len(issues), "profile", profile.Name, "tracker", profile.Tracker)
			results, err := filer.File(cmd.Context(), issues)
			if err != nil {
				return err
			}

			failed, err := report.Results(out, results)
			if err != nil {
				return err
			}
			if failed > 0 {
				return errors.Join(fmt.Errorf("%d of %d issues failed to file", failed, len(results)), unreadable(errs))
			}
			slog.Info("filing complete", "filed", len(results))
			return unreadable(errs)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "config profile to file with (default: last profile)")
	cmd.Flags().BoolVar(&apply, "apply", false, "actually create the issues (default is dry-run)")
	cmd.Flags().BoolVar(&createLabels, "create-labels", false, "create missing FIXME/TODO labels in the tracker")
	return cmd
}
