/*
Copyright 2022 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package comment

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"

	"k8s.io/covreport/pkg/config"
	"k8s.io/covreport/pkg/githubutil"
	"k8s.io/covreport/pkg/logrusutil"
	"k8s.io/covreport/pkg/report"
	"k8s.io/covreport/pkg/util"
)

type flags struct {
	config.Options
	pr         int
	confirm    bool
	outputFile string
}

// newClient is swapped out in tests.
var newClient = githubutil.Make

// MakeCommand returns a `comment` command.
func MakeCommand() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:   "comment [files...]",
		Short: "Compose the coverage robot comment for a pull request.",
		Long: `Composes the overall and changed-file coverage tables into one comment.
Changed files are taken from the arguments, or listed from the pull request
when none are given. By default the comment is only printed; add --confirm to
replace earlier robot comments on the pull request with it.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return run(ctx, flags, cmd, args)
		},
	}
	flags.AddFlags(cmd.Flags())
	flags.AddGitHubFlags(cmd.Flags())
	cmd.Flags().IntVar(&flags.pr, "pr", 0, "pull request number")
	cmd.Flags().BoolVar(&flags.confirm, "confirm", false, "post the comment to github if set")
	cmd.Flags().StringVarP(&flags.outputFile, "output", "o", "-", "output file for the dry-run comment")
	return cmd
}

func run(ctx context.Context, flags *flags, cmd *cobra.Command, args []string) error {
	if err := logrusutil.Init(config.Component, flags.LogLevel); err != nil {
		return err
	}
	cfg, err := flags.Complete(cmd.Flags())
	if err != nil {
		return err
	}

	files := args
	var pr *githubutil.PullRequest
	if flags.confirm || len(files) == 0 {
		if pr, err = pullRequest(ctx, cfg, flags.pr); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		if files, err = pr.ChangedFiles(ctx); err != nil {
			return err
		}
	}

	body := report.Load(cfg.CoverageFile, cfg.Root).Comment(files)
	if !flags.confirm {
		logrus.Info("Dry run, printing the comment. Pass --confirm to post it.")
		return util.WriteOutput(flags.outputFile, body)
	}
	return pr.CleanAndPostComment(ctx, body)
}

func pullRequest(ctx context.Context, cfg *config.Config, number int) (*githubutil.PullRequest, error) {
	if number <= 0 {
		return nil, errors.New("--pr must be a positive pull request number")
	}
	if err := cfg.ValidateGitHub(); err != nil {
		return nil, err
	}
	token, err := githubutil.LoadToken(cfg.GitHub.TokenPath)
	if err != nil {
		return nil, err
	}
	logrus.SetFormatter(logrusutil.NewCensoringFormatter(logrus.StandardLogger().Formatter, func() sets.String {
		return sets.NewString(token)
	}))

	return &githubutil.PullRequest{
		BotUser: cfg.GitHub.BotUser,
		Org:     cfg.GitHub.Org,
		Repo:    cfg.GitHub.Repo,
		Number:  number,
		Client:  newClient(ctx, token),
	}, nil
}
