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

package overall

import (
	"github.com/spf13/cobra"

	"k8s.io/covreport/pkg/config"
	"k8s.io/covreport/pkg/logrusutil"
	"k8s.io/covreport/pkg/report"
	"k8s.io/covreport/pkg/util"
)

type flags struct {
	config.Options
	outputFile string
}

// MakeCommand returns an `overall` command.
func MakeCommand() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:   "overall",
		Short: "Summarize repository-wide coverage as a markdown table.",
		Long: `Reads an Istanbul coverage-final.json report and renders one markdown table
with the statement, branch and function coverage of the whole repository.
A missing or unreadable report is treated as empty.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, cmd)
		},
	}
	flags.AddFlags(cmd.Flags())
	cmd.Flags().StringVarP(&flags.outputFile, "output", "o", "-", "output file")
	return cmd
}

func run(flags *flags, cmd *cobra.Command) error {
	if err := logrusutil.Init(config.Component, flags.LogLevel); err != nil {
		return err
	}
	cfg, err := flags.Complete(cmd.Flags())
	if err != nil {
		return err
	}
	return util.WriteOutput(flags.outputFile, report.Load(cfg.CoverageFile, cfg.Root).OverallCoverage())
}
