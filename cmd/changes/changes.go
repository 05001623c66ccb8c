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

package changes

import (
	"github.com/spf13/cobra"

	"k8s.io/covreport/pkg/config"
	"k8s.io/covreport/pkg/logrusutil"
	"k8s.io/covreport/pkg/report"
	"k8s.io/covreport/pkg/util"
)

type flags struct {
	config.Options
	filesFrom  string
	outputFile string
}

// MakeCommand returns a `changes` command.
func MakeCommand() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:   "changes [files...]",
		Short: "Summarize the coverage of changed files as a markdown table.",
		Long: `Renders one markdown table row per changed file. Files are given relative
to --root, as arguments and/or one per line in --files-from ("-" for stdin).
Files missing from the coverage report are marked Excluded. With no files the
output is "No files".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, cmd, args)
		},
	}
	flags.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&flags.filesFrom, "files-from", "", "file listing changed files, one per line, or - for stdin")
	cmd.Flags().StringVarP(&flags.outputFile, "output", "o", "-", "output file")
	return cmd
}

func run(flags *flags, cmd *cobra.Command, args []string) error {
	if err := logrusutil.Init(config.Component, flags.LogLevel); err != nil {
		return err
	}
	cfg, err := flags.Complete(cmd.Flags())
	if err != nil {
		return err
	}

	files := append([]string{}, args...)
	if flags.filesFrom != "" {
		listed, err := util.ReadLines(flags.filesFrom)
		if err != nil {
			return err
		}
		files = append(files, listed...)
	}

	return util.WriteOutput(flags.outputFile, report.Load(cfg.CoverageFile, cfg.Root).ChangeCoverage(files))
}
