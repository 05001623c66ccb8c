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

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"k8s.io/covreport/cmd/changes"
	"k8s.io/covreport/cmd/comment"
	"k8s.io/covreport/cmd/overall"
)

var rootCommand = &cobra.Command{
	Use:           "covreport",
	Short:         "covreport renders Istanbul coverage as markdown tables for pull request comments.",
	SilenceErrors: true,
}

func run() error {
	rootCommand.AddCommand(overall.MakeCommand())
	rootCommand.AddCommand(changes.MakeCommand())
	rootCommand.AddCommand(comment.MakeCommand())
	return rootCommand.Execute()
}

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("covreport failed")
	}
}
