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

// Package config knows how to read and complete covreport configuration.
// Values come from defaults, then an optional YAML file, then explicitly set flags.
package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"k8s.io/covreport/pkg/cov/istanbul"
)

// Component names covreport in logs.
const Component = "covreport"

// DefaultBotUser is the GitHub login whose earlier comments are replaced.
const DefaultBotUser = "covbot"

// Config is the complete covreport configuration.
type Config struct {
	// CoverageFile is the Istanbul coverage-final.json report.
	CoverageFile string `json:"coverageFile,omitempty"`
	// Root is the absolute directory changed files are relative to.
	// Defaults to the working directory.
	Root   string `json:"root,omitempty"`
	GitHub GitHub `json:"github,omitempty"`
}

// GitHub identifies where the coverage robot posts.
type GitHub struct {
	Org       string `json:"org,omitempty"`
	Repo      string `json:"repo,omitempty"`
	BotUser   string `json:"botUser,omitempty"`
	TokenPath string `json:"tokenPath,omitempty"`
}

// Load reads a YAML config file. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	c := &Config{}
	if err := yaml.UnmarshalStrict(buf, c); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return c, nil
}

// ValidateGitHub checks that everything needed to post a comment is set.
func (c *Config) ValidateGitHub() error {
	if c.GitHub.Org == "" {
		return errors.New("github org is required")
	}
	if c.GitHub.Repo == "" {
		return errors.New("github repo is required")
	}
	if c.GitHub.TokenPath == "" {
		return errors.New("github token path is required")
	}
	return nil
}

// Options holds the flags shared by every command.
type Options struct {
	ConfigPath   string
	CoverageFile string
	Root         string
	LogLevel     string
	GitHub       GitHub
}

// AddFlags binds the common flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", "", "Path to an optional YAML config file.")
	fs.StringVar(&o.CoverageFile, "coverage-file", istanbul.DefaultPath, "Istanbul coverage-final.json report.")
	fs.StringVar(&o.Root, "root", "", "Directory changed files are relative to. Defaults to the working directory.")
	fs.StringVar(&o.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of %v.", []string{"debug", "info", "warn", "error"}))
}

// AddGitHubFlags binds the flags identifying the repository to comment on.
func (o *Options) AddGitHubFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.GitHub.Org, "org", "", "GitHub org of the pull request.")
	fs.StringVar(&o.GitHub.Repo, "repo", "", "GitHub repo of the pull request.")
	fs.StringVar(&o.GitHub.BotUser, "bot-user", DefaultBotUser, "GitHub login of the coverage robot.")
	fs.StringVar(&o.GitHub.TokenPath, "token-path", "", "Path to a file holding the GitHub token.")
}

// Complete builds the effective Config. A flag overrides the config file only
// when it was set explicitly, or when the file leaves the value empty.
func (o *Options) Complete(fs *pflag.FlagSet) (*Config, error) {
	c := &Config{}
	if o.ConfigPath != "" {
		loaded, err := Load(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	override(fs, "coverage-file", &c.CoverageFile, o.CoverageFile)
	override(fs, "root", &c.Root, o.Root)
	override(fs, "org", &c.GitHub.Org, o.GitHub.Org)
	override(fs, "repo", &c.GitHub.Repo, o.GitHub.Repo)
	override(fs, "bot-user", &c.GitHub.BotUser, o.GitHub.BotUser)
	override(fs, "token-path", &c.GitHub.TokenPath, o.GitHub.TokenPath)

	if c.CoverageFile == "" {
		c.CoverageFile = istanbul.DefaultPath
	}
	if c.GitHub.BotUser == "" {
		c.GitHub.BotUser = DefaultBotUser
	}
	if c.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to determine working directory")
		}
		c.Root = wd
	}
	return c, nil
}

func override(fs *pflag.FlagSet, name string, dst *string, value string) {
	if fs.Lookup(name) == nil {
		return
	}
	if fs.Changed(name) || *dst == "" {
		*dst = value
	}
}
