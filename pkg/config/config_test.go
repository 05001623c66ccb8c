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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

const configYAML = `coverageFile: out/coverage-final.json
root: /work/repo
github:
  org: kubernetes
  repo: test-infra
  tokenPath: /etc/github/oauth
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestComplete(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	configPath := writeConfig(t, configYAML)

	testCases := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name: "defaults",
			expected: &Config{
				CoverageFile: "coverage/coverage-final.json",
				Root:         wd,
				GitHub:       GitHub{BotUser: "covbot"},
			},
		},
		{
			name: "config file",
			args: []string{"--config", configPath},
			expected: &Config{
				CoverageFile: "out/coverage-final.json",
				Root:         "/work/repo",
				GitHub: GitHub{
					Org:       "kubernetes",
					Repo:      "test-infra",
					BotUser:   "covbot",
					TokenPath: "/etc/github/oauth",
				},
			},
		},
		{
			name: "explicit flags win over config file",
			args: []string{"--config", configPath, "--root", "/other", "--repo", "infra", "--bot-user", "k8s-ci-robot"},
			expected: &Config{
				CoverageFile: "out/coverage-final.json",
				Root:         "/other",
				GitHub: GitHub{
					Org:       "kubernetes",
					Repo:      "infra",
					BotUser:   "k8s-ci-robot",
					TokenPath: "/etc/github/oauth",
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := &Options{}
			fs := pflag.NewFlagSet(tc.name, pflag.ContinueOnError)
			o.AddFlags(fs)
			o.AddGitHubFlags(fs)
			if err := fs.Parse(tc.args); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}
			actual, err := o.Complete(fs)
			if err != nil {
				t.Fatalf("Complete failed: %v", err)
			}
			if diff := cmp.Diff(tc.expected, actual); diff != "" {
				t.Errorf("unexpected config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	if _, err := Load(writeConfig(t, "coverage: foo\n")); err == nil {
		t.Error("expected an error for an unknown field")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestValidateGitHub(t *testing.T) {
	valid := Config{GitHub: GitHub{Org: "o", Repo: "r", TokenPath: "t"}}
	if err := valid.ValidateGitHub(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for name, mutate := range map[string]func(*Config){
		"no org":   func(c *Config) { c.GitHub.Org = "" },
		"no repo":  func(c *Config) { c.GitHub.Repo = "" },
		"no token": func(c *Config) { c.GitHub.TokenPath = "" },
	} {
		c := valid
		mutate(&c)
		if err := c.ValidateGitHub(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
