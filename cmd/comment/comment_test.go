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
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-github/github"

	"k8s.io/covreport/pkg/githubutil"
	"k8s.io/covreport/pkg/githubutil/githubfakes"
)

type fixture struct {
	fake   *githubfakes.FakeGithub
	report string
	token  string
	out    string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		fake: &githubfakes.FakeGithub{
			Files: []*github.CommitFile{
				githubfakes.CommitFile("src/a.js", "modified"),
				githubfakes.CommitFile("src/gone.js", "removed"),
			},
		},
		report: filepath.Join(dir, "coverage-final.json"),
		token:  filepath.Join(dir, "oauth"),
		out:    filepath.Join(dir, "comment.md"),
	}
	if err := os.WriteFile(f.report, []byte(`{"/repo/src/a.js": {"s": {"0": 1}, "f": {}, "b": {}}}`), 0644); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}
	if err := os.WriteFile(f.token, []byte("secret-token\n"), 0600); err != nil {
		t.Fatalf("failed to write token: %v", err)
	}

	old := newClient
	newClient = func(ctx context.Context, token string) *githubutil.Client {
		if token != "secret-token" {
			t.Errorf("unexpected token %q", token)
		}
		return f.fake.FakeClient()
	}
	t.Cleanup(func() { newClient = old })
	return f
}

func (f *fixture) execute(args ...string) error {
	cmd := MakeCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{
		"--coverage-file", f.report,
		"--root", "/repo",
		"--org", "kubernetes",
		"--repo", "test-infra",
		"--token-path", f.token,
		"-o", f.out,
	}, args...))
	return cmd.Execute()
}

func TestDryRunListsFilesFromPullRequest(t *testing.T) {
	f := setup(t)
	if err := f.execute("--pr", "7"); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	out, err := os.ReadFile(f.out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(out), "src/a.js | 🎉 100% | 🎉 100% | 🎉 100%") {
		t.Errorf("expected a row for src/a.js, got:\n%s", out)
	}
	if strings.Contains(string(out), "src/gone.js") {
		t.Errorf("removed files should not be reported, got:\n%s", out)
	}
	if len(f.fake.Comments) != 0 {
		t.Errorf("dry run should not post, got %d comments", len(f.fake.Comments))
	}
}

func TestDryRunWithFilesNeedsNoGitHub(t *testing.T) {
	f := setup(t)
	newClient = func(ctx context.Context, token string) *githubutil.Client {
		t.Fatal("github should not be contacted")
		return nil
	}
	if err := f.execute("docs/README.md"); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	out, err := os.ReadFile(f.out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(out), "docs/README.md | Excluded | Excluded | Excluded") {
		t.Errorf("expected an excluded row, got:\n%s", out)
	}
}

func TestConfirmReplacesBotComments(t *testing.T) {
	f := setup(t)
	f.fake.Comments = []*github.IssueComment{
		f.fake.Comment("covbot", "stale report"),
		f.fake.Comment("reviewer", "/lgtm"),
	}
	if err := f.execute("--pr", "7", "--confirm"); err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if len(f.fake.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(f.fake.Comments))
	}
	if f.fake.Comments[0].GetBody() != "/lgtm" {
		t.Errorf("expected the reviewer comment to survive, got %q", f.fake.Comments[0].GetBody())
	}
	if body := f.fake.Comments[1].GetBody(); !strings.HasPrefix(body, "The following is the code coverage report") {
		t.Errorf("unexpected posted comment:\n%s", body)
	}
	if _, err := os.Stat(f.out); !os.IsNotExist(err) {
		t.Errorf("confirmed run should not write %s", f.out)
	}
}

func TestMissingPullRequestNumber(t *testing.T) {
	f := setup(t)
	if err := f.execute(); err == nil {
		t.Error("expected an error without --pr")
	}
}
