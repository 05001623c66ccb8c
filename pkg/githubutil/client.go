/*
Copyright 2018 The Kubernetes Authors.

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

// Package githubutil lists the files of a pull request and posts the coverage robot comment on it.
package githubutil

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/go-github/github"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Client stores all github client objects used by the coverage robot
type Client struct {
	Issues       Issues
	PullRequests PullRequests

	// Retries is how many times a failed call is retried, with exponential
	// backoff starting at RetryInitialBackoff.
	Retries             int
	RetryInitialBackoff time.Duration
}

// New constructs a Client that does not retry
func New(issues Issues, pullRequests PullRequests) *Client {
	return &Client{Issues: issues, PullRequests: pullRequests}
}

// Make makes & gets a github client
func Make(ctx context.Context, token string) *Client {
	if len(token) == 0 {
		logrus.Warn("GitHub token is empty, requests will be unauthenticated.")
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	c := New(client.Issues, client.PullRequests)
	c.Retries = 5
	c.RetryInitialBackoff = time.Second
	return c
}

// LoadToken reads a GitHub token from a file, dropping surrounding whitespace.
func LoadToken(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read github token from %s", path)
	}
	token := strings.TrimSpace(string(buf))
	if token == "" {
		return "", errors.Errorf("github token file %s is empty", path)
	}
	return token, nil
}

// Issues collects operations on github issues and allows fake implementation to happen
type Issues interface {
	CreateComment(ctx context.Context, owner string, repo string, number int,
		comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
	DeleteComment(ctx context.Context, owner string, repo string, commentID int64) (
		*github.Response, error)
	ListComments(ctx context.Context, owner string, repo string, number int,
		opt *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error)
}

// PullRequests collects methods on github pull requests and allows fake implementation
type PullRequests interface {
	ListFiles(ctx context.Context, owner string, repo string, number int, opt *github.ListOptions) (
		[]*github.CommitFile, *github.Response, error)
}
