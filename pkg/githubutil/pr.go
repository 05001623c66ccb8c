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

package githubutil

import (
	"context"

	"github.com/google/go-github/github"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

const perPage = 100

// Deleted files cannot have coverage, so they are left out of the report.
var skippedStatuses = sets.NewString("removed")

// PullRequest identifies a github pull request and the robot commenting on it
type PullRequest struct {
	BotUser string
	Org     string
	Repo    string
	Number  int
	Client  *Client
}

func (pr *PullRequest) logger() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"org":  pr.Org,
		"repo": pr.Repo,
		"pr":   pr.Number,
	})
}

// ChangedFiles lists the repo-relative paths of files touched by the pull request,
// in the order github returns them.
func (pr *PullRequest) ChangedFiles(ctx context.Context) ([]string, error) {
	var files []string
	opt := &github.ListOptions{PerPage: perPage}
	for {
		var commitFiles []*github.CommitFile
		resp, err := pr.Client.retry(ctx, "listing pull request files", func() (*github.Response, error) {
			var resp *github.Response
			var err error
			commitFiles, resp, err = pr.Client.PullRequests.ListFiles(ctx, pr.Org, pr.Repo, pr.Number, opt)
			return resp, err
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list files of %s/%s#%d", pr.Org, pr.Repo, pr.Number)
		}
		for _, f := range commitFiles {
			if skippedStatuses.Has(f.GetStatus()) {
				pr.logger().WithField("file", f.GetFilename()).Debug("Skipping removed file.")
				continue
			}
			files = append(files, f.GetFilename())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	pr.logger().Infof("Found %d changed files.", len(files))
	return files, nil
}

func (pr *PullRequest) postComment(ctx context.Context, content string) error {
	pr.logger().Info("Posting coverage comment.")
	commentBody := &github.IssueComment{Body: &content}
	_, err := pr.Client.retry(ctx, "creating comment", func() (*github.Response, error) {
		_, resp, err := pr.Client.Issues.CreateComment(ctx, pr.Org, pr.Repo, pr.Number, commentBody)
		return resp, err
	})
	if err != nil {
		return errors.Wrapf(err, "failed to comment on %s/%s#%d", pr.Org, pr.Repo, pr.Number)
	}
	return nil
}

func (pr *PullRequest) removeAllBotComments(ctx context.Context) (int, error) {
	var botComments []*github.IssueComment
	opt := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		var comments []*github.IssueComment
		resp, err := pr.Client.retry(ctx, "listing comments", func() (*github.Response, error) {
			var resp *github.Response
			var err error
			comments, resp, err = pr.Client.Issues.ListComments(ctx, pr.Org, pr.Repo, pr.Number, opt)
			return resp, err
		})
		if err != nil {
			return 0, errors.Wrapf(err, "failed to list comments of %s/%s#%d", pr.Org, pr.Repo, pr.Number)
		}
		for _, cmt := range comments {
			if cmt.GetUser().GetLogin() == pr.BotUser {
				botComments = append(botComments, cmt)
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	// Deleting while paging shifts later pages.
	nRemoved := 0
	for _, cmt := range botComments {
		_, err := pr.Client.retry(ctx, "deleting comment", func() (*github.Response, error) {
			return pr.Client.Issues.DeleteComment(ctx, pr.Org, pr.Repo, cmt.GetID())
		})
		if err != nil {
			return nRemoved, errors.Wrapf(err, "failed to delete comment %d", cmt.GetID())
		}
		nRemoved++
	}

	pr.logger().Infof("Removed %d comments by robot <%s>", nRemoved, pr.BotUser)
	return nRemoved, nil
}

// CleanAndPostComment removes all existing bot comments, and then creates a new comment on the pull request
func (pr *PullRequest) CleanAndPostComment(ctx context.Context, content string) error {
	if _, err := pr.removeAllBotComments(ctx); err != nil {
		return err
	}
	return pr.postComment(ctx, content)
}
