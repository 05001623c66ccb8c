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

// Package githubfakes provides in-memory implementations of the githubutil client interfaces.
package githubfakes

import (
	"context"

	"github.com/google/go-github/github"

	"k8s.io/covreport/pkg/githubutil"
)

// FakeGithub records comments in memory and serves a fixed list of pull request
// files, PageSize items per page.
type FakeGithub struct {
	Files    []*github.CommitFile
	Comments []*github.IssueComment
	PageSize int

	// ListFilesErr, when set, is returned by ListFiles.
	ListFilesErr error
	// DeleteCommentErr, when set, is returned by DeleteComment.
	DeleteCommentErr error

	Deleted []int64
	nextID  int64
}

// FakeClient returns a githubutil.Client backed by f.
func (f *FakeGithub) FakeClient() *githubutil.Client {
	return githubutil.New(f, f)
}

// CommitFile builds a pull request file entry.
func CommitFile(filename, status string) *github.CommitFile {
	return &github.CommitFile{
		Filename: &filename,
		Status:   &status,
	}
}

// Comment builds an issue comment authored by login.
func (f *FakeGithub) Comment(login, body string) *github.IssueComment {
	f.nextID++
	id := f.nextID
	return &github.IssueComment{
		ID:   &id,
		Body: &body,
		User: &github.User{Login: &login},
	}
}

func (f *FakeGithub) page(page, n int) (int, int, *github.Response) {
	size := f.PageSize
	if size <= 0 {
		size = n
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	resp := &github.Response{}
	if end < n {
		resp.NextPage = page + 1
	}
	return start, end, resp
}

// ListFiles implements PullRequests.
func (f *FakeGithub) ListFiles(ctx context.Context, owner string, repo string, number int, opt *github.ListOptions) (
	[]*github.CommitFile, *github.Response, error) {
	if f.ListFilesErr != nil {
		return nil, nil, f.ListFilesErr
	}
	start, end, resp := f.page(opt.Page, len(f.Files))
	return f.Files[start:end], resp, nil
}

// CreateComment implements Issues.
func (f *FakeGithub) CreateComment(ctx context.Context, owner string, repo string,
	number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	c := f.Comment("", comment.GetBody())
	c.User = comment.User
	f.Comments = append(f.Comments, c)
	return c, nil, nil
}

// DeleteComment implements Issues.
func (f *FakeGithub) DeleteComment(ctx context.Context, owner string, repo string,
	commentID int64) (*github.Response, error) {
	if f.DeleteCommentErr != nil {
		return nil, f.DeleteCommentErr
	}
	for i, c := range f.Comments {
		if c.GetID() == commentID {
			f.Comments = append(f.Comments[:i], f.Comments[i+1:]...)
			f.Deleted = append(f.Deleted, commentID)
			return nil, nil
		}
	}
	return nil, nil
}

// ListComments implements Issues.
func (f *FakeGithub) ListComments(ctx context.Context, owner string, repo string, number int,
	opt *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error) {
	page := 1
	if opt != nil {
		page = opt.Page
	}
	start, end, resp := f.page(page, len(f.Comments))
	out := make([]*github.IssueComment, end-start)
	copy(out, f.Comments[start:end])
	return out, resp, nil
}
