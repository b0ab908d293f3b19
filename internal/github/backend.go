package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"miren.dev/fixme/internal/extract"
	"miren.dev/fixme/internal/tracker"
)

// Backend files issues into one GitHub repository. GitHub addresses labels
// by name, so label ids are the label names.
type Backend struct {
	client *gh.Client
	owner  string
	repo   string
}

func NewBackend(token, owner, repo string) *Backend {
	return NewBackendWithClient(gh.NewClient(nil).WithAuthToken(token), owner, repo)
}

func NewBackendWithClient(client *gh.Client, owner, repo string) *Backend {
	return &Backend{
		client: client,
		owner:  owner,
		repo:   repo,
	}
}

func (b *Backend) ResolveLabels(ctx context.Context, names map[extract.Kind]string, create bool) (map[extract.Kind]string, error) {
	ids := make(map[extract.Kind]string, len(names))
	for _, kind := range extract.Kinds {
		name, ok := names[kind]
		if !ok {
			continue
		}

		_, resp, err := b.client.Issues.GetLabel(ctx, b.owner, b.repo, name)
		switch {
		case err == nil:
			ids[kind] = name
			continue
		case !isNotFound(resp, err):
			return nil, fmt.Errorf("get label %q: %w", name, err)
		case !create:
			return nil, fmt.Errorf("missing label %q for %s in %s/%s", name, kind, b.owner, b.repo)
		}

		if _, _, err := b.client.Issues.CreateLabel(ctx, b.owner, b.repo, &gh.Label{Name: gh.String(name)}); err != nil {
			return nil, fmt.Errorf("create label %q: %w", name, err)
		}
		slog.Info("created label", "name", name, "repo", b.owner+"/"+b.repo)
		ids[kind] = name
	}
	return ids, nil
}

func (b *Backend) CreateIssue(ctx context.Context, issue tracker.NewIssue) (*tracker.Created, error) {
	req := &gh.IssueRequest{
		Title: gh.String(issue.Title),
		Body:  gh.String(issue.Description),
	}
	if issue.LabelID != "" {
		req.Labels = &[]string{issue.LabelID}
	}

	created, _, err := b.client.Issues.Create(ctx, b.owner, b.repo, req)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	if created.GetNumber() == 0 {
		return nil, fmt.Errorf("create issue: response has no issue number")
	}

	return &tracker.Created{
		Identifier: tracker.Identifier{Prefix: b.repo, Number: created.GetNumber()},
		URL:        created.GetHTMLURL(),
	}, nil
}

func isNotFound(resp *gh.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}
