package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"miren.dev/fixme/internal/extract"
)

// Result is the outcome of filing one issue. Exactly one of Created and Err
// is set.
type Result struct {
	Issue   extract.Issue
	Created *Created
	Err     error
}

type Filer struct {
	backend      Backend
	labelNames   map[extract.Kind]string
	concurrency  int
	createLabels bool
}

func NewFiler(backend Backend, labelNames map[extract.Kind]string, concurrency int) *Filer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Filer{
		backend:     backend,
		labelNames:  labelNames,
		concurrency: concurrency,
	}
}

// SetCreateLabels makes File create labels the tracker does not have yet.
func (f *Filer) SetCreateLabels(create bool) {
	f.createLabels = create
}

// File submits every issue to the backend. Labels are resolved first and a
// failure there fails the whole run; after that each issue succeeds or
// fails on its own. Results are in the order of issues.
func (f *Filer) File(ctx context.Context, issues []extract.Issue) ([]Result, error) {
	if len(issues) == 0 {
		return nil, nil
	}

	names := make(map[extract.Kind]string)
	for _, issue := range issues {
		name, ok := f.labelNames[issue.Kind]
		if !ok {
			name = issue.Kind.String()
		}
		names[issue.Kind] = name
	}

	labels, err := f.backend.ResolveLabels(ctx, names, f.createLabels)
	if err != nil {
		return nil, fmt.Errorf("resolve labels: %w", err)
	}

	results := make([]Result, len(issues))
	sem := make(chan struct{}, f.concurrency)
	var wg sync.WaitGroup

	for i, issue := range issues {
		i, issue := i, issue
		results[i].Issue = issue

		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return
			}
			defer func() { <-sem }()

			created, err := f.backend.CreateIssue(ctx, NewIssue{
				Kind:        issue.Kind,
				Title:       Title(issue),
				Description: Description(issue),
				LabelID:     labels[issue.Kind],
			})
			if err != nil {
				slog.Error("create issue", "location", Location(issue), "error", err)
				results[i].Err = fmt.Errorf("create issue for %s: %w", Location(issue), err)
				return
			}

			slog.Info("filed issue", "identifier", created.Identifier.String(), "location", Location(issue))
			results[i].Created = created
		}()
	}

	wg.Wait()
	return results, nil
}
