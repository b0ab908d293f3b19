package linearapi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"miren.dev/fixme/internal/cache"
	"miren.dev/fixme/internal/extract"
	"miren.dev/fixme/internal/tracker"
)

// Backend files issues into one Linear team.
type Backend struct {
	client  *Client
	teamKey string

	teams  *cache.Cache[string, string]
	labels *cache.Cache[string, []Label]
}

func NewBackend(client *Client, teamKey string) *Backend {
	return &Backend{
		client:  client,
		teamKey: teamKey,
		teams:   cache.New(client.FetchTeamID, cache.DefaultTTL),
		labels:  cache.New(client.FetchLabels, cache.DefaultTTL),
	}
}

func (b *Backend) teamID(ctx context.Context) (string, error) {
	id, err := b.teams.Get(ctx, b.teamKey)
	if err != nil {
		return "", fmt.Errorf("fetch team %s: %w", b.teamKey, err)
	}
	if id == "" {
		return "", fmt.Errorf("team %s not found", b.teamKey)
	}
	return id, nil
}

// ResolveLabels also looks up the team, so issues created afterwards share
// the cached team id.
func (b *Backend) ResolveLabels(ctx context.Context, names map[extract.Kind]string, create bool) (map[extract.Kind]string, error) {
	teamID, err := b.teamID(ctx)
	if err != nil {
		return nil, err
	}

	labels, err := b.labels.Get(ctx, b.teamKey)
	if err != nil {
		return nil, fmt.Errorf("fetch labels for team %s: %w", b.teamKey, err)
	}

	ids := make(map[extract.Kind]string, len(names))
	for _, kind := range extract.Kinds {
		name, ok := names[kind]
		if !ok {
			continue
		}

		if l, found := findLabel(labels, name); found {
			ids[kind] = l.ID
			continue
		}

		if !create {
			return nil, fmt.Errorf("missing label %q for %s in team %s", name, kind, b.teamKey)
		}

		l, err := b.client.CreateLabel(ctx, teamID, name)
		if err != nil {
			return nil, fmt.Errorf("create label %q: %w", name, err)
		}
		slog.Info("created label", "name", name, "team_key", b.teamKey)

		labels = append(labels, *l)
		b.labels.Forget(b.teamKey)
		ids[kind] = l.ID
	}

	return ids, nil
}

func (b *Backend) CreateIssue(ctx context.Context, issue tracker.NewIssue) (*tracker.Created, error) {
	teamID, err := b.teamID(ctx)
	if err != nil {
		return nil, err
	}

	input := IssueInput{
		ID:          uuid.NewString(),
		TeamID:      teamID,
		Title:       issue.Title,
		Description: issue.Description,
	}
	if issue.LabelID != "" {
		input.LabelIDs = []string{issue.LabelID}
	}

	created, err := b.client.CreateIssue(ctx, input)
	if err != nil {
		return nil, err
	}

	id, err := tracker.ParseIdentifier(created.Identifier)
	if err != nil {
		return nil, fmt.Errorf("parse created issue identifier: %w", err)
	}

	return &tracker.Created{Identifier: id, URL: created.URL}, nil
}
