package linearapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const defaultEndpoint = "https://api.linear.app/graphql"

type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetEndpoint overrides the GraphQL endpoint (useful for testing).
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

const teamByKeyQuery = `
query TeamByKey($teamKey: String!) {
  teams(filter: { key: { eq: $teamKey } }, first: 1) {
    nodes {
      id
      key
      name
    }
  }
}
`

// Workspace labels have no team and are usable from every team.
const teamLabelsQuery = `
query TeamLabels($teamKey: String!) {
  issueLabels(
    filter: {
      or: [
        { team: { key: { eq: $teamKey } } }
        { team: { null: true } }
      ]
    }
    first: 250
  ) {
    nodes {
      id
      name
      color
    }
  }
}
`

const createLabelMutation = `
mutation CreateLabel($teamID: String!, $name: String!) {
  issueLabelCreate(input: { teamId: $teamID, name: $name }) {
    success
    issueLabel {
      id
      name
      color
    }
  }
}
`

const createIssueMutation = `
mutation IssueCreate($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    success
    issue {
      id
      identifier
      url
    }
  }
}
`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) do(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	reqBody := graphQLRequest{
		Query:     query,
		Variables: variables,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linear API returned %d: %s", resp.StatusCode, string(respBytes))
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBytes, &gqlResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("linear API error: %s", gqlResp.Errors[0].Message)
	}

	return gqlResp.Data, nil
}

// FetchTeamID returns the UUID of the team with the given key.
// Returns "", nil if there is no such team.
func (c *Client) FetchTeamID(ctx context.Context, teamKey string) (string, error) {
	data, err := c.do(ctx, teamByKeyQuery, map[string]any{
		"teamKey": teamKey,
	})
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(data, "teams.nodes.0.id").String(), nil
}

// FetchLabels lists the labels usable by a team, workspace labels included.
func (c *Client) FetchLabels(ctx context.Context, teamKey string) ([]Label, error) {
	data, err := c.do(ctx, teamLabelsQuery, map[string]any{
		"teamKey": teamKey,
	})
	if err != nil {
		return nil, err
	}

	nodes := gjson.GetBytes(data, "issueLabels.nodes")
	if !nodes.IsArray() {
		return nil, fmt.Errorf("decode label data: missing issueLabels.nodes")
	}

	var labels []Label
	for _, n := range nodes.Array() {
		labels = append(labels, Label{
			ID:    n.Get("id").String(),
			Name:  n.Get("name").String(),
			Color: n.Get("color").String(),
		})
	}
	return labels, nil
}

// CreateLabel adds a label to a team.
func (c *Client) CreateLabel(ctx context.Context, teamID, name string) (*Label, error) {
	data, err := c.do(ctx, createLabelMutation, map[string]any{
		"teamID": teamID,
		"name":   name,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		IssueLabelCreate struct {
			Success    bool `json:"success"`
			IssueLabel *struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Color string `json:"color"`
			} `json:"issueLabel"`
		} `json:"issueLabelCreate"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode label data: %w", err)
	}

	l := resp.IssueLabelCreate.IssueLabel
	if !resp.IssueLabelCreate.Success || l == nil {
		return nil, fmt.Errorf("failed to create label %q", name)
	}
	return &Label{ID: l.ID, Name: l.Name, Color: l.Color}, nil
}

// CreateIssue files a new issue.
func (c *Client) CreateIssue(ctx context.Context, input IssueInput) (*CreatedIssue, error) {
	data, err := c.do(ctx, createIssueMutation, map[string]any{
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		IssueCreate struct {
			Success bool          `json:"success"`
			Issue   *CreatedIssue `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode issue data: %w", err)
	}

	if !resp.IssueCreate.Success || resp.IssueCreate.Issue == nil {
		return nil, fmt.Errorf("failed to create issue")
	}
	return resp.IssueCreate.Issue, nil
}
