package linearapi

type Label struct {
	ID    string
	Name  string
	Color string
}

// IssueInput is the subset of IssueCreateInput sent when filing. ID is a
// client-chosen issue UUID.
type IssueInput struct {
	ID          string   `json:"id,omitempty"`
	TeamID      string   `json:"teamId"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
}

type CreatedIssue struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	URL        string `json:"url"`
}

func findLabel(labels []Label, name string) (Label, bool) {
	for _, l := range labels {
		if l.Name == name {
			return l, true
		}
	}
	return Label{}, false
}
