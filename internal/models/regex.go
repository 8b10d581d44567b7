package models

type RegexTestRequest struct {
	Pattern    string `json:"pattern"`
	TestString string `json:"test_string"`
	Flags      string `json:"flags"`
}

// RegexMatch describes one match. Offsets count characters, not bytes.
type RegexMatch struct {
	FullMatch   string             `json:"full_match"`
	Start       int                `json:"start"`
	End         int                `json:"end"`
	Groups      []*string          `json:"groups"`       // nil entries for groups that did not participate
	NamedGroups map[string]*string `json:"named_groups"`
}

type RegexTestResponse struct {
	Success      bool         `json:"success"`
	TotalMatches int          `json:"total_matches"`
	Matches      []RegexMatch `json:"matches"`
	Pattern      string       `json:"pattern"`
	Flags        string       `json:"flags"`
}
