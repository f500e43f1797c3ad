package model

// RepositoryEntry is a normalized, displayable GitHub repository.
// PushedAt is an ISO-8601 timestamp, empty when GitHub has none.
type RepositoryEntry struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stargazers_count"`
	PushedAt    string `json:"pushed_at,omitempty"`
}

// RawRepository is a repository as listed by GitHub, before normalization
// drops forks and the fork flag with them.
type RawRepository struct {
	RepositoryEntry
	Fork bool
}
