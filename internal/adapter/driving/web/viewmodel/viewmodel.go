// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// PageViewModel holds everything the portfolio page renders for one request.
type PageViewModel struct {
	Username string
	Title    string

	// Profile is nil when no profile is available, such as after a fatal
	// load failure.
	Profile *ProfileViewModel

	// ReposLoaded is false when the pipeline never produced a repository
	// list. An empty Repos with ReposLoaded true renders EmptyMessage.
	ReposLoaded  bool
	Repos        []RepoCardViewModel
	EmptyMessage string

	Notice *NoticeViewModel

	// RetryURL is the POST target of the retry form.
	RetryURL string
}

// ProfileViewModel holds presentation-ready data for the profile header.
type ProfileViewModel struct {
	DisplayName string
	AvatarURL   string // "#" when the source URL is not http(s)
	AvatarAlt   string
	BioHTML     string // sanitized HTML
	ProfileURL  string // "#" when the source URL is not http(s)
}

// RepoCardViewModel holds presentation-ready data for one repository card.
type RepoCardViewModel struct {
	Name          string
	URL           string
	Description   string
	Language      string
	LanguageClass string
	Stars         int
	PushedDate    string // "Jan 2, 2006", empty when unknown
}

// NoticeViewModel holds presentation-ready data for the error banner.
type NoticeViewModel struct {
	Message string
	Detail  string
	Fatal   bool
}
