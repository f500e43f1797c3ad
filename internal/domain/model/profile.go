package model

// Profile is the subset of a GitHub user that the portfolio page displays.
// Optional fields are empty strings when GitHub omits them.
type Profile struct {
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
}

// DisplayName returns the user's name, falling back to the login.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// UserProfile is a Profile as returned by the GitHub adapter, together with
// the declared public repository count used to plan pagination.
// PublicRepos is never cached.
type UserProfile struct {
	Profile
	PublicRepos int
}
