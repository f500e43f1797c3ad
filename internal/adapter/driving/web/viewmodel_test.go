package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/devfolio/internal/application"
	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/octocat", "https://github.com/octocat"},
		{"http://example.com", "http://example.com"},
		{"HTTPS://EXAMPLE.COM", "HTTPS://EXAMPLE.COM"},
		{"javascript:alert(1)", "#"},
		{"//evil.example", "#"},
		{"", "#"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, safeURL(tt.in))
		})
	}
}

func TestAvatarURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"appends size", "https://avatars.githubusercontent.com/u/583231?v=4", "https://avatars.githubusercontent.com/u/583231?v=4&s=256"},
		{"no query", "https://avatars.githubusercontent.com/u/583231", "https://avatars.githubusercontent.com/u/583231?s=256"},
		{"replaces size in place", "https://avatars.githubusercontent.com/u/1?s=40&v=4", "https://avatars.githubusercontent.com/u/1?s=256&v=4"},
		{"drops duplicate size", "https://example.com/a.png?s=1&z=2&s=3", "https://example.com/a.png?s=256&z=2"},
		{"keeps other pairs verbatim", "https://example.com/a.png?z=1&b=x%2By&a", "https://example.com/a.png?z=1&b=x%2By&a&s=256"},
		{"non-http scheme", "data:image/png;base64,AAAA", "#"},
		{"empty", "", "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, avatarURL(tt.in))
		})
	}
}

func TestLanguageColor(t *testing.T) {
	assert.Equal(t, "bg-yellow-400", languageColor("JavaScript"))
	assert.Equal(t, "bg-green-300", languageColor("Shell"))
	assert.Equal(t, "bg-slate-500", languageColor("Go"))
}

func TestFormatPushedDate(t *testing.T) {
	assert.Equal(t, "Feb 1, 2026", formatPushedDate("2026-02-01T10:00:00Z"))
	assert.Equal(t, "Jan 31, 2026", formatPushedDate("2026-02-01T01:00:00+02:00"))
	assert.Equal(t, "", formatPushedDate(""))
	assert.Equal(t, "", formatPushedDate("yesterday"))
}

func TestToRepoCardViewModel_Defaults(t *testing.T) {
	card := toRepoCardViewModel(model.RepositoryEntry{Name: "bare", HTMLURL: "ftp://x"})

	assert.Equal(t, "bare", card.Name)
	assert.Equal(t, "#", card.URL)
	assert.Equal(t, "No description provided.", card.Description)
	assert.Empty(t, card.Language)
	assert.Empty(t, card.LanguageClass, "no badge without a language")
	assert.Empty(t, card.PushedDate)
}

func TestToProfileViewModel(t *testing.T) {
	p := toProfileViewModel(model.Profile{
		Login:     "octocat",
		Bio:       "I **build** things",
		AvatarURL: "https://avatars.githubusercontent.com/u/583231",
		HTMLURL:   "https://github.com/octocat",
	})

	assert.Equal(t, "octocat", p.DisplayName, "login stands in for a missing name")
	assert.Equal(t, "octocat's GitHub profile photo", p.AvatarAlt)
	assert.Equal(t, "https://avatars.githubusercontent.com/u/583231?s=256", p.AvatarURL)
	assert.Contains(t, p.BioHTML, "<strong>build</strong>")
	assert.Equal(t, "https://github.com/octocat", p.ProfileURL)
}

func TestToPageViewModel_Success(t *testing.T) {
	c := application.NewCollector()
	c.ShowProfile(model.Profile{Login: "octocat", Name: "The Octocat"})
	c.ShowRepos([]model.RepositoryEntry{{Name: "a", Stars: 2}, {Name: "b", Stars: 1}})

	page := toPageViewModel("octocat", c)

	require.NotNil(t, page.Profile)
	assert.Equal(t, "The Octocat · Projects", page.Title)
	assert.True(t, page.ReposLoaded)
	require.Len(t, page.Repos, 2)
	assert.Equal(t, "a", page.Repos[0].Name)
	assert.Nil(t, page.Notice)
	assert.Equal(t, "/retry", page.RetryURL)
}

func TestToPageViewModel_Fatal(t *testing.T) {
	c := application.NewCollector()
	c.ShowProfile(model.Profile{Login: "octocat"})
	c.ShowNotice(model.Notice{Message: "Failed to load projects", Detail: "boom", Fatal: true})

	page := toPageViewModel("octocat", c)

	assert.Nil(t, page.Profile)
	assert.False(t, page.ReposLoaded)
	assert.Empty(t, page.Repos)
	require.NotNil(t, page.Notice)
	assert.True(t, page.Notice.Fatal)
	assert.Equal(t, "octocat · Projects", page.Title)
}

func TestToPageViewModel_EmptyRepos(t *testing.T) {
	c := application.NewCollector()
	c.ShowProfile(model.Profile{Login: "newbie"})
	c.ShowRepos(nil)

	page := toPageViewModel("newbie", c)

	assert.True(t, page.ReposLoaded)
	assert.Empty(t, page.Repos)
	assert.Equal(t, "No public repositories found.", page.EmptyMessage)
}
