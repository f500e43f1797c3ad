package web

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	vm "github.com/ericfisherdev/devfolio/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/devfolio/internal/application"
	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

const (
	avatarSize         = "256"
	defaultDescription = "No description provided."
	emptyReposMessage  = "No public repositories found."
	pushedDateLayout   = "Jan 2, 2006"
)

var safeURLPattern = regexp.MustCompile(`(?i)^https?://`)

// languageColors maps common languages to their badge class. Anything not
// listed uses defaultLanguageColor.
var languageColors = map[string]string{
	"JavaScript": "bg-yellow-400",
	"Python":     "bg-blue-400",
	"HTML":       "bg-orange-500",
	"CSS":        "bg-blue-500",
	"TypeScript": "bg-blue-400",
	"Shell":      "bg-green-300",
}

const defaultLanguageColor = "bg-slate-500"

// safeURL returns u when it is an http(s) URL and "#" otherwise.
func safeURL(u string) string {
	if u != "" && safeURLPattern.MatchString(u) {
		return u
	}
	return "#"
}

// avatarURL validates the avatar URL and requests the 256px rendition.
func avatarURL(raw string) string {
	if !safeURLPattern.MatchString(raw) {
		return "#"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}

	u.RawQuery = setQueryParam(u.RawQuery, "s", avatarSize)

	return u.String()
}

// setQueryParam sets key to value in rawQuery without touching the other
// pairs. The first existing key is replaced in place and later ones dropped;
// a missing key is appended.
func setQueryParam(rawQuery, key, value string) string {
	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	if rawQuery == "" {
		return pair
	}

	parts := strings.Split(rawQuery, "&")
	out := make([]string, 0, len(parts)+1)
	replaced := false
	for _, part := range parts {
		name, _, _ := strings.Cut(part, "=")
		if decoded, err := url.QueryUnescape(name); err == nil && decoded == key {
			if !replaced {
				out = append(out, pair)
				replaced = true
			}
			continue
		}
		out = append(out, part)
	}
	if !replaced {
		out = append(out, pair)
	}

	return strings.Join(out, "&")
}

func languageColor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return defaultLanguageColor
}

// formatPushedDate renders an RFC 3339 timestamp as "Jan 2, 2006" in UTC.
// Unparseable or empty input yields an empty string.
func formatPushedDate(pushedAt string) string {
	if pushedAt == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, pushedAt)
	if err != nil {
		return ""
	}
	return t.UTC().Format(pushedDateLayout)
}

func toProfileViewModel(p model.Profile) vm.ProfileViewModel {
	name := p.DisplayName()

	return vm.ProfileViewModel{
		DisplayName: name,
		AvatarURL:   avatarURL(p.AvatarURL),
		AvatarAlt:   name + "'s GitHub profile photo",
		BioHTML:     RenderBio(p.Bio),
		ProfileURL:  safeURL(p.HTMLURL),
	}
}

func toRepoCardViewModel(r model.RepositoryEntry) vm.RepoCardViewModel {
	description := r.Description
	if description == "" {
		description = defaultDescription
	}

	card := vm.RepoCardViewModel{
		Name:        r.Name,
		URL:         safeURL(r.HTMLURL),
		Description: description,
		Language:    r.Language,
		Stars:       r.Stars,
		PushedDate:  formatPushedDate(r.PushedAt),
	}
	if r.Language != "" {
		card.LanguageClass = languageColor(r.Language)
	}

	return card
}

func toRepoCardViewModels(repos []model.RepositoryEntry) []vm.RepoCardViewModel {
	vms := make([]vm.RepoCardViewModel, 0, len(repos))
	for _, r := range repos {
		vms = append(vms, toRepoCardViewModel(r))
	}
	return vms
}

// toPageViewModel converts what a Collector recorded during one load into the
// page view model.
func toPageViewModel(username string, c *application.Collector) vm.PageViewModel {
	page := vm.PageViewModel{
		Username:     username,
		Title:        username + " · Projects",
		Repos:        []vm.RepoCardViewModel{},
		EmptyMessage: emptyReposMessage,
		RetryURL:     "/retry",
	}

	if p := c.Profile(); p != nil {
		profile := toProfileViewModel(*p)
		page.Profile = &profile
		if p.Login != "" {
			page.Title = p.DisplayName() + " · Projects"
		}
	}

	if repos := c.Repos(); repos != nil {
		page.ReposLoaded = true
		page.Repos = toRepoCardViewModels(repos)
	}

	if n := c.Notice(); n != nil {
		page.Notice = &vm.NoticeViewModel{
			Message: n.Message,
			Detail:  n.Detail,
			Fatal:   n.Fatal,
		}
	}

	return page
}
