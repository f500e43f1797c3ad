// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/devfolio/internal/domain/model"
	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// reposPerPage is the largest page size the REST API accepts.
const reposPerPage = 100

// Client implements the driven.GitHubClient port using the go-github library.
// Requests are unauthenticated; only public user data is read.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (rate limit middleware)
//  3. go-github (GitHub REST API client)
//
// An empty baseURL targets api.github.com; a non-empty one selects a GitHub
// Enterprise Server API root such as "https://ghe.example.com/api/v3/".
func NewClient(baseURL string) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	return newClient(gh.NewClient(rateLimitClient), baseURL)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	return newClient(gh.NewClient(httpClient), baseURL)
}

func newClient(client *gh.Client, baseURL string) (*Client, error) {
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{gh: client}, nil
}

// FetchProfile retrieves the public profile of username. Failures are returned
// as *model.ProfileFetchError carrying the HTTP status when one was received.
func (c *Client) FetchProfile(ctx context.Context, username string) (model.UserProfile, error) {
	user, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return model.UserProfile{}, &model.ProfileFetchError{
			StatusCode: statusCode(resp),
			Err:        fmt.Errorf("getting user %s: %w", username, err),
		}
	}

	logRateLimit(resp, "users/"+username, 0, 1)

	return mapUser(user), nil
}

// FetchRepositoryPage retrieves one page of username's repositories ordered by
// last push. Failures are returned as *model.RepoFetchError.
func (c *Client) FetchRepositoryPage(ctx context.Context, username string, page int) ([]model.RawRepository, error) {
	opts := &gh.RepositoryListByUserOptions{
		Sort: "pushed",
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: reposPerPage,
		},
	}

	repos, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, &model.RepoFetchError{
			Page:       page,
			StatusCode: statusCode(resp),
			Err:        fmt.Errorf("listing repositories for %s (page %d): %w", username, page, err),
		}
	}

	logRateLimit(resp, "users/"+username+"/repos", page, len(repos))

	result := make([]model.RawRepository, 0, len(repos))
	for _, r := range repos {
		result = append(result, mapRepository(r))
	}

	return result, nil
}

// mapUser converts a go-github User to a domain model UserProfile.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapUser(u *gh.User) model.UserProfile {
	return model.UserProfile{
		Profile: model.Profile{
			Login:     u.GetLogin(),
			Name:      u.GetName(),
			Bio:       u.GetBio(),
			AvatarURL: u.GetAvatarURL(),
			HTMLURL:   u.GetHTMLURL(),
		},
		PublicRepos: u.GetPublicRepos(),
	}
}

// mapRepository converts a go-github Repository to a domain model RawRepository.
func mapRepository(r *gh.Repository) model.RawRepository {
	var pushedAt string
	if r.PushedAt != nil {
		pushedAt = r.GetPushedAt().UTC().Format(time.RFC3339)
	}

	return model.RawRepository{
		RepositoryEntry: model.RepositoryEntry{
			Name:        r.GetName(),
			HTMLURL:     r.GetHTMLURL(),
			Description: r.GetDescription(),
			Language:    r.GetLanguage(),
			Stars:       r.GetStargazersCount(),
			PushedAt:    pushedAt,
		},
		Fork: r.GetFork(),
	}
}

// statusCode returns the HTTP status of resp, or 0 when no response arrived.
func statusCode(resp *gh.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 10 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
