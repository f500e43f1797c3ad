package github_test

import (
	"context"
	"net/http"
	"testing"

	gh "github.com/google/go-github/v82/github"
	githubMock "github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/ericfisherdev/devfolio/internal/adapter/driven/github"
	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

// TestClient_MockedEndpoints drives both port operations against the
// go-github-mock router instead of a hand-built mux.
func TestClient_MockedEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		user      gh.User
		repos     []*gh.Repository
		wantRepos []model.RawRepository
	}{
		{
			name: "profile with repositories",
			user: gh.User{
				Login:       gh.Ptr("mona"),
				Name:        gh.Ptr("Mona Lisa"),
				PublicRepos: gh.Ptr(2),
			},
			repos: []*gh.Repository{
				{Name: gh.Ptr("dotfiles"), StargazersCount: gh.Ptr(5), Language: gh.Ptr("Shell")},
				{Name: gh.Ptr("fork-of-x"), Fork: gh.Ptr(true)},
			},
			wantRepos: []model.RawRepository{
				{RepositoryEntry: model.RepositoryEntry{Name: "dotfiles", Stars: 5, Language: "Shell"}},
				{RepositoryEntry: model.RepositoryEntry{Name: "fork-of-x"}, Fork: true},
			},
		},
		{
			name:      "profile without repositories",
			user:      gh.User{Login: gh.Ptr("empty")},
			repos:     []*gh.Repository{},
			wantRepos: []model.RawRepository{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockedHTTPClient := githubMock.NewMockedHTTPClient(
				githubMock.WithRequestMatch(githubMock.GetUsersByUsername, tt.user),
				githubMock.WithRequestMatchHandler(
					githubMock.GetUsersReposByUsername,
					http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						assert.Equal(t, "pushed", r.URL.Query().Get("sort"))
						_, err := w.Write(githubMock.MustMarshal(tt.repos))
						if err != nil {
							t.Error("unable to configure mock http client")
						}
					}),
				),
			)

			client, err := ghAdapter.NewClientWithHTTPClient(mockedHTTPClient, "")
			require.NoError(t, err)

			profile, err := client.FetchProfile(context.Background(), tt.user.GetLogin())
			require.NoError(t, err)
			assert.Equal(t, tt.user.GetLogin(), profile.Login)
			assert.Equal(t, tt.user.GetName(), profile.Name)
			assert.Equal(t, tt.user.GetPublicRepos(), profile.PublicRepos)

			repos, err := client.FetchRepositoryPage(context.Background(), tt.user.GetLogin(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRepos, repos)
		})
	}
}

func TestClient_MockedRateLimitError(t *testing.T) {
	mockedHTTPClient := githubMock.NewMockedHTTPClient(
		githubMock.WithRequestMatchHandler(
			githubMock.GetUsersByUsername,
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				githubMock.WriteError(w, http.StatusForbidden, "API rate limit exceeded")
			}),
		),
	)

	client, err := ghAdapter.NewClientWithHTTPClient(mockedHTTPClient, "")
	require.NoError(t, err)

	_, err = client.FetchProfile(context.Background(), "octocat")
	require.Error(t, err)

	var profileErr *model.ProfileFetchError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, http.StatusForbidden, profileErr.StatusCode)
}
