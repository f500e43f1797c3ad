package github_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/ericfisherdev/devfolio/internal/adapter/driven/github"
	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*ghAdapter.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL)
	require.NoError(t, err)

	return client, server
}

func TestFetchProfile_MapsFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/octocat", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"login": "octocat",
			"name": "The Octocat",
			"bio": "Mascot",
			"avatar_url": "https://avatars.githubusercontent.com/u/583231?v=4",
			"html_url": "https://github.com/octocat",
			"public_repos": 8
		}`)
	})

	client, _ := newTestClient(t, mux)

	got, err := client.FetchProfile(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", got.Login)
	assert.Equal(t, "The Octocat", got.Name)
	assert.Equal(t, "Mascot", got.Bio)
	assert.Equal(t, "https://avatars.githubusercontent.com/u/583231?v=4", got.AvatarURL)
	assert.Equal(t, "https://github.com/octocat", got.HTMLURL)
	assert.Equal(t, 8, got.PublicRepos)
}

func TestFetchProfile_NullFieldsAreEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/ghost", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login": "ghost", "name": null, "bio": null, "public_repos": 0}`)
	})

	client, _ := newTestClient(t, mux)

	got, err := client.FetchProfile(context.Background(), "ghost")
	require.NoError(t, err)

	assert.Equal(t, "ghost", got.Login)
	assert.Empty(t, got.Name)
	assert.Empty(t, got.Bio)
	assert.Zero(t, got.PublicRepos)
}

func TestFetchProfile_NotFoundCarriesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.FetchProfile(context.Background(), "missing")
	require.Error(t, err)

	var profileErr *model.ProfileFetchError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, http.StatusNotFound, profileErr.StatusCode)
	assert.Equal(t, "could not fetch user profile (status: 404)", err.Error())
}

func TestFetchProfile_TransportFailureHasNoStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(http.DefaultClient, url)
	require.NoError(t, err)

	_, err = client.FetchProfile(context.Background(), "octocat")
	require.Error(t, err)

	var profileErr *model.ProfileFetchError
	require.ErrorAs(t, err, &profileErr)
	assert.Zero(t, profileErr.StatusCode)
}

func TestFetchRepositoryPage_SendsPagingQuery(t *testing.T) {
	var gotQuery map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"sort":     q.Get("sort"),
			"per_page": q.Get("per_page"),
			"page":     q.Get("page"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	client, _ := newTestClient(t, mux)

	got, err := client.FetchRepositoryPage(context.Background(), "octocat", 3)
	require.NoError(t, err)

	assert.NotNil(t, got, "an empty page is an empty slice")
	assert.Empty(t, got)
	assert.Equal(t, map[string]string{"sort": "pushed", "per_page": "100", "page": "3"}, gotQuery)
}

func TestFetchRepositoryPage_MapsFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/octocat/repos", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{
				"name": "hello-world",
				"html_url": "https://github.com/octocat/hello-world",
				"description": "My first repo",
				"language": "Go",
				"stargazers_count": 42,
				"pushed_at": "2026-02-01T10:00:00+02:00",
				"fork": false
			},
			{
				"name": "linux",
				"html_url": "https://github.com/octocat/linux",
				"description": null,
				"language": null,
				"stargazers_count": 0,
				"pushed_at": null,
				"fork": true
			}
		]`)
	})

	client, _ := newTestClient(t, mux)

	got, err := client.FetchRepositoryPage(context.Background(), "octocat", 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, model.RawRepository{
		RepositoryEntry: model.RepositoryEntry{
			Name:        "hello-world",
			HTMLURL:     "https://github.com/octocat/hello-world",
			Description: "My first repo",
			Language:    "Go",
			Stars:       42,
			PushedAt:    "2026-02-01T08:00:00Z",
		},
	}, got[0])

	assert.True(t, got[1].Fork)
	assert.Empty(t, got[1].Description)
	assert.Empty(t, got[1].Language)
	assert.Empty(t, got[1].PushedAt)
}

func TestFetchRepositoryPage_ServerErrorCarriesPageAndStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/octocat/repos", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.FetchRepositoryPage(context.Background(), "octocat", 2)
	require.Error(t, err)

	var repoErr *model.RepoFetchError
	require.True(t, errors.As(err, &repoErr))
	assert.Equal(t, 2, repoErr.Page)
	assert.Equal(t, http.StatusInternalServerError, repoErr.StatusCode)
	assert.Equal(t, "could not fetch repositories (status: 500)", err.Error())
}

func TestNewClientWithHTTPClient_AddsTrailingSlash(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/users/octocat", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login": "octocat"}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/api/v3")
	require.NoError(t, err)

	got, err := client.FetchProfile(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", got.Login)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := ghAdapter.NewClient("://bad")
	require.Error(t, err)
}
