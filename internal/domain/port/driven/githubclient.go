package driven

import (
	"context"

	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

// GitHubClient defines the driven port for reading public GitHub user data.
// Implementations report failures as *model.ProfileFetchError and
// *model.RepoFetchError so callers can inspect the HTTP status.
type GitHubClient interface {
	// FetchProfile returns the user's profile and declared public repo count.
	FetchProfile(ctx context.Context, username string) (model.UserProfile, error)

	// FetchRepositoryPage returns one page (1-based) of the user's repositories,
	// sorted by last push, up to 100 per page.
	FetchRepositoryPage(ctx context.Context, username string, page int) ([]model.RawRepository, error)
}
