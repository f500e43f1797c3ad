package application

import (
	"cmp"
	"slices"

	"github.com/ericfisherdev/devfolio/internal/domain/model"
)

// Pagination limits for the repository listing.
const (
	// PerPage is the GitHub maximum page size.
	PerPage = 100

	// MaxPages caps repository pagination at 500 repositories. Repositories
	// beyond the cap are never fetched.
	MaxPages = 5
)

// TotalPages returns how many repository pages to request for a user who
// declares publicRepos public repositories, capped at MaxPages.
func TotalPages(publicRepos int) int {
	if publicRepos <= 0 {
		return 0
	}
	pages := (publicRepos + PerPage - 1) / PerPage
	return min(pages, MaxPages)
}

// NormalizeRepositories drops forks, orders the remainder by star count
// (highest first, ties keep their input order) and strips the fork flag.
func NormalizeRepositories(raw []model.RawRepository) []model.RepositoryEntry {
	repos := make([]model.RepositoryEntry, 0, len(raw))
	for _, r := range raw {
		if r.Fork {
			continue
		}
		repos = append(repos, r.RepositoryEntry)
	}

	slices.SortStableFunc(repos, func(a, b model.RepositoryEntry) int {
		return cmp.Compare(b.Stars, a.Stars)
	})

	return repos
}
