// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ericfisherdev/devfolio/internal/domain/model"
	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

// Notice texts shown alongside fallback data or in place of it.
const (
	noticeDegradedPrefix = "Network Error: "
	noticeDegradedDetail = "Displaying cached data."
	noticeFatalMessage   = "Failed to load projects"
)

// PortfolioService produces a user's profile and repository list, preferring
// a fresh cached snapshot, then the GitHub API, then a stale snapshot.
//
// Invocations are serialized: a caller that arrives while another Load is in
// flight waits for it and then re-reads the cache, so it picks up the
// snapshot the first caller wrote instead of fetching again.
type PortfolioService struct {
	client   driven.GitHubClient
	cache    *CacheStore
	username string
	logger   *slog.Logger
	sem      *semaphore.Weighted
}

// NewPortfolioService creates a PortfolioService for one GitHub username.
func NewPortfolioService(client driven.GitHubClient, cache *CacheStore, username string, logger *slog.Logger) *PortfolioService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PortfolioService{
		client:   client,
		cache:    cache,
		username: username,
		logger:   logger,
		sem:      semaphore.NewWeighted(1),
	}
}

// Username returns the GitHub user this service renders.
func (s *PortfolioService) Username() string {
	return s.username
}

// Load runs the pipeline once and feeds the results to r.
//
// A fresh snapshot is rendered without touching the network. Otherwise the
// profile and the first repository page are requested concurrently, the
// profile is rendered as soon as it arrives, and the remaining pages are
// requested once the profile's repository count is known. On failure a cached
// snapshot of any age is rendered with a non-fatal notice and Load returns
// nil; with nothing cached a fatal notice is rendered and the error returned.
func (s *PortfolioService) Load(ctx context.Context, r driven.Renderer) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	start := time.Now()

	cached, hasCache := s.cache.Read(ctx, s.username)
	if hasCache && s.cache.IsFresh(cached) {
		s.logger.Debug("serving fresh snapshot", "username", s.username, "repos", len(cached.Repos))
		r.ShowProfile(cached.Profile)
		r.ShowRepos(cached.Repos)
		return nil
	}

	profile, repos, err := s.fetch(ctx, r)
	if err != nil {
		return s.fallback(r, cached, err)
	}

	r.ShowRepos(repos)
	s.cache.Write(ctx, s.username, profile, repos)

	s.logger.Info("portfolio fetched",
		"username", s.username,
		"repos", len(repos),
		"had_stale_cache", hasCache,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return nil
}

// Retry re-runs the pipeline from the cache check. It is the handler for an
// explicit user request after a fatal failure.
func (s *PortfolioService) Retry(ctx context.Context, r driven.Renderer) error {
	s.logger.Info("manual retry requested", "username", s.username)
	return s.Load(ctx, r)
}

// fetch retrieves the profile and every repository page from GitHub and
// returns the normalized result. The profile is rendered as soon as it
// resolves. Requests already in flight always run to completion.
func (s *PortfolioService) fetch(ctx context.Context, r driven.Renderer) (model.Profile, []model.RepositoryEntry, error) {
	pages := make([][]model.RawRepository, MaxPages)

	var g errgroup.Group
	g.Go(func() error {
		return s.fetchPage(ctx, pages, 1)
	})

	user, err := s.client.FetchProfile(ctx, s.username)
	if err != nil {
		_ = g.Wait()
		return model.Profile{}, nil, asProfileError(err)
	}

	totalPages := TotalPages(user.PublicRepos)
	for page := 2; page <= totalPages; page++ {
		g.Go(func() error {
			return s.fetchPage(ctx, pages, page)
		})
	}

	r.ShowProfile(user.Profile)

	if err := g.Wait(); err != nil {
		return model.Profile{}, nil, err
	}

	var all []model.RawRepository
	for _, p := range pages {
		all = append(all, p...)
	}

	s.logger.Debug("repository pages fetched",
		"username", s.username,
		"public_repos", user.PublicRepos,
		"pages", max(totalPages, 1),
		"raw", len(all),
	)

	return user.Profile, NormalizeRepositories(all), nil
}

// fetchPage stores page (1-based) of the user's repositories into pages.
func (s *PortfolioService) fetchPage(ctx context.Context, pages [][]model.RawRepository, page int) error {
	repos, err := s.client.FetchRepositoryPage(ctx, s.username, page)
	if err != nil {
		return asRepoError(err, page)
	}
	pages[page-1] = repos
	return nil
}

// fallback renders cached data with a non-fatal notice, or a fatal notice
// when nothing is cached.
func (s *PortfolioService) fallback(r driven.Renderer, cached *model.Snapshot, err error) error {
	attrs := []any{"username", s.username, "error", err}
	var re *model.RepoFetchError
	if errors.As(err, &re) {
		attrs = append(attrs, "page", re.Page)
	}
	s.logger.Error("github api error", attrs...)

	if cached != nil {
		r.ShowProfile(cached.Profile)
		r.ShowRepos(cached.Repos)
		r.ShowNotice(model.Notice{
			Message: noticeDegradedPrefix + err.Error(),
			Detail:  noticeDegradedDetail,
		})
		s.logger.Warn("serving stale snapshot",
			"username", s.username,
			"age", cached.Age(s.cache.now()).Round(time.Second),
		)
		return nil
	}

	r.ShowNotice(model.Notice{
		Message: noticeFatalMessage,
		Detail:  err.Error(),
		Fatal:   true,
	})
	return err
}

// asProfileError ensures err is classified as a profile failure.
func asProfileError(err error) error {
	var pe *model.ProfileFetchError
	if errors.As(err, &pe) {
		return err
	}
	return &model.ProfileFetchError{Err: err}
}

// asRepoError ensures err is classified as a repository page failure.
func asRepoError(err error, page int) error {
	var re *model.RepoFetchError
	if errors.As(err, &re) {
		return err
	}
	return &model.RepoFetchError{Page: page, Err: err}
}
