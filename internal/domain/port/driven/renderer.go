package driven

import "github.com/ericfisherdev/devfolio/internal/domain/model"

// Renderer is the presentation collaborator fed by the portfolio pipeline.
// The pipeline may call ShowProfile before the repositories are known.
// A fatal notice supersedes anything shown earlier in the same run.
type Renderer interface {
	ShowProfile(profile model.Profile)
	ShowRepos(repos []model.RepositoryEntry)
	ShowNotice(notice model.Notice)
}
