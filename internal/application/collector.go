package application

import (
	"sync"

	"github.com/ericfisherdev/devfolio/internal/domain/model"
	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Renderer = (*Collector)(nil)

// Collector is a Renderer that records what the pipeline emitted so a
// request handler can render it in one piece once Load returns.
type Collector struct {
	mu      sync.Mutex
	profile *model.Profile
	repos   []model.RepositoryEntry
	notice  *model.Notice
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// ShowProfile records the profile, replacing any earlier one.
func (c *Collector) ShowProfile(profile model.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = &profile
}

// ShowRepos records the repository list, replacing any earlier one.
func (c *Collector) ShowRepos(repos []model.RepositoryEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if repos == nil {
		repos = []model.RepositoryEntry{}
	}
	c.repos = repos
}

// ShowNotice records the notice. A fatal notice discards the profile and
// repositories shown so far.
func (c *Collector) ShowNotice(notice model.Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = &notice
	if notice.Fatal {
		c.profile = nil
		c.repos = nil
	}
}

// Profile returns the recorded profile, or nil if none was shown.
func (c *Collector) Profile() *model.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Repos returns the recorded repositories. It returns nil when the pipeline
// never reached the repository list.
func (c *Collector) Repos() []model.RepositoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repos
}

// Notice returns the recorded notice, or nil if none was shown.
func (c *Collector) Notice() *model.Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}
