// Package catalog answers read-only queries over the static project catalog.
//
// A Catalog is built once at startup and never mutated, so every method is safe
// for concurrent use without locking.
package catalog

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/portfolio/backend/internal/model"
)

// DefaultRelatedLimit is the number of related projects returned when the
// caller does not ask for a specific count.
const DefaultRelatedLimit = 3

// CategoryAll matches every category (and, for Criteria.Status, every status).
const CategoryAll = "all"

// Catalog is an immutable, ordered set of projects.
type Catalog struct {
	projects []model.Project
	bySlug   map[string]int
	byID     map[string]int
}

// New validates projects and returns a Catalog holding a private copy of them.
// Catalog order is the order of projects.
func New(projects []model.Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]model.Project, 0, len(projects)),
		bySlug:   make(map[string]int, len(projects)),
		byID:     make(map[string]int, len(projects)),
	}

	for i, p := range projects {
		if p.ID == "" {
			return nil, errors.Errorf("project at index %d missing id", i)
		}
		if p.Slug == "" {
			return nil, errors.Errorf("project %s missing slug", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate project id %q", p.ID)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, errors.Errorf("duplicate project slug %q", p.Slug)
		}
		if !p.Status.Valid() {
			return nil, errors.Errorf("project %s has invalid status %q", p.ID, p.Status)
		}
		if p.UpdatedAt.Before(p.CreatedAt) {
			return nil, errors.Errorf("project %s updated_at %s is before created_at %s",
				p.ID, p.UpdatedAt.Format("2006-01-02"), p.CreatedAt.Format("2006-01-02"))
		}

		p.TechStack = p.TechStack.Normalize()
		if p.Features == nil {
			p.Features = []string{}
		}
		if p.Images == nil {
			p.Images = []string{}
		}

		c.byID[p.ID] = len(c.projects)
		c.bySlug[p.Slug] = len(c.projects)
		c.projects = append(c.projects, p)
	}

	return c, nil
}

// Len returns the number of projects in the catalog.
func (c *Catalog) Len() int { return len(c.projects) }

// All returns every project in catalog order.
func (c *Catalog) All() []model.Project {
	return slices.Clone(c.projects)
}

// FindBySlug returns the project whose slug matches exactly (case-sensitive).
// The boolean is false when no project matches.
func (c *Catalog) FindBySlug(slug string) (model.Project, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return model.Project{}, false
	}
	return c.projects[i], true
}

// FindByID returns the project with the given id.
func (c *Catalog) FindByID(id string) (model.Project, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Project{}, false
	}
	return c.projects[i], true
}

// RelatedTo returns up to limit projects other than id, taken in catalog order.
// Selection is positional; no similarity scoring is applied.
func (c *Catalog) RelatedTo(id string, limit int) []model.Project {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	out := make([]model.Project, 0, limit)
	for _, p := range c.projects {
		if len(out) == limit {
			break
		}
		if p.ID == id {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AllTechnologies returns every technology name used by any project,
// deduplicated and sorted.
func (c *Catalog) AllTechnologies() []string {
	seen := make(map[string]struct{})
	for _, p := range c.projects {
		for _, names := range p.TechStack.Categories() {
			for _, n := range names {
				seen[n] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// FlattenTechStack returns the project's technologies in category order,
// without empty entries.
func FlattenTechStack(p model.Project) []string {
	return p.TechStack.Flatten()
}

// Gallery returns the images to display for p: the featured image first,
// followed by the remaining images in their original order.
func Gallery(p model.Project) []string {
	out := make([]string, 0, len(p.Images)+1)
	if p.FeaturedImage != "" {
		out = append(out, p.FeaturedImage)
	}
	for _, img := range p.Images {
		if img != p.FeaturedImage {
			out = append(out, img)
		}
	}
	return out
}

// Stats counts projects by status.
func (c *Catalog) Stats() model.ProjectStats {
	var s model.ProjectStats
	for _, p := range c.projects {
		s.Total++
		switch p.Status {
		case model.StatusOngoing:
			s.Ongoing++
		case model.StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// Categories returns the "all" pseudo-category followed by every distinct
// category in catalog order.
func (c *Catalog) Categories() []model.Category {
	out := []model.Category{{ID: CategoryAll, Name: "All"}}
	seen := make(map[string]struct{})
	for _, p := range c.projects {
		if _, ok := seen[p.CategoryID]; ok {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		out = append(out, model.Category{ID: p.CategoryID, Name: p.Category})
	}
	return out
}
