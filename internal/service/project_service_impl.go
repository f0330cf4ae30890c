package service

import (
	"strings"

	"github.com/portfolio/backend/internal/catalog"
	"github.com/portfolio/backend/internal/model"
)

type projectServiceImpl struct {
	catalog *catalog.Catalog
}

// NewProjectService creates a ProjectService over an in-memory catalog.
func NewProjectService(c *catalog.Catalog) ProjectService {
	return &projectServiceImpl{catalog: c}
}

// List filters and sorts the catalog. An unknown sort key yields a
// *catalog.UnknownSortKeyError and an unknown status a *catalog.UnknownStatusError.
func (s *projectServiceImpl) List(q ProjectQuery) (*model.ProjectListResult, error) {
	key, err := catalog.ParseSortKey(q.Sort)
	if err != nil {
		return nil, err
	}
	status, err := catalog.ParseStatusFilter(strings.TrimSpace(q.Status))
	if err != nil {
		return nil, err
	}
	projects := s.catalog.Query(catalog.Criteria{
		Search:   strings.TrimSpace(q.Search),
		Category: q.Category,
		Status:   status,
	}, key)
	return &model.ProjectListResult{Projects: projects, Count: len(projects)}, nil
}

// GetBySlug returns the detail view: the project, its gallery, its flattened
// technologies and the related projects.
func (s *projectServiceImpl) GetBySlug(slug string) (*model.ProjectDetail, error) {
	p, ok := s.catalog.FindBySlug(slug)
	if !ok {
		return nil, ErrProjectNotFound
	}
	return &model.ProjectDetail{
		Project:      p,
		StatusLabel:  p.Status.Label(),
		Gallery:      catalog.Gallery(p),
		Technologies: catalog.FlattenTechStack(p),
		Related:      s.catalog.RelatedTo(p.ID, catalog.DefaultRelatedLimit),
	}, nil
}

func (s *projectServiceImpl) Technologies() []string {
	return s.catalog.AllTechnologies()
}

func (s *projectServiceImpl) Stats() model.ProjectStats {
	return s.catalog.Stats()
}

func (s *projectServiceImpl) Categories() []model.Category {
	return s.catalog.Categories()
}
