package service

import (
	"errors"

	"github.com/portfolio/backend/internal/model"
)

// ErrProjectNotFound is returned when no project carries the requested slug.
var ErrProjectNotFound = errors.New("project not found")

// ProjectQuery is the listing request as received from a client.
type ProjectQuery struct {
	Search   string
	Category string
	Status   string
	Sort     string
}

// ProjectService はカタログの読み取り専用インターフェース
type ProjectService interface {
	List(q ProjectQuery) (*model.ProjectListResult, error)
	GetBySlug(slug string) (*model.ProjectDetail, error)
	Technologies() []string
	Stats() model.ProjectStats
	Categories() []model.Category
}
