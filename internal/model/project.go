package model

import "time"

// ProjectStatus is the lifecycle state of a portfolio project.
type ProjectStatus string

const (
	StatusOngoing   ProjectStatus = "ONGOING"
	StatusCompleted ProjectStatus = "COMPLETED"
)

// Valid reports whether s is one of the two recognized statuses.
func (s ProjectStatus) Valid() bool {
	return s == StatusOngoing || s == StatusCompleted
}

// Label returns the human-readable status label.
func (s ProjectStatus) Label() string {
	switch s {
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// TechStack groups technology names by category. Every category is optional;
// a missing category is the same as an empty one.
type TechStack struct {
	Frontend []string `json:"frontend" yaml:"frontend"`
	Backend  []string `json:"backend" yaml:"backend"`
	Devops   []string `json:"devops" yaml:"devops"`
	Database []string `json:"database" yaml:"database"`
	Tools    []string `json:"tools" yaml:"tools"`
}

// Categories returns the category lists in their fixed display order:
// frontend, backend, devops, database, tools.
func (t TechStack) Categories() [][]string {
	return [][]string{t.Frontend, t.Backend, t.Devops, t.Database, t.Tools}
}

// Flatten concatenates all categories in display order, dropping empty names.
func (t TechStack) Flatten() []string {
	out := []string{}
	for _, names := range t.Categories() {
		for _, n := range names {
			if n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

// Normalize replaces nil categories with empty slices so JSON renders [] rather than null.
func (t TechStack) Normalize() TechStack {
	return TechStack{
		Frontend: nonNil(t.Frontend),
		Backend:  nonNil(t.Backend),
		Devops:   nonNil(t.Devops),
		Database: nonNil(t.Database),
		Tools:    nonNil(t.Tools),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Project is one portfolio entry. Values are immutable once loaded into the catalog.
type Project struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	Subtitle      string        `json:"subtitle,omitempty" yaml:"subtitle"`
	Description   string        `json:"description" yaml:"description"`
	Features      []string      `json:"features" yaml:"features"`
	TechStack     TechStack     `json:"tech_stack" yaml:"techStack"`
	FeaturedImage string        `json:"featured_image" yaml:"featuredImage"`
	Images        []string      `json:"images" yaml:"images"`
	LiveURL       string        `json:"live_url" yaml:"liveUrl"`
	GitHubURL     string        `json:"github_url,omitempty" yaml:"githubUrl"`
	Status        ProjectStatus `json:"status" yaml:"status"`
	CategoryID    string        `json:"category_id" yaml:"categoryId"`
	Category      string        `json:"category" yaml:"category"`
	UserID        string        `json:"user_id,omitempty" yaml:"userId"`
	Year          string        `json:"year" yaml:"year"`
	Duration      string        `json:"duration,omitempty" yaml:"duration"`
	Role          string        `json:"role,omitempty" yaml:"role"`
	Slug          string        `json:"slug" yaml:"slug"`
	CreatedAt     time.Time     `json:"created_at" yaml:"createdAt"`
	UpdatedAt     time.Time     `json:"updated_at" yaml:"updatedAt"`
}

// ProjectStats counts projects by status.
type ProjectStats struct {
	Total     int `json:"total"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
}

// Category is a project category with its display label.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectDetail is the payload for a single project page.
type ProjectDetail struct {
	Project      Project   `json:"project"`
	StatusLabel  string    `json:"status_label"`
	Gallery      []string  `json:"gallery"`
	Technologies []string  `json:"technologies"`
	Related      []Project `json:"related"`
}

// ProjectListResult is the payload for the project listing.
type ProjectListResult struct {
	Projects []Project `json:"projects"`
	Count    int       `json:"count"`
}
