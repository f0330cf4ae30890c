package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/portfolio/backend/internal/model"
)

// Criteria selects projects. Zero values match everything.
type Criteria struct {
	// Search is matched case-insensitively against title, description and
	// every technology name.
	Search string
	// Category is a category id; "" and "all" match every category.
	Category string
	// Status is "ONGOING" or "COMPLETED"; "" and "all" match every status.
	Status string
}

func (cr Criteria) matches(p model.Project) bool {
	return cr.matchesSearch(p) && cr.matchesCategory(p) && cr.matchesStatus(p)
}

func (cr Criteria) matchesSearch(p model.Project) bool {
	if cr.Search == "" {
		return true
	}
	term := strings.ToLower(cr.Search)
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tech := range p.TechStack.Flatten() {
		if strings.Contains(strings.ToLower(tech), term) {
			return true
		}
	}
	return false
}

func (cr Criteria) matchesCategory(p model.Project) bool {
	return cr.Category == "" || cr.Category == CategoryAll || p.CategoryID == cr.Category
}

func (cr Criteria) matchesStatus(p model.Project) bool {
	return cr.Status == "" || cr.Status == CategoryAll || string(p.Status) == cr.Status
}

// UnknownStatusError is returned by ParseStatusFilter for unrecognized statuses.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown status %q (want ONGOING, COMPLETED or all)", e.Status)
}

// ParseStatusFilter normalizes a status criterion. Matching is
// case-insensitive; "" and "all" select every status.
func ParseStatusFilter(s string) (string, error) {
	switch {
	case s == "" || strings.EqualFold(s, CategoryAll):
		return "", nil
	case strings.EqualFold(s, string(model.StatusOngoing)):
		return string(model.StatusOngoing), nil
	case strings.EqualFold(s, string(model.StatusCompleted)):
		return string(model.StatusCompleted), nil
	default:
		return "", &UnknownStatusError{Status: s}
	}
}

// Filter returns the projects matching every criterion, in catalog order.
func (c *Catalog) Filter(cr Criteria) []model.Project {
	out := []model.Project{}
	for _, p := range c.projects {
		if cr.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory returns the projects in the given category ("all" for every project).
func (c *Catalog) ByCategory(categoryID string) []model.Project {
	return c.Filter(Criteria{Category: categoryID})
}

// ByStatus returns the projects with the given status.
func (c *Catalog) ByStatus(status model.ProjectStatus) []model.Project {
	return c.Filter(Criteria{Status: string(status)})
}

// SortKey names a project ordering.
type SortKey string

const (
	// SortByUpdated orders by UpdatedAt, newest first. It is the default.
	SortByUpdated SortKey = "updated"
	// SortByYear orders by numeric year, newest first. Projects whose year
	// is not an integer come last.
	SortByYear SortKey = "year"
	// SortByTitle orders by title using English collation.
	SortByTitle SortKey = "title"
)

// UnknownSortKeyError is returned by ParseSortKey for unrecognized keys.
type UnknownSortKeyError struct {
	Key string
}

func (e *UnknownSortKeyError) Error() string {
	return fmt.Sprintf("unknown sort key %q (want updated, year or title)", e.Key)
}

// ParseSortKey converts s to a SortKey. The empty string selects SortByUpdated.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByUpdated, nil
	case SortByUpdated, SortByYear, SortByTitle:
		return SortKey(s), nil
	default:
		return "", &UnknownSortKeyError{Key: s}
	}
}

// Sort returns a sorted copy of projects. Ties keep their input order.
// An unrecognized key sorts by SortByUpdated.
func Sort(projects []model.Project, key SortKey) []model.Project {
	out := slices.Clone(projects)
	switch key {
	case SortByYear:
		slices.SortStableFunc(out, compareYearDesc)
	case SortByTitle:
		// A Collator keeps internal buffers and must not be shared across goroutines.
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b model.Project) int {
			return col.CompareString(a.Title, b.Title)
		})
	default:
		slices.SortStableFunc(out, func(a, b model.Project) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return out
}

func compareYearDesc(a, b model.Project) int {
	ya, errA := strconv.Atoi(strings.TrimSpace(a.Year))
	yb, errB := strconv.Atoi(strings.TrimSpace(b.Year))
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	default:
		return cmp.Compare(yb, ya)
	}
}

// Query filters the catalog and sorts the result.
func (c *Catalog) Query(cr Criteria, key SortKey) []model.Project {
	return Sort(c.Filter(cr), key)
}
