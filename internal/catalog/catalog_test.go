package catalog

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/portfolio/backend/internal/model"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func ids(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// scenarioCatalog holds the two records used by the end-to-end examples.
func scenarioCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]model.Project{
		{
			ID:         "bookoria",
			Title:      "Bookoria - Online Bookstore",
			Slug:       "bookoria-online-bookstore",
			Status:     model.StatusCompleted,
			CategoryID: "ecommerce",
			Year:       "2023",
			CreatedAt:  date("2023-06-01"),
			UpdatedAt:  date("2023-08-01"),
		},
		{
			ID:         "neduai",
			Title:      "NeduAI - Career Planning Platform",
			Slug:       "neduai-career-planning",
			Status:     model.StatusOngoing,
			CategoryID: "ai-platform",
			Year:       "2024",
			CreatedAt:  date("2024-03-01"),
			UpdatedAt:  date("2024-11-01"),
		},
	})
	require.NoError(t, err)
	return c
}

func TestLoad_EmbeddedManifest(t *testing.T) {
	c := mustLoad(t)

	assert.Equal(t, 7, c.Len())
	p, ok := c.FindBySlug("neduai-career-planning")
	require.True(t, ok)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, model.StatusOngoing, p.Status)
	assert.Equal(t, 2024, p.UpdatedAt.Year())
	assert.Equal(t, time.November, p.UpdatedAt.Month())
	assert.Equal(t, []string{"PostgreSQL", "Redis"}, p.TechStack.Database)
}

func TestLoad_MissingCategoryIsEmpty(t *testing.T) {
	c := mustLoad(t)

	p, ok := c.FindBySlug("portfolio-website")
	require.True(t, ok)
	assert.NotNil(t, p.TechStack.Database)
	assert.Empty(t, p.TechStack.Database)
}

func TestFindBySlug(t *testing.T) {
	c := mustLoad(t)

	t.Run("every record is found by its own slug", func(t *testing.T) {
		for _, p := range c.All() {
			got, ok := c.FindBySlug(p.Slug)
			require.True(t, ok, p.Slug)
			assert.Equal(t, p, got)
		}
	})

	t.Run("unknown slugs are not found", func(t *testing.T) {
		for _, slug := range []string{"", "nope", "NEDUAI-CAREER-PLANNING", "neduai-career-planning "} {
			_, ok := c.FindBySlug(slug)
			assert.False(t, ok, slug)
		}
	})
}

func TestFindByID(t *testing.T) {
	c := mustLoad(t)

	p, ok := c.FindByID("5")
	require.True(t, ok)
	assert.Equal(t, "weatherpro-dashboard", p.Slug)

	_, ok = c.FindByID("999")
	assert.False(t, ok)
}

func TestRelatedTo(t *testing.T) {
	c := mustLoad(t)

	assert.Equal(t, []string{"2", "3", "4"}, ids(c.RelatedTo("1", 3)))
	assert.Equal(t, []string{"1", "3", "4"}, ids(c.RelatedTo("2", 0)), "zero limit uses the default")
	assert.Len(t, c.RelatedTo("unknown", 100), c.Len())
	assert.Empty(t, mustNew(t, nil).RelatedTo("1", 3))

	for _, p := range c.All() {
		for limit := 1; limit <= 8; limit++ {
			related := c.RelatedTo(p.ID, limit)
			assert.LessOrEqual(t, len(related), limit)
			assert.NotContains(t, ids(related), p.ID)
		}
	}
}

func mustNew(t *testing.T, projects []model.Project) *Catalog {
	t.Helper()
	c, err := New(projects)
	require.NoError(t, err)
	return c
}

func TestFilter(t *testing.T) {
	c := mustLoad(t)

	t.Run("no criteria returns everything in catalog order", func(t *testing.T) {
		assert.Equal(t, ids(c.All()), ids(c.Filter(Criteria{Category: "all", Status: "all"})))
		assert.Equal(t, ids(c.All()), ids(c.Filter(Criteria{})))
	})

	t.Run("search matches technology names", func(t *testing.T) {
		assert.Equal(t, []string{"5"}, ids(c.Filter(Criteria{Search: "mapbox"})))
		assert.Equal(t, []string{"4", "5", "7"}, ids(c.Filter(Criteria{Search: "MongoDB"})))
	})

	t.Run("search is case-insensitive over title and description", func(t *testing.T) {
		assert.Equal(t, []string{"3", "5"}, ids(c.Filter(Criteria{Search: "DASHBOARD"})))
		assert.Equal(t, []string{"2"}, ids(c.Filter(Criteria{Search: "telemedicine"})))
	})

	t.Run("category and status combine with AND", func(t *testing.T) {
		assert.Equal(t, []string{"2", "7"}, ids(c.Filter(Criteria{Category: "ecommerce"})))
		assert.Equal(t, []string{"2", "7"}, ids(c.Filter(Criteria{Category: "ecommerce", Status: "COMPLETED"})))
		assert.Empty(t, c.Filter(Criteria{Category: "ecommerce", Status: "ONGOING"}))
		assert.Equal(t, []string{"7"}, ids(c.Filter(Criteria{Category: "ecommerce", Search: "bookstore"})))
	})

	t.Run("no matches is an empty slice", func(t *testing.T) {
		got := c.Filter(Criteria{Search: "cobol"})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestByCategoryAndStatus(t *testing.T) {
	c := mustLoad(t)

	assert.Len(t, c.ByCategory("all"), c.Len())
	assert.Equal(t, []string{"3"}, ids(c.ByCategory("dashboard")))
	assert.Equal(t, []string{"1", "3", "4"}, ids(c.ByStatus(model.StatusOngoing)))
}

func TestSort(t *testing.T) {
	c := mustLoad(t)
	all := c.All()

	t.Run("updated is newest first", func(t *testing.T) {
		got := Sort(all, SortByUpdated)
		assert.Equal(t, []string{"1", "6", "4", "2", "7", "3", "5"}, ids(got))
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].UpdatedAt.After(got[i-1].UpdatedAt))
		}
	})

	t.Run("year is descending and stable", func(t *testing.T) {
		assert.Equal(t, []string{"1", "6", "2", "3", "4", "7", "5"}, ids(Sort(all, SortByYear)))
	})

	t.Run("title is non-decreasing under collation for any input order", func(t *testing.T) {
		col := collate.New(language.English)
		inputs := [][]model.Project{all, Sort(all, SortByYear), Sort(all, SortByUpdated)}
		reversed := slices.Clone(all)
		slices.Reverse(reversed)
		inputs = append(inputs, reversed)

		for _, in := range inputs {
			got := Sort(in, SortByTitle)
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, col.CompareString(got[i-1].Title, got[i].Title), 0)
			}
			assert.Equal(t, []string{"7", "1", "2", "6", "3", "4", "5"}, ids(got))
		}
	})

	t.Run("does not modify the input", func(t *testing.T) {
		before := ids(all)
		_ = Sort(all, SortByTitle)
		assert.Equal(t, before, ids(all))
	})

	t.Run("non-numeric years sort last", func(t *testing.T) {
		in := []model.Project{
			{ID: "a", Year: "ongoing"},
			{ID: "b", Year: "2021"},
			{ID: "c", Year: ""},
			{ID: "d", Year: "2024"},
		}
		assert.Equal(t, []string{"d", "b", "a", "c"}, ids(Sort(in, SortByYear)))
	})

	t.Run("extreme years keep descending order", func(t *testing.T) {
		in := []model.Project{
			{ID: "max", Year: "9223372036854775807"},
			{ID: "neg", Year: "-5"},
			{ID: "now", Year: "2024"},
		}
		assert.Equal(t, []string{"max", "now", "neg"}, ids(Sort(in, SortByYear)))
	})
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByUpdated, key)

	for _, s := range []string{"updated", "year", "title"} {
		key, err := ParseSortKey(s)
		require.NoError(t, err)
		assert.Equal(t, SortKey(s), key)
	}

	_, err = ParseSortKey("popularity")
	var unknown *UnknownSortKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "popularity", unknown.Key)
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"all", ""},
		{"ALL", ""},
		{"ONGOING", "ONGOING"},
		{"ongoing", "ONGOING"},
		{"Completed", "COMPLETED"},
	}
	for _, tt := range tests {
		got, err := ParseStatusFilter(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseStatusFilter("archived")
	var unknown *UnknownStatusError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "archived", unknown.Status)
}

func TestAllTechnologies(t *testing.T) {
	c := mustLoad(t)
	techs := c.AllTechnologies()

	assert.True(t, slices.IsSorted(techs))
	assert.Len(t, slices.Compact(slices.Clone(techs)), len(techs), "no duplicates")
	assert.Contains(t, techs, "Mapbox")
	assert.Contains(t, techs, "Next.js API Routes")
}

func TestFlattenTechStack(t *testing.T) {
	p := model.Project{TechStack: model.TechStack{
		Frontend: []string{"React.js", ""},
		Devops:   []string{"Docker"},
		Tools:    []string{"Figma"},
		Backend:  []string{"Go"},
	}}
	assert.Equal(t, []string{"React.js", "Go", "Docker", "Figma"}, FlattenTechStack(p))
	assert.Empty(t, FlattenTechStack(model.Project{}))
}

func TestGallery(t *testing.T) {
	c := mustLoad(t)

	p, _ := c.FindByID("2")
	gallery := Gallery(p)
	assert.Equal(t, p.FeaturedImage, gallery[0])
	assert.Len(t, gallery, 3)

	p, _ = c.FindByID("7")
	assert.Equal(t, []string{p.FeaturedImage}, Gallery(p))

	assert.Equal(t, []string{"feat.png", "a.png"}, Gallery(model.Project{
		FeaturedImage: "feat.png",
		Images:        []string{"a.png", "feat.png"},
	}))
}

func TestStats(t *testing.T) {
	c := mustLoad(t)
	assert.Equal(t, model.ProjectStats{Total: 7, Ongoing: 3, Completed: 4}, c.Stats())
}

func TestCategories(t *testing.T) {
	c := mustLoad(t)
	cats := c.Categories()

	require.Len(t, cats, 7)
	assert.Equal(t, model.Category{ID: "all", Name: "All"}, cats[0])
	assert.Equal(t, model.Category{ID: "ai-platform", Name: "AI Platform"}, cats[1])
	assert.Equal(t, model.Category{ID: "portfolio", Name: "Portfolio"}, cats[6])
}

func TestScenario_StatusFilterAndYearSort(t *testing.T) {
	c := scenarioCatalog(t)

	ongoing := c.Filter(Criteria{Status: "ONGOING"})
	require.Len(t, ongoing, 1)
	assert.Equal(t, "neduai-career-planning", ongoing[0].Slug)

	sorted := Sort(c.Filter(Criteria{Status: "all"}), SortByYear)
	require.Len(t, sorted, 2)
	assert.Equal(t, model.StatusOngoing, sorted[0].Status)
	assert.Equal(t, model.StatusCompleted, sorted[1].Status)
}

func TestNew_Validation(t *testing.T) {
	valid := func(id, slug string) model.Project {
		return model.Project{ID: id, Slug: slug, Status: model.StatusOngoing}
	}

	tests := []struct {
		name     string
		projects []model.Project
		wantErr  string
	}{
		{"duplicate id", []model.Project{valid("1", "a"), valid("1", "b")}, "duplicate project id"},
		{"duplicate slug", []model.Project{valid("1", "a"), valid("2", "a")}, "duplicate project slug"},
		{"missing id", []model.Project{valid("", "a")}, "missing id"},
		{"missing slug", []model.Project{valid("1", "")}, "missing slug"},
		{"invalid status", []model.Project{{ID: "1", Slug: "a", Status: "ARCHIVED"}}, "invalid status"},
		{"updated before created", []model.Project{{
			ID: "1", Slug: "a", Status: model.StatusCompleted,
			CreatedAt: date("2024-02-01"), UpdatedAt: date("2024-01-01"),
		}}, "before created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.projects)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid manifest", func(t *testing.T) {
		path := filepath.Join(dir, "ok.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`projects:
  - id: "a"
    title: Alpha
    slug: alpha
    status: COMPLETED
    year: "2020"
    createdAt: 2020-01-01T00:00:00Z
    updatedAt: 2020-02-01T00:00:00Z
`), 0o644))

		c, err := LoadFile(path)
		require.NoError(t, err)
		p, ok := c.FindBySlug("alpha")
		require.True(t, ok)
		assert.Equal(t, "Alpha", p.Title)
		assert.Empty(t, p.TechStack.Flatten())
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		path := filepath.Join(dir, "typo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("projects:\n  - id: a\n    slgu: alpha\n"), 0o644))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse catalog manifest")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open catalog manifest")
	})
}
