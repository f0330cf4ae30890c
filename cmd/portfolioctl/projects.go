package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/catalog"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

func newProjectsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "Browse the project catalog",
	}
	cmd.AddCommand(
		newProjectsListCmd(root),
		newProjectsShowCmd(root),
		newProjectsTechsCmd(root),
		newProjectsStatsCmd(root),
		newProjectsCategoriesCmd(root),
		newProjectsValidateCmd(root),
	)
	return cmd
}

func projectService(root *rootOptions) (service.ProjectService, error) {
	c, err := root.loadCatalog()
	if err != nil {
		return nil, err
	}
	return service.NewProjectService(c), nil
}

func newProjectsListCmd(root *rootOptions) *cobra.Command {
	var (
		q      service.ProjectQuery
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally filtered and sorted",
		Example: `  portfolioctl projects list --search mongodb --sort title
  portfolioctl projects list --category ecommerce --status COMPLETED --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := projectService(root)
			if err != nil {
				return err
			}
			res, err := svc.List(q)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return printProjectTable(cmd.OutOrStdout(), res.Projects)
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "q", "", "match title, description or technology")
	cmd.Flags().StringVar(&q.Category, "category", "", "category id (all for every category)")
	cmd.Flags().StringVar(&q.Status, "status", "", "ONGOING or COMPLETED (case-insensitive)")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "updated (default), year or title")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printProjectTable(w io.Writer, projects []model.Project) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tSTATUS\tYEAR\tCATEGORY")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Slug, p.Title, p.Status.Label(), p.Year, p.Category)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d project(s)\n", len(projects))
	return err
}

func newProjectsShowCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show one project with its related projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := projectService(root)
			if err != nil {
				return err
			}
			d, err := svc.GetBySlug(args[0])
			if errors.Is(err, service.ErrProjectNotFound) {
				return fmt.Errorf("project %q not found", args[0])
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			printDetail(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printDetail(w io.Writer, d *model.ProjectDetail) {
	p := d.Project
	fmt.Fprintf(w, "%s\n%s\n\n", p.Title, p.Subtitle)
	fmt.Fprintf(w, "Status:    %s\n", d.StatusLabel)
	fmt.Fprintf(w, "Category:  %s\n", p.Category)
	fmt.Fprintf(w, "Year:      %s (%s)\n", p.Year, p.Duration)
	fmt.Fprintf(w, "Role:      %s\n", p.Role)
	if p.LiveURL != "" {
		fmt.Fprintf(w, "Live:      %s\n", p.LiveURL)
	}
	if p.GitHubURL != "" {
		fmt.Fprintf(w, "Source:    %s\n", p.GitHubURL)
	}
	fmt.Fprintf(w, "Stack:     %s\n", strings.Join(d.Technologies, ", "))
	fmt.Fprintf(w, "Images:    %d\n\n%s\n", len(d.Gallery), p.Description)

	if len(p.Features) > 0 {
		fmt.Fprintln(w, "\nFeatures:")
		for _, f := range p.Features {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	if len(d.Related) > 0 {
		fmt.Fprintln(w, "\nRelated:")
		for _, r := range d.Related {
			fmt.Fprintf(w, "  %s  %s\n", r.Slug, r.Title)
		}
	}
}

func newProjectsTechsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "techs",
		Short: "List every technology used across the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := projectService(root)
			if err != nil {
				return err
			}
			for _, t := range svc.Technologies() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newProjectsStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count projects by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := projectService(root)
			if err != nil {
				return err
			}
			s := svc.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "total: %d\nongoing: %d\ncompleted: %d\n", s.Total, s.Ongoing, s.Completed)
			return nil
		},
	}
}

func newProjectsCategoriesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category filter options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := projectService(root)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range svc.Categories() {
				fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
			}
			return tw.Flush()
		},
	}
}

func newProjectsValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Load and validate a catalog manifest",
		Long: `Checks that every project has an id and slug, that ids and slugs are unique,
that statuses are known and that updatedAt is not before createdAt.
Without a file the configured catalog is validated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				c   *catalog.Catalog
				err error
			)
			if len(args) == 1 {
				c, err = catalog.LoadFile(args[0])
			} else {
				c, err = root.loadCatalog()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d project(s)\n", c.Len())
			return nil
		},
	}
}
