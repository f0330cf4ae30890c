package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func newInboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Read and triage stored contact messages",
	}
	cmd.AddCommand(newInboxListCmd(), newInboxMarkCmd())
	return cmd
}

// withInbox opens the configured store for the duration of fn.
func withInbox(ctx context.Context, fn func(svc service.ContactService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Inbox.Enabled() {
		return errors.New("inbox is disabled: set INBOX_DRIVER to postgres or sqlite")
	}
	store, err := repository.OpenContactStore(ctx, cfg.Inbox.Driver, cfg.Inbox.DSN())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(service.NewContactService(store))
}

func newInboxListCmd() *cobra.Command {
	var (
		opts   model.ContactListOptions
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInbox(cmd.Context(), func(svc service.ContactService) error {
				msgs, err := svc.List(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), msgs)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tSTATUS\tRECEIVED\tFROM\tMESSAGE")
				for _, m := range msgs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s <%s>\t%s\n",
						m.ID, m.Status, m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Name, m.Email, excerpt(m.Message, 40))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&opts.Status, "status", "all", "all, unread or read")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum messages to show")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "messages to skip")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newInboxMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "mark <id> <read|unread>",
		Short:     "Mark a message read or unread",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{model.ContactStatusRead, model.ContactStatusUnread},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInbox(cmd.Context(), func(svc service.ContactService) error {
				err := svc.UpdateStatus(cmd.Context(), args[0], args[1])
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("message %q not found", args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s marked %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
