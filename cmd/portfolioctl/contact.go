package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/contact"
	"github.com/portfolio/backend/internal/model"
)

var errSubmitFailed = errors.New("submission not delivered")

func newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send contact-form submissions",
	}
	cmd.AddCommand(newContactSendCmd())
	return cmd
}

func newContactSendCmd() *cobra.Command {
	var (
		values   model.ContactSubmission
		endpoint string
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Validate and deliver one submission to the contact endpoint",
		Example: `  portfolioctl contact send --name "Jane" --email jane@example.com \
    --message "Hello, I'd like to discuss a project."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("endpoint") {
				endpoint = cfg.Contact.EndpointURL
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.Contact.Timeout
			}

			pipeline := contact.NewPipeline(
				contact.NewHTTPSender(endpoint, timeout),
				contact.Config{MinMessageLength: cfg.Contact.MinMessageLength, Timeout: timeout},
			)
			out := cmd.OutOrStdout()
			form := pipeline.NewForm(contact.NotifierFunc(func(n contact.Notification) {
				fmt.Fprintf(out, "[%s] %s %s\n", n.Kind, n.Title, n.Description)
			}))
			form.SetValues(values)

			res := form.Submit(cmd.Context())
			switch res.Outcome {
			case contact.OutcomeDelivered:
				return nil
			case contact.OutcomeInvalid:
				fields := res.Errors.Fields()
				names := make([]string, 0, len(fields))
				for name := range fields {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, fields[name])
				}
				return errSubmitFailed
			default:
				return fmt.Errorf("%w: %v", errSubmitFailed, res.Err)
			}
		},
	}
	cmd.Flags().StringVar(&values.Name, "name", "", "sender name")
	cmd.Flags().StringVar(&values.Email, "email", "", "sender email")
	cmd.Flags().StringVar(&values.Message, "message", "", "message body")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "delivery endpoint (default: $CONTACT_ENDPOINT_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", contact.DefaultTimeout, "delivery timeout")
	return cmd
}
