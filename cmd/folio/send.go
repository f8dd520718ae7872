package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/relay"
	"github.com/osa911/folio/internal/server"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a contact message from the terminal",
	Long: `Fill in the contact form from flags and submit it once.

Example:
  folio send --name Jane --email jane@x.com --message "Hi"`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		message, _ := cmd.Flags().GetString("message")

		form := contact.FormState{Name: name, Email: email, Message: message}
		opts := server.ContactOptions(cfg, logger)

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " " + contact.SendingLabel
		s.Writer = os.Stderr

		status, err := sendOnce(cmd.Context(), server.NewSender(cfg), opts, form, s, os.Stdout)
		if err != nil || status.Kind != contact.StatusSuccess {
			os.Exit(1)
		}
	},
}

// progress is the part of a spinner that sendOnce drives
type progress interface {
	Start()
	Stop()
}

// sendOnce submits form on a fresh controller, showing progress while the
// status is Sending, and prints the outcome to out
func sendOnce(ctx context.Context, sender relay.Sender, opts contact.Options, form contact.FormState, p progress, out io.Writer) (contact.Status, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctrl := contact.NewController(sender, opts)
	defer ctrl.Close()

	unsubscribe := ctrl.Subscribe(func(s contact.Status) {
		if s.Kind == contact.StatusSending {
			p.Start()
		} else {
			p.Stop()
		}
	})
	defer unsubscribe()

	if err := ctrl.SetForm(form); err != nil {
		return contact.Status{}, err
	}

	status, err := ctrl.Submit(ctx)
	var validationErr *contact.ValidationError
	switch {
	case errors.As(err, &validationErr):
		for _, fe := range validationErr.Fields {
			fmt.Fprintf(out, "✗ %s\n", contact.DescribeFieldError(fe))
		}
		return status, err
	case err != nil:
		fmt.Fprintf(out, "✗ %v\n", err)
		return status, err
	}

	if status.Kind == contact.StatusSuccess {
		fmt.Fprintf(out, "✓ %s\n", status.Message)
	} else {
		fmt.Fprintf(out, "✗ %s\n", status.Message)
	}
	return status, nil
}
