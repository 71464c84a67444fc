package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vallamsettyashok/portfolio/internal/contact"
	"github.com/vallamsettyashok/portfolio/internal/tui"
)

var contactOpts struct {
	name      string
	email     string
	message   string
	noBrowser bool
}

var contactCmd = &cobra.Command{
	Use:     "contact",
	Aliases: []string{"c"},
	Short:   "Send a message to the site owner",
	Long: `Send a message through the site's contact API. If the API rejects the
message or cannot be reached, a pre-filled draft is opened in your email client
instead and you still need to send it yourself.

Without --email and --message an interactive form is shown.`,
	RunE: runContact,
}

func init() {
	rootCmd.AddCommand(contactCmd)

	f := contactCmd.Flags()
	f.StringVar(&contactOpts.name, "name", "", "your name")
	f.StringVar(&contactOpts.email, "email", "", "your email address")
	f.StringVarP(&contactOpts.message, "message", "m", "", "message text")
	f.BoolVar(&contactOpts.noBrowser, "no-browser", false, "print the mailto link instead of opening it")
	f.String("base-url", "http://localhost:8080", "site the contact API lives on")
	f.Duration("timeout", 0, "HTTP client timeout (0 means none)")
	bindFlags(f, map[string]string{
		"contact.base_url": "base-url",
		"contact.timeout":  "timeout",
	})
}

func runContact(cmd *cobra.Command, _ []string) error {
	cfg, log, closer, err := loadRuntime()
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := contact.NewAPIClient(cfg.Contact.BaseURL, &http.Client{Timeout: cfg.Contact.Timeout})
	if err != nil {
		return fmt.Errorf("contact: base url: %w", err)
	}

	var opener contact.MailOpener = contact.BrowserOpener{Log: log}
	if contactOpts.noBrowser {
		opener = contact.WriterOpener{W: cmd.OutOrStdout()}
	}

	state := contact.NewState(contact.Form{
		Name:    contactOpts.name,
		Email:   contactOpts.email,
		Message: contactOpts.message,
	})
	flow := contact.NewFlow(state, client, contact.MailFallback{Owner: cfg.Owner.Email, Opener: opener}, log)

	interactive := !cmd.Flags().Changed("email") && !cmd.Flags().Changed("message")
	if interactive {
		// diagnostics would tear the form; only a log file gets them
		if cfg.Log.File == "" {
			log.SetOutput(io.Discard)
		}
		return tui.Run(cmd.Context(), flow, cfg.Owner.Email)
	}

	err = flow.Submit(cmd.Context())
	snap := state.Snapshot()
	fmt.Fprintln(cmd.OutOrStdout(), snap.Status.Message(snap.Error, cfg.Owner.Email))

	var verr *contact.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return nil
}
