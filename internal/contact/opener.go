package contact

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"
)

// MailOpener hands a mailto URI to whatever handles it on the platform.
// There is no completion signal: the caller cannot know whether a draft was
// opened or sent.
type MailOpener interface {
	Open(uri string)
}

// OpenerFunc adapts a function to MailOpener.
type OpenerFunc func(uri string)

func (f OpenerFunc) Open(uri string) { f(uri) }

// BrowserOpener launches the platform's default URI handler.
type BrowserOpener struct {
	Log logrus.FieldLogger
}

// Open starts the handler and does not wait for it.
func (o BrowserOpener) Open(uri string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		cmd = exec.Command("xdg-open", uri)
	}

	if err := cmd.Start(); err != nil {
		if o.Log != nil {
			o.Log.WithError(err).Warn("could not launch mail client")
		}
		return
	}
	go cmd.Wait() //nolint:errcheck
}

// WriterOpener prints the URI so the user can open it themselves.
type WriterOpener struct {
	W io.Writer
}

func (o WriterOpener) Open(uri string) {
	fmt.Fprintf(o.W, "Open this link to send your message:\n%s\n", uri)
}
