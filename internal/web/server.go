// Package web serves the portfolio page and the contact API it posts to.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vallamsettyashok/portfolio/internal/contact"
	"github.com/vallamsettyashok/portfolio/internal/profile"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Deliverer forwards an accepted contact form and returns its reference id.
type Deliverer interface {
	Deliver(ctx context.Context, f contact.Form) (string, error)
}

type Options struct {
	Profile   *profile.Profile
	Inbox     Deliverer
	Owner     string
	AssetsDir string
	Log       logrus.FieldLogger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(opts Options) (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"year": func() int { return time.Now().Year() },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	if opts.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Log = l
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), requestID(), accessLog(opts.Log, newIPHasher()))

	mountAssets(r, opts.AssetsDir)

	h := &handlers{
		profile: opts.Profile,
		inbox:   opts.Inbox,
		owner:   opts.Owner,
		log:     opts.Log.WithField("component", "web"),
	}

	r.GET("/", h.index)
	r.GET("/contact-form", h.contactForm)
	r.POST("/contact", h.submitForm)
	r.POST(contact.EndpointPath, h.submitAPI)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r, nil
}

func mountAssets(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return
	}

	r.Static("/static", dir)
	if fi, err := os.Stat(filepath.Join(dir, "images")); err == nil && fi.IsDir() {
		r.Static("/images", filepath.Join(dir, "images"))
	}
	for _, name := range []string{"profile.jpg", "resume.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			r.StaticFile("/"+name, filepath.Join(dir, name))
		}
	}
}

// Serve runs h on addr until ctx is canceled, then drains in-flight requests.
func Serve(ctx context.Context, addr string, h http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("portfolio listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
