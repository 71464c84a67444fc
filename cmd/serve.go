package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vallamsettyashok/portfolio/internal/inbox"
	"github.com/vallamsettyashok/portfolio/internal/mailer"
	"github.com/vallamsettyashok/portfolio/internal/profile"
	"github.com/vallamsettyashok/portfolio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the portfolio web server",
	RunE:    runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on (PORT also works)")
	serveCmd.Flags().String("host", "", "host to bind")
	serveCmd.Flags().String("assets", "./static", "directory with profile.jpg, resume.pdf and stylesheets")
	bindFlags(serveCmd.Flags(), map[string]string{
		"server.port":       "port",
		"server.host":       "host",
		"server.assets_dir": "assets",
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, closer, err := loadRuntime()
	if err != nil {
		return err
	}
	defer closer.Close()

	gin.SetMode(cfg.Server.Mode)

	prof, err := profile.Load()
	if err != nil {
		return err
	}

	sender, err := mailer.New(cfg.Mail, log)
	if err != nil {
		log.WithError(err).Error("mail provider misconfigured")
		return err
	}

	router, err := web.NewRouter(web.Options{
		Profile:   prof,
		Inbox:     inbox.NewService(cfg.Owner.Email, sender, log),
		Owner:     cfg.Owner.Email,
		AssetsDir: cfg.Server.AssetsDir,
		Log:       log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.Serve(ctx, cfg.Server.Addr(), router, log)
}
