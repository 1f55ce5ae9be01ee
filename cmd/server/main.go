package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/config"
	"github.com/diewo77/techfix/internal/db"
	"github.com/diewo77/techfix/internal/jobs"
	"github.com/diewo77/techfix/internal/logging"
	"github.com/diewo77/techfix/internal/mailer"
	"github.com/diewo77/techfix/internal/models"
	"github.com/diewo77/techfix/internal/policy"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "techfix",
		Usage:  "TechFix storefront and admin console",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply the database schema and exit",
				Action: migrateOnly,
			},
			{
				Name:  "grant-admin",
				Usage: "Create the admin profile of a registered subject",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "name"},
				},
				Action: grantAdmin,
			},
			{
				Name:   "sweep-orphans",
				Usage:  "List subjects that have no admin profile",
				Action: sweepOrphans,
			},
			{
				Name:  "export",
				Usage: "Write a catalog kind as CSV to stdout",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Value: "products", Usage: "products or services"},
				},
				Action: export,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every command starts from.
type env struct {
	cfg  config.Config
	log  *zap.Logger
	conn *gorm.DB
}

func bootstrap() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	conn, err := db.Open(cfg.Database, log)
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}
	return &env{cfg: cfg, log: log, conn: conn}, nil
}

func (e *env) close() {
	if sqlDB, err := e.conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}

func serve(c *cli.Context) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.close()
	log := e.log

	// Run migrations on startup if enabled
	if e.cfg.Database.Migrations {
		if err := db.Migrate(e.conn, e.cfg.Database, log); err != nil {
			return err
		}
		log.Info("migrations completed")
	} else if err := db.CheckTables(e.conn); err != nil {
		return errors.Wrap(err, "schema not ready, run the migrate command")
	}

	app, err := NewApp(e.cfg, e.conn, mailer.New(e.cfg.SMTP, log), log)
	if err != nil {
		return err
	}
	sched, err := jobs.Start(e.cfg.Jobs, app.profiles, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + e.cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  e.cfg.Server.ReadTimeout,
		WriteTimeout: e.cfg.Server.WriteTimeout,
		IdleTimeout:  e.cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.Int("jobs", sched.Entries()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "server")
		}
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	sched.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("server stopped gracefully")
	return nil
}

func migrateOnly(c *cli.Context) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.close()
	if err := db.Migrate(e.conn, e.cfg.Database, e.log); err != nil {
		return err
	}
	e.log.Info("migrations completed successfully")
	return nil
}

// grantAdmin is the remedy for a sign-up whose profile write failed.
func grantAdmin(c *cli.Context) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.close()
	return grant(c.Context, e.conn, c.String("email"), c.String("name"), e.log)
}

func grant(ctx context.Context, conn *gorm.DB, email, name string, log *zap.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := conn.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return errors.Wrapf(err, "find subject %s", email)
	}
	store := policy.NewProfileStore(conn)
	existing, err := store.Resolve(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Info("admin profile already present", zap.String("user_id", user.ID))
		return nil
	}
	if name == "" {
		name = user.Name
	}
	if err := store.Create(ctx, &models.AdminProfile{UserID: user.ID, Name: name, Email: user.Email}); err != nil {
		return err
	}
	log.Info("admin profile granted", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return nil
}

func sweepOrphans(c *cli.Context) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.close()
	_, err = jobs.SweepOrphans(c.Context, policy.NewProfileStore(e.conn), e.log)
	return err
}

func export(c *cli.Context) error {
	kind, err := catalog.ParseKind(c.String("kind"))
	if err != nil {
		return err
	}
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.close()

	out := c.App.Writer
	switch kind {
	case catalog.KindProduct:
		rows, err := catalog.NewProducts(e.conn).List(c.Context, nil)
		if err != nil {
			return err
		}
		return catalog.WriteProductsCSV(out, rows)
	default:
		rows, err := catalog.NewServices(e.conn).List(c.Context, nil)
		if err != nil {
			return err
		}
		return catalog.WriteServicesCSV(out, rows)
	}
}
