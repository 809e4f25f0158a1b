package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/users"
	"pet-social/internal/platform/config"
	"pet-social/internal/platform/logger"
	"pet-social/internal/platform/metrics"
	"pet-social/internal/router"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "api",
		Short:         "pet-social API server",
		SilenceUsage:  true,
		SilenceErrors: false,
		// Sin subcomando => serve
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configFile)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml/json/toml); env vars override it")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), configFile)
			},
		},
		newSweepCommand(&configFile),
		newUsersCommand(&configFile),
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the SQL schema (postgres or sqlite)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load(configFile)
				if err != nil {
					return err
				}
				if err := migrate(cmd.Context(), cfg); err != nil {
					return err
				}
				newLogger(cfg).Info("schema applied", logger.Fields{"driver": cfg.DBDriver})
				return nil
			},
		},
	)
	return root
}

func newSweepCommand(configFile *string) *cobra.Command {
	var (
		dryRun bool
		grace  time.Duration
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove pet images no record references",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("grace") {
				grace = cfg.SweepGrace
			}
			if !cmd.Flags().Changed("prefix") {
				prefix = cfg.SweepPrefix
			}

			log := newLogger(cfg)
			d, err := buildDeps(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer d.Close()

			s := pets.NewSweeper(d.repo, d.assets, pets.ServiceOptions{Logger: log})
			_, err = s.Sweep(cmd.Context(), pets.SweepOptions{Prefix: prefix, Grace: grace, DryRun: dryRun})
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only log orphaned images")
	cmd.Flags().DurationVar(&grace, "grace", pets.DefaultSweepGrace, "skip images younger than this")
	cmd.Flags().StringVar(&prefix, "prefix", "", "only scan keys with this prefix")
	return cmd
}

// newUsersCommand carga perfiles a mano (dev, demos); en producción los escribe el proveedor de identidad.
func newUsersCommand(configFile *string) *cobra.Command {
	var (
		u        users.User
		fullName string
		picture  string
	)
	upsert := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update a user profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
				return errors.New("users upsert requires DB_DRIVER=postgres or sqlite")
			}

			d := &deps{}
			defer d.Close()
			if err := d.openRecordStore(cmd.Context(), cfg, log); err != nil {
				return err
			}

			if cmd.Flags().Changed("full-name") {
				u.FullName = &fullName
			}
			if cmd.Flags().Changed("profile-picture-url") {
				u.ProfilePictureURL = &picture
			}
			_, err = users.NewService(d.users, d.repo, log).Upsert(cmd.Context(), u)
			return err
		},
	}
	upsert.Flags().StringVar(&u.ID, "id", "", "user id (as issued by the identity provider)")
	upsert.Flags().StringVar(&u.Username, "username", "", "unique username")
	upsert.Flags().StringVar(&u.Email, "email", "", "email address")
	upsert.Flags().StringVar(&fullName, "full-name", "", "display name")
	upsert.Flags().StringVar(&picture, "profile-picture-url", "", "avatar URL")
	_ = upsert.MarkFlagRequired("id")
	_ = upsert.MarkFlagRequired("username")
	_ = upsert.MarkFlagRequired("email")

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user profiles",
	}
	cmd.AddCommand(upsert)
	return cmd
}

func runServe(ctx context.Context, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.Close()

	m, err := metrics.New("", nil)
	if err != nil {
		return err
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:         d.verifier,
		Logger:               log,
		Metrics:              m,
		Pets:                 d.repo,
		Users:                d.users,
		Assets:               d.assets,
		AssetsHandler:        d.assetsHandler,
		RequireImageOnCreate: cfg.PetsRequireImage,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second, // uploads de hasta 5MB
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("server error", logger.Fields{"error": err})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
