package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	assetsfs "pet-social/internal/adapters/assets/fs"
	assetsmem "pet-social/internal/adapters/assets/memory"
	assetss3 "pet-social/internal/adapters/assets/s3"
	authsupabase "pet-social/internal/adapters/auth/supabase"
	mem "pet-social/internal/adapters/storage/memory"
	pg "pet-social/internal/adapters/storage/postgres"
	"pet-social/internal/adapters/storage/sqlite"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/users"
	"pet-social/internal/platform/config"
	"pet-social/internal/platform/logger"
	"pet-social/internal/ports/auth"
)

const defaultSQLitePath = "./data/pets.db"

// deps son los adapters concretos elegidos por config.
type deps struct {
	repo          pets.Repository
	users         users.Repository
	assets        pets.ListableAssetStore
	assetsHandler http.Handler // nil para s3 (se lee directo del bucket)
	verifier      auth.AuthVerifier

	db *sql.DB
}

func (d *deps) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

func buildDeps(ctx context.Context, cfg config.Config, log logger.Logger) (*deps, error) {
	d := &deps{}

	if err := d.openRecordStore(ctx, cfg, log); err != nil {
		_ = d.Close()
		return nil, err
	}
	if err := d.openAssetStore(ctx, cfg, log); err != nil {
		_ = d.Close()
		return nil, err
	}

	if cfg.AuthEnabled() {
		client, err := authsupabase.NewClient(authsupabase.Config{BaseURL: cfg.AuthBaseURL, APIKey: cfg.AuthAPIKey})
		if err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("auth client: %w", err)
		}
		d.verifier = authsupabase.NewVerifier(client)
		log.Info("auth verifier enabled", logger.Fields{"auth_base_url": cfg.AuthBaseURL})
	} else {
		log.Warn("no auth verifier configured, running in dev mode (X-Debug-User-ID)", nil)
	}

	return d, nil
}

func (d *deps) openRecordStore(ctx context.Context, cfg config.Config, log logger.Logger) error {
	switch cfg.DBDriver {
	case "postgres":
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		d.db = db
		if cfg.DBMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
		}
		d.repo = pg.NewPetsRepo(db)
		d.users = pg.NewUsersRepo(db)

	case "sqlite":
		path := cfg.DBDSN
		if path == "" {
			path = defaultSQLitePath
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		d.db = db
		// sqlite es el modo single-binary: el schema se crea siempre.
		if err := sqlite.Migrate(ctx, db); err != nil {
			return err
		}
		d.repo = sqlite.NewPetsRepo(db)
		d.users = sqlite.NewUsersRepo(db)

	default:
		d.repo = mem.NewPetRepo()
		d.users = mem.NewUserRepo()
	}

	log.Info("record store ready", logger.Fields{"driver": cfg.DBDriver})
	return nil
}

func (d *deps) openAssetStore(ctx context.Context, cfg config.Config, log logger.Logger) error {
	switch cfg.AssetsDriver {
	case "s3":
		store, err := assetss3.New(ctx, assetss3.Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.AssetsBucket,
			Endpoint:      cfg.S3Endpoint,
			PathStyle:     cfg.S3PathStyle,
			PublicBaseURL: cfg.AssetsPublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("open s3 asset store: %w", err)
		}
		d.assets = store

	case "fs":
		store, err := assetsfs.New(cfg.AssetsFSRoot, cfg.AssetsPublicBaseURL)
		if err != nil {
			return fmt.Errorf("open fs asset store: %w", err)
		}
		d.assets, d.assetsHandler = store, store

	default:
		store, err := assetsmem.New(cfg.AssetsPublicBaseURL)
		if err != nil {
			return fmt.Errorf("open memory asset store: %w", err)
		}
		d.assets, d.assetsHandler = store, store
	}

	log.Info("asset store ready", logger.Fields{"driver": cfg.AssetsDriver, "bucket": cfg.AssetsBucket})
	return nil
}

// migrate solo aplica a drivers SQL.
func migrate(ctx context.Context, cfg config.Config) error {
	switch cfg.DBDriver {
	case "postgres":
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		return pg.Migrate(ctx, db)
	case "sqlite":
		path := cfg.DBDSN
		if path == "" {
			path = defaultSQLitePath
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		return sqlite.Migrate(ctx, db)
	default:
		return errors.New("migrate requires DB_DRIVER=postgres or sqlite")
	}
}
