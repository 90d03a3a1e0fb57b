package root

import (
	"context"
	"database/sql"

	"github.com/Pyro18/codepaw/internal/config"
	"github.com/Pyro18/codepaw/internal/pet"
	"github.com/Pyro18/codepaw/internal/storage"
	petsync "github.com/Pyro18/codepaw/internal/sync"
)

type app struct {
	cfg  config.Config
	db   *sql.DB
	mgr  *pet.Manager
	sync *petsync.Client
}

// openApp wires storage, engine, and sync client together, and runs the
// once-per-day streak check the way the editor extension did at activation.
func openApp(ctx context.Context) (*app, func(), error) {
	cfg := config.Load()

	path, err := storage.DefaultStatePath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	settings := storage.NewSettingsRepo(db)
	name, err := petName(ctx, settings, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	mgr, err := pet.NewManager(ctx, db, pet.Options{Name: name, AutoSync: cfg.AutoSync})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	client := petsync.NewClient(settings)
	mgr.SetUploader(func(r *pet.PetRecord) error {
		return client.Upload(context.Background(), r)
	})

	if _, err := mgr.CheckDailyStreak(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	return &app{cfg: cfg, db: db, mgr: mgr, sync: client}, cleanup, nil
}

// petName resolves the pet's display name. An explicit config value wins and
// is remembered in settings; otherwise a previously stored name survives
// config changes, and the built-in default is stored on first run.
func petName(ctx context.Context, settings *storage.SettingsRepo, cfg config.Config) (string, error) {
	if cfg.PetNameSet {
		if err := settings.Set(ctx, storage.SettingPetName, cfg.PetName); err != nil {
			return "", err
		}
		return cfg.PetName, nil
	}
	stored, err := settings.Get(ctx, storage.SettingPetName)
	if err != nil {
		return "", err
	}
	if stored != "" {
		return stored, nil
	}
	if err := settings.Set(ctx, storage.SettingPetName, cfg.PetName); err != nil {
		return "", err
	}
	return cfg.PetName, nil
}
