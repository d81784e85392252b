package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"upliftService/business/uplift"
	fileRepo "upliftService/internal/repository/file"
	psqlRepo "upliftService/internal/repository/postgres"
	"upliftService/pkg/config"
	"upliftService/pkg/database"
	"upliftService/pkg/logger"

	"github.com/urfave/cli/v3"
)

var (
	name    = "uplift-artifacts"
	version = "v0.0.1-default"

	bundleFlag = &cli.StringFlag{
		Name:    "bundle",
		Usage:   "Path to the artifact bundle (.json, .yaml or .yml)",
		Value:   "artifacts/bundle.json",
		Sources: cli.EnvVars("ARTIFACT_PATH"),
	}

	migrateFlag = &cli.BoolFlag{
		Name:  "migrate",
		Usage: "Create or update the artifact tables before publishing",
	}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.App.Environment)

	cmd := &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Validate and publish uplift model artifacts",
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Load a bundle file and build both models and the scaler",
				Flags: []cli.Flag{bundleFlag},
				Action: func(ctx context.Context, c *cli.Command) error {
					return validateAction(ctx, c, cfg)
				},
			},
			{
				Name:  "publish",
				Usage: "Store a bundle file in postgres as the latest artifacts",
				Flags: []cli.Flag{bundleFlag, migrateFlag},
				Action: func(ctx context.Context, c *cli.Command) error {
					return publishAction(ctx, c, cfg)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("Command failed", "error", err)
	}
}

func validateAction(ctx context.Context, c *cli.Command, cfg *config.Config) error {
	bundle, err := fileRepo.NewArtifactRepository(c.String(bundleFlag.Name)).LoadBundle(ctx)
	if err != nil {
		return err
	}

	models, err := uplift.ModelContextFromBundle(bundle)
	if err != nil {
		return err
	}
	upliftCfg, err := uplift.NewConfig(cfg.Uplift.NormalizationPolicy, cfg.Uplift.CapDivisor, cfg.Uplift.ZeroFillMissing)
	if err != nil {
		return err
	}
	svc, err := uplift.NewUpliftService(models, upliftCfg)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(svc.Diagnostics(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func publishAction(ctx context.Context, c *cli.Command, cfg *config.Config) error {
	path := c.String(bundleFlag.Name)
	bundle, err := fileRepo.NewArtifactRepository(path).LoadBundle(ctx)
	if err != nil {
		return err
	}
	if _, err := uplift.ModelContextFromBundle(bundle); err != nil {
		return fmt.Errorf("refusing to publish invalid bundle: %w", err)
	}

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return err
	}
	defer database.ClosePostgres(db)

	repo := psqlRepo.NewArtifactRepository(db)
	if c.Bool(migrateFlag.Name) {
		if err := repo.Migrate(); err != nil {
			return fmt.Errorf("migrate artifact tables: %w", err)
		}
	}

	saveCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := repo.SaveBundle(saveCtx, bundle); err != nil {
		return fmt.Errorf("save bundle: %w", err)
	}

	logger.Info("Bundle published",
		"path", path,
		"control", bundle.Control.Name,
		"treated", bundle.Treated.Name,
		"scaler", bundle.Scaler.Name,
	)
	return nil
}
