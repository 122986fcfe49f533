package main

import (
	"fmt"

	"github.com/liliang-cn/partchat/internal/config"
	"github.com/liliang-cn/partchat/internal/repository"
	"github.com/spf13/cobra"
)

// seedCmd loads the demo catalog without starting the server
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog into the database",
	Long: `Create the catalog schema if needed and insert the demo parts,
products, compatibility edges and guides. Existing rows are kept.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := repository.Seed(cmd.Context(), db); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	parts, products, err := repository.NewCatalogRepository(db).Counts(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Catalog ready at %s: %d parts, %d products\n", cfg.Database.Path, parts, products)
	return nil
}
