package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/folio-works/portfolio-backend/config"
	"github.com/folio-works/portfolio-backend/internal/bootstrap"
	"github.com/folio-works/portfolio-backend/internal/logger"
	"github.com/folio-works/portfolio-backend/internal/pagecache"
	"github.com/folio-works/portfolio-backend/internal/projects/seed"
	"github.com/folio-works/portfolio-backend/internal/projects/service"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import projects from a YAML file",
	Long: `Add every project listed in a YAML seed file to the configured store.

Entries go through the same validation and featured limit as the admin API;
rejected entries are reported and the rest are still imported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}

		cfg, err := config.LoadForTools()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		zl, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer zl.Sync()

		ctx := cmd.Context()

		store, closeStore, err := bootstrap.OpenStore(ctx, cfg, zl)
		if err != nil {
			return err
		}
		defer closeStore()

		var pages service.Revalidator = pagecache.Noop{}
		rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{RedisConfig: cfg.Redis})
		if err != nil {
			zl.Warn("page cache unavailable, cached pages will expire on their own", zap.Error(err))
		} else if rdb != nil {
			defer rdb.Close()
			pages = pagecache.New(rdb, cfg.Redis.PageTTL, zl)
		}

		res := seed.Apply(ctx, service.NewProjectService(store, pages, zl), file)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "added %d project(s)\n", len(res.Added))
		for _, f := range res.Failed {
			fmt.Fprintf(out, "skipped %q: %v\n", f.Title, f.Err)
		}
		if len(res.Failed) > 0 {
			return fmt.Errorf("%d of %d project(s) were not imported", len(res.Failed), len(file.Projects))
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "projects.yaml", "seed file")
	rootCmd.AddCommand(seedCmd)
}
