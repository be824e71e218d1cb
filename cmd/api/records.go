package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	mem "livestock-assessment/internal/adapters/storage/memory"
	pg "livestock-assessment/internal/adapters/storage/postgres"
	"livestock-assessment/internal/domain/records"

	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records [query]",
	Short: "Lista el catálogo del rebaño (DB_DSN o seed embebido)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listRecords,
}

var recordsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Crea la tabla animals y carga el seed embebido en Postgres (requiere DB_DSN)",
	Args:  cobra.NoArgs,
	RunE:  importRecords,
}

func init() {
	recordsCmd.AddCommand(recordsImportCmd)
}

func listRecords(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	var repo records.Repository
	if cfg.DBDSN != "" {
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		repo = pg.NewRecordsRepo(db)
	} else {
		seed, err := records.Seed()
		if err != nil {
			return err
		}
		repo = mem.NewRecordRepo(seed)
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	return printRecords(ctx, cmd.OutOrStdout(), records.NewService(repo), query)
}

func printRecords(ctx context.Context, out io.Writer, svc *records.Service, query string) error {
	list, err := svc.List(ctx, query)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBREED\tSCORE\tBAND\tSTATUS\tLAST ASSESSED")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Breed, a.Score, records.ScoreBand(a.Score), a.Status, a.LastAssessed)
	}
	return tw.Flush()
}

func importRecords(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.DBDSN == "" {
		return errors.New("DB_DSN is required for import")
	}

	seed, err := records.Seed()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := pg.Open(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	repo := pg.NewRecordsRepo(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := repo.Import(ctx, seed); err != nil {
		return fmt.Errorf("import herd: %w", err)
	}

	log.Info("herd imported", map[string]any{"count": len(seed)})
	return nil
}
