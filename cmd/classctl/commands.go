package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kirillkom/legal-classification-browser/internal/bootstrap"
	"github.com/kirillkom/legal-classification-browser/internal/config"
	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

type rootOptions struct {
	dataDir    string
	sourceFile string
	variant    string
	schemaPath string
}

type filterOptions struct {
	subject       string
	keyword       string
	minConfidence float64
}

func (o filterOptions) filter() domain.Filter {
	return domain.Filter{
		Subject:       o.subject,
		Keyword:       o.keyword,
		MinConfidence: o.minConfidence,
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "classctl",
		Short: "Inspect and export the classified legal projects table",
		Long: `classctl reads the same table as the browser service and prints
subjects, filtered records and statistics, or writes filtered exports
into the data directory.

Environment variables from the service (DATA_DIR, SOURCE_KIND, SCHEMA_VARIANT,
...) apply; flags override them.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory (default: DATA_DIR)")
	root.PersistentFlags().StringVar(&opts.sourceFile, "source", "", "Source file inside the data directory")
	root.PersistentFlags().StringVar(&opts.variant, "variant", "", "Schema variant: assigned, predicted or explained")
	root.PersistentFlags().StringVar(&opts.schemaPath, "schema", "", "YAML schema file")

	root.AddCommand(
		newSubjectsCmd(opts),
		newListCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func (o *rootOptions) config() config.Config {
	cfg := config.Load()
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.sourceFile != "" {
		cfg.SourceFile = o.sourceFile
	}
	if o.variant != "" {
		cfg.SchemaVariant = o.variant
	}
	if o.schemaPath != "" {
		cfg.SchemaPath = o.schemaPath
	}
	return cfg
}

func (o *rootOptions) open(ctx context.Context) (*bootstrap.App, error) {
	return bootstrap.New(ctx, o.config())
}

func addFilterFlags(cmd *cobra.Command, f *filterOptions) {
	cmd.Flags().StringVar(&f.subject, "subject", domain.AllSubjects, `Subject to keep ("all" keeps every subject)`)
	cmd.Flags().StringVar(&f.keyword, "keyword", "", "Case-insensitive text to search in the relevant segment")
	cmd.Flags().Float64Var(&f.minConfidence, "min-confidence", 0, "Minimum confidence percentage (0-100)")
}

func newSubjectsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List distinct subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			for _, subject := range app.Browser.Subjects() {
				fmt.Fprintln(cmd.OutOrStdout(), subject)
			}
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var f filterOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the records matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := app.Browser.Browse(cmd.Context(), f.filter())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mostrando %d de %d proyectos.\n", result.Shown, result.Total)
			for _, card := range result.Cards {
				fmt.Fprintln(out, card.Label)
			}
			return nil
		},
	}
	addFilterFlags(cmd, &f)
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print subject distribution and summary metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			return printStats(cmd.OutOrStdout(), app.Browser.Distribution(), app.Browser.Summary())
		},
	}
}

func printStats(w io.Writer, distribution []domain.SubjectCount, summary domain.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBJECT\tCOUNT")
	for _, item := range distribution {
		fmt.Fprintf(tw, "%s\t%d\n", item.Subject, item.Count)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Total de proyectos\t%d\n", summary.Total)
	fmt.Fprintf(tw, "Materias distintas\t%d\n", summary.DistinctSubjects)
	if summary.MeanConfidence != nil {
		fmt.Fprintf(tw, "Confianza promedio\t%.1f%%\n", *summary.MeanConfidence)
	}
	for _, band := range summary.Histogram {
		fmt.Fprintf(tw, "%s\t%d\n", band.Label, band.Count)
	}
	return tw.Flush()
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		f      filterOptions
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered records into the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exportFormat, ok := domain.ParseExportFormat(format)
			if !ok {
				return fmt.Errorf("unsupported export format %q", format)
			}

			app, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			payload, err := app.Exporter.Export(cmd.Context(), f.filter(), exportFormat)
			if err != nil {
				return err
			}
			key := out
			if key == "" {
				key = payload.Filename
			}
			if err := app.Storage.Save(cmd.Context(), key, bytes.NewReader(payload.Data)); err != nil {
				return fmt.Errorf("save export: %w", err)
			}
			path, err := app.Storage.Path(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(payload.Data), path)
			return nil
		},
	}
	addFilterFlags(cmd, &f)
	cmd.Flags().StringVar(&format, "format", string(domain.FormatCSV), "Export format: csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "Output key inside the data directory (default: proyectos_filtrados.<format>)")
	return cmd
}
