package cmd

import (
	"fmt"
	"log/slog"

	"flight_report/internal/assets"
	"flight_report/internal/extract"
	"flight_report/internal/filter"
	"flight_report/internal/pipeline"
	"flight_report/internal/report"
	"flight_report/internal/source"

	"github.com/spf13/cobra"
)

func newDeparturesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "departures",
		Short: "Report wide-body departures from saved airport boards",
		Long: `Scans every .html file in input.dir for departures, keeps aircraft types
matching filter.include but not filter.exclude, downloads airline logos into
images.dir and writes a spreadsheet to report.xlsx_path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.setup()
			if err != nil {
				return err
			}

			paths, err := source.ListHTML(cfg.Input.Dir)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				slog.Info("No HTML files found", "dir", cfg.Input.Dir)
				return nil
			}
			slog.Info("Found HTML files to process", "count", len(paths))

			client := source.NewHTTPClient(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
			fetcher, err := assets.NewFetcher(client, cfg.Images.Dir)
			if err != nil {
				return err
			}

			publisher := report.NewPublisher(
				report.NewXLSXWriter(cfg.Report.ThumbnailSize, cfg.Report.ColumnPadding),
				report.ConflictPolicy(cfg.Report.OnConflict),
			)
			p := pipeline.New(
				pipeline.Config{Variant: "departures", ReportPath: cfg.Report.XLSXPath, ImageDir: fetcher.Dir()},
				source.NewFileLoader(),
				extract.NewDepartures(),
				filter.NewAircraftFilter(cfg.Filter.Include, cfg.Filter.Exclude),
				publisher,
			).WithImages(fetcher)

			ledger, err := openLedger(cfg)
			if err != nil {
				return err
			}
			if ledger != nil {
				defer ledger.Close()
				p.WithLedger(ledger.RunRepository())
			}

			summary, err := p.Run(cmd.Context(), paths)
			if err != nil {
				return err
			}

			renderFlights(cmd.OutOrStdout(), "departures", summary.Flights)
			fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\nImages saved to %s\n", summary.ArtifactPath, summary.ImageDir)
			return nil
		},
	}
}
