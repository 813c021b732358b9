package cmd

import (
	"errors"
	"fmt"

	"flight_report/internal/extract"
	"flight_report/internal/filter"
	"flight_report/internal/pipeline"
	"flight_report/internal/report"
	"flight_report/internal/source"

	"github.com/spf13/cobra"
)

func newRegistrationsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "registrations [url...]",
		Short: "Report flights of specific aircraft touching a place",
		Long: `Fetches each aircraft history page (arguments, or input.urls when none are
given), keeps flights whose origin or destination contains filter.search and
writes them to report.csv_path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.setup()
			if err != nil {
				return err
			}

			urls := args
			if len(urls) == 0 {
				urls = cfg.Input.URLs
			}
			if len(urls) == 0 {
				return errors.New("no aircraft URLs given: pass them as arguments or set input.urls")
			}

			client := source.NewHTTPClient(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
			publisher := report.NewPublisher(report.NewCSVWriter(), report.ConflictPolicy(cfg.Report.OnConflict))
			p := pipeline.New(
				pipeline.Config{Variant: "registrations", ReportPath: cfg.Report.CSVPath},
				source.NewHTTPLoader(client),
				extract.NewRegistrations(),
				filter.NewRouteFilter(cfg.Filter.Search),
				publisher,
			)

			ledger, err := openLedger(cfg)
			if err != nil {
				return err
			}
			if ledger != nil {
				defer ledger.Close()
				p.WithLedger(ledger.RunRepository())
			}

			summary, err := p.Run(cmd.Context(), urls)
			if err != nil {
				return err
			}

			renderFlights(cmd.OutOrStdout(), "registrations", summary.Flights)
			fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\n", summary.ArtifactPath)
			return nil
		},
	}
}
