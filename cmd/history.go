package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var runID int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, or the flights of one run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.setup()
			if err != nil {
				return err
			}

			ledger, err := openLedger(cfg)
			if err != nil {
				return err
			}
			if ledger == nil {
				return errors.New("db_path is empty: no run history is kept")
			}
			defer ledger.Close()

			repo := ledger.RunRepository()
			if runID > 0 {
				flights, err := repo.Flights(cmd.Context(), runID)
				if err != nil {
					return err
				}
				renderFlights(cmd.OutOrStdout(), "", flights)
				return nil
			}

			runs, err := repo.Recent(cmd.Context(), cfg.History.Limit)
			if err != nil {
				return err
			}
			renderRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().Int64Var(&runID, "run", 0, "Show the flights recorded by this run")
	return cmd
}
