package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	getAvailableSlotsUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_available_slots"
)

func newSlotsCmd(configPath *string) *cobra.Command {
	var (
		courtID  int64
		date     string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print free windows of a court for a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.availableSlots.Execute(cmd.Context(), &getAvailableSlotsUC.Request{
				CourtID:         courtID,
				Date:            date,
				DurationMinutes: duration,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "court %d, %s, %d min\n", resp.CourtID, resp.Date, resp.DurationMinutes)
			for _, s := range resp.Slots {
				fmt.Fprintf(w, "%s\t%s\n", s.StartTime, s.EndTime)
			}
			if len(resp.Slots) == 0 {
				fmt.Fprintln(w, "no free windows")
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&courtID, "court", 0, "court ID")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().IntVar(&duration, "duration", 60, "window length in minutes")
	_ = cmd.MarkFlagRequired("court")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
