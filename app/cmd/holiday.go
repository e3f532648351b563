package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"twogether/app/repositories"
	"twogether/app/services"
	"twogether/bootstrap"
	"twogether/pkg/app"
	"twogether/pkg/config"
	"twogether/pkg/holiday"
)

// NewHolidayCommand 节假日相关命令
func NewHolidayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage public holidays",
	}
	cmd.AddCommand(newHolidaySyncCommand())
	return cmd
}

func newHolidaySyncCommand() *cobra.Command {
	now := time.Now().In(time.UTC)
	var year, month int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch holidays of a month from the public API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db := bootstrap.ConnectDB()
			calendar := services.NewCalendarService(nil, repositories.NewHolidayRepository(db), holiday.NewClient(holiday.Config{
				BaseURL:    config.GetString("holiday.url"),
				ServiceKey: config.GetString("holiday.service_key"),
				Timeout:    config.GetDuration("holiday.timeout", "10s"),
			}), app.Location())

			n, err := calendar.SyncHolidays(cmd.Context(), year, month)
			if err != nil {
				return err
			}
			cmd.Printf("synced %d holidays for %04d-%02d\n", n, year, month)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", now.Year(), "year to sync")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "month to sync (1-12)")
	return cmd
}
