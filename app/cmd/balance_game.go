package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"twogether/app/models"
	"twogether/app/repositories"
	"twogether/app/services"
	"twogether/bootstrap"
	"twogether/pkg/app"
)

// NewBalanceGameCommand 每日题目管理
func NewBalanceGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance-game",
		Short: "Manage daily balance games",
	}
	cmd.AddCommand(newBalanceGameCreateCommand())
	return cmd
}

func newBalanceGameCreateCommand() *cobra.Command {
	var date, question string
	var options []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the balance game of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = app.Today()
			}
			day, err := models.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}

			db := bootstrap.ConnectDB()
			games := services.NewBalanceGameService(repositories.NewUserRepository(db), repositories.NewBalanceGameRepository(db), app.Location())
			game, err := games.Create(cmd.Context(), day, question, options)
			if err != nil {
				return err
			}
			cmd.Printf("created balance game %d for %s\n", game.GameID, day)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date of the game (yyyy-MM-dd), defaults to today")
	cmd.Flags().StringVar(&question, "question", "", "question text")
	cmd.Flags().StringSliceVar(&options, "option", nil, "option text, repeat for each option")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}
