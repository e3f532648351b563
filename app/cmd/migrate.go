package cmd

import (
	"github.com/spf13/cobra"

	"twogether/bootstrap"
)

// NewMigrateCommand 自动迁移数据表
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run gorm auto migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootstrap.Migrate(bootstrap.ConnectDB()); err != nil {
				return err
			}
			cmd.Println("migration completed")
			return nil
		},
	}
}
