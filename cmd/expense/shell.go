package main

import (
	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/spf13/cobra"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := initService()
			if err != nil {
				return err
			}

			return cli.NewShell(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}
