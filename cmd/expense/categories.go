package main

import (
	"fmt"

	"github.com/Veraticus/expense-tracker/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List and add the categories expenses are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := initService()
			if err != nil {
				return err
			}

			categories, err := svc.GetCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			return cli.RenderCategories(cmd.OutOrStdout(), categories)
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add an expense category",
		Long:  `Create an expense category. Adding a name that already exists (ignoring case) is a no-op.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := initService()
			if err != nil {
				return err
			}

			category, err := svc.AddCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Category %q is ready (ID: %s)", category.Name, category.ID)))
			return nil
		},
	}
}
