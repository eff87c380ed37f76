package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-dashboard/internal/dashboard"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

var fieldNames = []string{"trade_code", "high", "low", "open", "close", "volume"}

var fieldValues = make(map[string]*string, len(fieldNames))

var createCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a record",
	Example: `  dashboard create --trade_code GP --open 365 --high 370.5 --low 361 --close 369.9 --volume 250000`,
	Args:    cobra.NoArgs,
	RunE:    runCreate,
}

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Edit a record; only the flags given are changed",
	Example: `  dashboard update 42 --close 370`,
	Args:    cobra.ExactArgs(1),
	RunE:    runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Ask the API to write the dataset to a path on the server",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	for _, name := range fieldNames {
		fieldValues[name] = new(string)
		createCmd.Flags().StringVar(fieldValues[name], name, "", name+" value")
		updateCmd.Flags().StringVar(fieldValues[name], name, "", "new "+name+" value")
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	var fields models.StockFields
	for _, name := range fieldNames {
		fields.Set(name, *fieldValues[name])
	}

	form := dashboard.NewCreateForm(remote, nil)
	if err := form.SetFields(fields); err != nil {
		return err
	}
	record, err := form.Submit(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created record %s (%s)\n", record.ID, record.TradeCode)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]
	form := dashboard.NewEditForm(remote, func(context.Context) {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated record %s\n", id)
	})
	if err := form.Load(cmd.Context(), id); err != nil {
		return err
	}

	for _, name := range fieldNames {
		if cmd.Flags().Changed(name) {
			if err := form.SetField(name, *fieldValues[name]); err != nil {
				return err
			}
		}
	}
	return form.Submit(cmd.Context())
}

func runDelete(cmd *cobra.Command, args []string) error {
	list := dashboard.NewListController(remote)
	if err := list.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %s\n", args[0])
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	list := dashboard.NewListController(remote)
	msg, err := list.Export(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
