package main

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the effective detection rules",
		RunE:  runRules,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().StringVarP(&flagPatterns, "patterns", "p", "", "pattern definition file (YAML or JSON); builtin rules when empty")
}

func runRules(_ *cobra.Command, _ []string) error {
	set, err := loadRules(flagPatterns)
	if err != nil {
		return err
	}
	table := tablewriter.NewTable(os.Stdout)
	table.Header("RISK", "NAME", "PATTERN", "DESCRIPTION")
	for _, r := range set.ByRiskDescending() {
		_ = table.Append([]string{string(r.Risk), r.Name, r.Expr.String(), r.Description})
	}
	return table.Render()
}
