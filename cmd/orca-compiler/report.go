// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/orca-compiler/internal/emit"
	"github.com/pdiddy/orca-compiler/internal/extract"
	"github.com/pdiddy/orca-compiler/internal/netsource"
	"github.com/pdiddy/orca-compiler/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report <artifact.yaml | network.yaml>",
	Short: "Print the structured report for an artifact or description",
	Long: `Report prints the nested IR report (n_pop, s_pop, n_params, s_total,
n_total, s_params, s_tags). The input is a compiled artifact by default;
with --from-description the file is treated as a network description and
extracted first.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	fromDescription, _ := cmd.Flags().GetBool("from-description")

	var ir *types.NetworkIR
	if fromDescription {
		net, err := netsource.LoadFile(args[0])
		if err != nil {
			return err
		}
		ir, err = extract.Snapshot(net)
		if err != nil {
			return err
		}
	} else {
		var err error
		ir, err = emit.Load(args[0])
		if err != nil {
			return err
		}
	}

	fmt.Print(emit.Render(ir))
	return nil
}

func init() {
	reportCmd.Flags().Bool("from-description", false, "treat the input as a network description and extract it first")

	rootCmd.AddCommand(reportCmd)
}
