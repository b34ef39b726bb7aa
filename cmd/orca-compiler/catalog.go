// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/orca-compiler/internal/catalog"
	"github.com/pdiddy/orca-compiler/internal/emit"
	"github.com/pdiddy/orca-compiler/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local snapshot catalog (list, show, export, delete)",
	Long: `Catalog manages the local SQLite database of compiled snapshots.
Snapshots are recorded by "compile --catalog" and addressed by any
unambiguous prefix of their identifier.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded snapshots, newest first",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List(context.Background())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No snapshots recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %10s  %10s  %s\n",
		"ID", "Network", "Neurons", "Synapses", "Recorded")
	for _, e := range entries {
		name := e.Name
		if len(name) > 20 {
			name = name[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %10d  %10d  %s\n",
			e.ID, name, e.Neurons, e.Synapses, humanize.Time(e.CreatedAt))
	}
	fmt.Fprintf(os.Stdout, "\n%d snapshot(s)\n", len(entries))
	return nil
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the structured report for a recorded snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer cat.Close()

	ir, err := cat.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Print(emit.Render(ir))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Re-export a recorded snapshot as an IR artifact",
	RunE:  runCatalogExport,
	Args:  cobra.ExactArgs(1),
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")

	cat, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer cat.Close()

	ir, err := cat.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	dir, filename := filepath.Split(outPath)
	if dir == "" {
		dir = "."
	}
	path, err := emit.Persist(ir, filepath.Clean(dir), filename)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s\n", ir.Name, path)
	return nil
}

// --- delete subcommand ---

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a recorded snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogDelete,
}

func runCatalogDelete(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Open(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := cat.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// --- shared helpers ---

func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = "catalog"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CatalogConfig{
		CatalogDir: catalogDir,
		MaxResults: maxResults,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding the catalog database")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of listed snapshots")

	catalogExportCmd.Flags().String("out", "snapshot.yaml", "output path for the exported artifact")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)

	rootCmd.AddCommand(catalogCmd)
}
