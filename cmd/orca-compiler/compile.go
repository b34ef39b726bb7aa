// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/orca-compiler/internal/catalog"
	"github.com/pdiddy/orca-compiler/internal/emit"
	"github.com/pdiddy/orca-compiler/internal/extract"
	"github.com/pdiddy/orca-compiler/internal/netsource"
	"github.com/pdiddy/orca-compiler/pkg/types"
)

var compileCmd = &cobra.Command{
	Use:   "compile <network.yaml>...",
	Short: "Extract the IR from network descriptions and persist artifacts",
	Long: `Compile loads each network description, extracts the normalized IR
(populations, projections, parameter tables, connectivity tags, totals),
and writes one artifact per network into the artifacts directory. The
directory must already exist. With --catalog the snapshot is also recorded
in the local catalog; with --print the structured report is written to
stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	useCatalog, _ := cmd.Flags().GetBool("catalog")
	printReport, _ := cmd.Flags().GetBool("print")

	cfg := types.PipelineConfig{
		Compile: compileConfig(cmd),
		Catalog: catalogConfig(cmd),
	}

	var cat *catalog.Catalog
	if useCatalog {
		var err error
		cat, err = catalog.Open(cfg.Catalog)
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	w := os.Stderr
	failed := 0

	for _, path := range args {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Compile.NetworksDir, path)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		net, err := netsource.LoadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			failed++
			continue
		}

		ir, err := extract.Snapshot(net)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			failed++
			continue
		}

		out, err := emit.Persist(ir, cfg.Compile.ArtifactsDir, name)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "compiled %s (%d neurons, %d synapses) -> %s\n",
			ir.Name, ir.TotalNeurons, ir.TotalSynapses, out)

		if cat != nil {
			id, err := cat.Save(context.Background(), ir)
			if err != nil {
				fmt.Fprintf(w, "failed  %s: catalog: %v\n", name, err)
				failed++
				continue
			}
			fmt.Fprintf(w, "recorded %s as %s\n", ir.Name, id)
		}

		if printReport {
			fmt.Fprint(os.Stdout, emit.Render(ir))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d network(s) failed to compile", failed)
	}
	return nil
}

// compileConfig assembles the compile-stage configuration from the command's
// flags, falling back to the stage defaults.
func compileConfig(cmd *cobra.Command) types.CompileConfig {
	networksDir, _ := cmd.Flags().GetString("networks-dir")
	if networksDir == "" {
		networksDir = "."
	}
	artifactsDir, _ := cmd.Flags().GetString("artifacts-dir")
	if artifactsDir == "" {
		artifactsDir = "artifacts"
	}
	return types.CompileConfig{
		NetworksDir:  networksDir,
		ArtifactsDir: artifactsDir,
	}
}

func init() {
	compileCmd.Flags().String("networks-dir", ".", "base directory for relative network description paths")
	compileCmd.Flags().String("artifacts-dir", "artifacts", "directory for compiled IR artifacts (must exist)")
	compileCmd.Flags().Bool("catalog", false, "also record the snapshot in the catalog")
	compileCmd.Flags().String("catalog-dir", "catalog", "directory holding the catalog database")
	compileCmd.Flags().Int("max-results", 20, "maximum number of listed snapshots")
	compileCmd.Flags().Bool("print", false, "print the structured report to stdout")

	rootCmd.AddCommand(compileCmd)
}
