// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the orca-compiler CLI: the high-level
// front-end that turns spiking-network descriptions into the normalized IR
// the ORCA code generator consumes.
// Implements: docs/ARCHITECTURE § Pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the orca-compiler CLI.
var rootCmd = &cobra.Command{
	Use:   "orca-compiler",
	Short: "Compile spiking neural network descriptions to ORCA IR",
	Long: `orca-compiler extracts a normalized, hardware-agnostic intermediate
representation from a spiking neural network description: population
topology, per-population and per-projection parameter tables, connectivity
tags, and aggregate counts. The IR is rendered as a structured report,
persisted as a reloadable artifact, and optionally recorded in a local
snapshot catalog.

Synaptic index lists are never captured: the target hardware re-derives
connectivity from connection probability and weight-distribution tags,
since learning happens on-chip.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./orca-compiler.yaml or ~/.config/orca-compiler/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("orca-compiler")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "orca-compiler"))
		}
	}

	viper.SetEnvPrefix("ORCA_COMPILER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
