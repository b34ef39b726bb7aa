// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CompileConfig holds settings for the compile stage.
type CompileConfig struct {
	// NetworksDir is the base directory for network description files.
	NetworksDir string `json:"networks_dir" yaml:"networks_dir"`

	// ArtifactsDir is the directory compiled IR artifacts are written to.
	// It must already exist; compile does not create it.
	ArtifactsDir string `json:"artifacts_dir" yaml:"artifacts_dir"`
}

// CatalogConfig holds settings for the snapshot catalog.
type CatalogConfig struct {
	// CatalogDir is the directory holding the catalog database.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of listed snapshots (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Compile CompileConfig `json:"compile" yaml:"compile"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}
