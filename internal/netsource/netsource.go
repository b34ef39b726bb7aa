// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package netsource defines the read-only contract a simulation-framework
// adapter must satisfy for its networks to be compiled, together with an
// in-memory reference implementation and a YAML description loader. The
// extractor depends only on the interfaces here, never on a concrete
// simulator type, so different source ecosystems plug in behind one adapter
// boundary.
// Implements: docs/ARCHITECTURE § Pipeline (netsource).
package netsource

import "github.com/pdiddy/orca-compiler/pkg/types"

// Network is a fully constructed source network snapshot. Implementations
// must return populations and projections in declaration order and must not
// be mutated while extraction runs.
type Network interface {
	// Name identifies the network.
	Name() string

	// Populations returns every neuron group and population-like generator
	// source, in declaration order.
	Populations() []Population

	// Projections returns every synaptic connection group, in declaration
	// order.
	Projections() []Projection
}

// Population is one neuron group or generator source as the simulator
// exposes it. Projections reference populations by identity: the same group
// must be represented by the same Population value everywhere.
type Population interface {
	Name() string
	Kind() types.PopulationKind
	Size() int

	// Parameters returns the group's parameter table in declaration order.
	// ok is false when the group carries no parameter table at all, which
	// is legal only for generator sources.
	Parameters() (params types.ParamTable, ok bool)
}

// WeightDist describes the distribution synaptic weights were drawn from.
type WeightDist struct {
	Mean float64
	Std  float64
}

// Projection is one synaptic connection group as the simulator exposes it.
type Projection interface {
	Name() string

	// Pre and Post are the endpoint groups, by identity.
	Pre() Population
	Post() Population

	// Parameters returns the projection's parameter table in declaration
	// order; ok is false when the projection carries none.
	Parameters() (params types.ParamTable, ok bool)

	// Plastic reports whether a weight-update (learning) mechanism is
	// attached to the projection.
	Plastic() bool

	// ExplicitSign returns the declared polarity, if the source declares
	// one. When ok is false the extractor derives the sign from the
	// dominant weight parameter.
	ExplicitSign() (sign types.Sign, ok bool)

	// ConnectionProbability returns the probability of the connectivity
	// rule that generated the projection. ok is false for deterministic
	// (all-to-all) connectivity, which the extractor records as 1.
	ConnectionProbability() (p float64, ok bool)

	// WeightDistribution returns the weight-initialization distribution.
	// ok is false when weights are not randomly initialized.
	WeightDistribution() (dist WeightDist, ok bool)

	// SynapseCount returns the exact number of synapses when the source
	// explicitly enumerates indices. ok is false otherwise, in which case
	// the extractor estimates from sizes and probability.
	SynapseCount() (n int, ok bool)
}
