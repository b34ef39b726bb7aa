// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package netsource

import "github.com/pdiddy/orca-compiler/pkg/types"

// Builder is the in-memory reference implementation of Network. The YAML
// loader and the test suites construct networks through it; a bridge to a
// real simulator would implement the interfaces directly instead.
type Builder struct {
	name        string
	populations []Population
	projections []Projection
}

// New returns an empty named network.
func New(name string) *Builder {
	return &Builder{name: name}
}

func (b *Builder) Name() string              { return b.name }
func (b *Builder) Populations() []Population { return b.populations }
func (b *Builder) Projections() []Projection { return b.projections }

// Group is a concrete population: a neuron group or generator source.
type Group struct {
	name   string
	kind   types.PopulationKind
	size   int
	params types.ParamTable
	hasP   bool
}

func (g *Group) Name() string               { return g.name }
func (g *Group) Kind() types.PopulationKind { return g.kind }
func (g *Group) Size() int                  { return g.size }

func (g *Group) Parameters() (types.ParamTable, bool) {
	return g.params, g.hasP
}

// AddPopulation appends a neuron group with its parameter table. A nil
// table means the group carries none; extraction rejects that for neuron
// groups. Pass an empty non-nil table for a group with no parameters.
func (b *Builder) AddPopulation(name string, size int, params types.ParamTable) *Group {
	return b.addGroup(name, types.KindNeuron, size, params, params != nil)
}

// AddPoisson appends a Poisson generator source. Generators are
// population-like: projections may fan in from them, and they enter the
// population table with their own kind.
func (b *Builder) AddPoisson(name string, size int, params types.ParamTable) *Group {
	return b.addGroup(name, types.KindPoisson, size, params, params != nil)
}

// AddSpikeGen appends a spike-generator source.
func (b *Builder) AddSpikeGen(name string, size int) *Group {
	return b.addGroup(name, types.KindSpikeGen, size, nil, false)
}

func (b *Builder) addGroup(name string, kind types.PopulationKind, size int, params types.ParamTable, hasP bool) *Group {
	g := &Group{name: name, kind: kind, size: size, params: params, hasP: hasP}
	b.populations = append(b.populations, g)
	return g
}

// Connection is a concrete projection between two groups.
type Connection struct {
	name    string
	pre     Population
	post    Population
	params  types.ParamTable
	hasP    bool
	plastic bool

	sign    types.Sign
	hasSign bool

	prob    float64
	hasProb bool

	dist    WeightDist
	hasDist bool

	synapses    int
	hasSynapses bool
}

func (c *Connection) Name() string     { return c.name }
func (c *Connection) Pre() Population  { return c.pre }
func (c *Connection) Post() Population { return c.post }
func (c *Connection) Plastic() bool    { return c.plastic }

func (c *Connection) Parameters() (types.ParamTable, bool) {
	return c.params, c.hasP
}

func (c *Connection) ExplicitSign() (types.Sign, bool) {
	return c.sign, c.hasSign
}

func (c *Connection) ConnectionProbability() (float64, bool) {
	return c.prob, c.hasProb
}

func (c *Connection) WeightDistribution() (WeightDist, bool) {
	return c.dist, c.hasDist
}

func (c *Connection) SynapseCount() (int, bool) {
	return c.synapses, c.hasSynapses
}

// ConnectOption configures a Connection beyond its endpoints and parameters.
type ConnectOption func(*Connection)

// WithProbability marks the projection as generated by a probabilistic
// connectivity rule with probability p.
func WithProbability(p float64) ConnectOption {
	return func(c *Connection) {
		c.prob = p
		c.hasProb = true
	}
}

// WithPlasticity attaches a weight-update rule to the projection.
func WithPlasticity() ConnectOption {
	return func(c *Connection) { c.plastic = true }
}

// WithSign declares an explicit polarity, overriding weight-based derivation.
func WithSign(sign types.Sign) ConnectOption {
	return func(c *Connection) {
		c.sign = sign
		c.hasSign = true
	}
}

// WithRandomWeights records that weights were drawn from a distribution with
// the given mean and standard deviation.
func WithRandomWeights(mean, std float64) ConnectOption {
	return func(c *Connection) {
		c.dist = WeightDist{Mean: mean, Std: std}
		c.hasDist = true
	}
}

// WithSynapseCount records an explicitly enumerated synapse count.
func WithSynapseCount(n int) ConnectOption {
	return func(c *Connection) {
		c.synapses = n
		c.hasSynapses = true
	}
}

// Connect appends a projection from pre to post with the given parameter
// table. The endpoints need not belong to this builder; extraction rejects
// foreign endpoints when it resolves identities.
func (b *Builder) Connect(name string, pre, post Population, params types.ParamTable, opts ...ConnectOption) *Connection {
	c := &Connection{
		name:   name,
		pre:    pre,
		post:   post,
		params: params,
		hasP:   params != nil,
	}
	for _, opt := range opts {
		opt(c)
	}
	b.projections = append(b.projections, c)
	return c
}
