// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/orca-compiler/internal/emit"
	"github.com/pdiddy/orca-compiler/internal/extract"
	"github.com/pdiddy/orca-compiler/internal/netsource"
	"github.com/pdiddy/orca-compiler/pkg/types"
)

// The full pipeline: description -> source network -> IR -> artifact ->
// reloaded IR. The reloaded IR must equal the extracted one by value.
const pipelineDoc = `
name: sequence_learning
populations:
  - name: input
    kind: spikegen
    size: 64
  - name: n_exc
    size: 128
    params:
      refP: 2 ms
      Cm: 281 pF
  - name: n_inh
    size: 32
    params:
      refP: 1 ms
projections:
  - name: s_in_exc
    pre: input
    post: n_exc
    plastic: true
    p_connection: 0.25
    weights:
      mean: 0.4
      std: 0.1
    params:
      weight: 1 nS
      taupre: 20 ms
      taupost: 20 ms
  - name: s_exc_inh
    pre: n_exc
    post: n_inh
    params:
      weight: 0.6 nS
  - name: s_inh_exc
    pre: n_inh
    post: n_exc
    sign: inh
    p_connection: 0.9
    params:
      weight: -0.55 nS
`

func TestDescriptionToArtifactRoundTrip(t *testing.T) {
	net, err := netsource.Load(strings.NewReader(pipelineDoc))
	require.NoError(t, err)

	ir, err := extract.Snapshot(net)
	require.NoError(t, err)
	require.NoError(t, ir.Validate())

	// Totals: 64 + 128 + 32 neurons; synapses are the per-projection
	// estimates round(pre*post*p).
	require.Equal(t, 224, ir.TotalNeurons)
	wantSynapses := 2048 + 4096 + 3686 // 64*128*0.25, 128*32, round(32*128*0.9)
	require.Equal(t, wantSynapses, ir.TotalSynapses)

	require.Equal(t, types.SignExcitatory, ir.Projection("s_in_exc").Sign)
	require.Equal(t, types.SignExcitatory, ir.Projection("s_exc_inh").Sign)
	require.Equal(t, types.SignInhibitory, ir.Projection("s_inh_exc").Sign)

	dir := t.TempDir()
	path, err := emit.Persist(ir, dir, "sequence_learning")
	require.NoError(t, err)

	reloaded, err := emit.Load(path)
	require.NoError(t, err)
	require.True(t, reloaded.Equal(ir), "artifact round trip changed the IR")

	// The report renders identically for the extracted and reloaded IR.
	require.Equal(t, emit.Render(ir), emit.Render(reloaded))
}
