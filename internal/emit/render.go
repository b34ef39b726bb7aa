// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit renders an extracted IR as a human-readable report and
// persists it as a reloadable YAML artifact. Both operations are
// deterministic projections of the IR; persist is the only one with side
// effects.
// Implements: docs/ARCHITECTURE § Pipeline (emit).
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/orca-compiler/pkg/types"
)

// Render produces the nested text report of an IR. Sections appear in the
// fixed order n_pop, s_pop, n_params, s_total, n_total, s_params, s_tags;
// rows within a section follow the declaration order captured at extraction
// time. Quantities keep their source units.
func Render(ir *types.NetworkIR) string {
	var b strings.Builder

	b.WriteString("n_pop\n")
	for _, p := range ir.Populations {
		fmt.Fprintf(&b, "  %s: %d\n", p.ID, p.Size)
	}

	b.WriteString("s_pop\n")
	for _, s := range ir.Projections {
		fmt.Fprintf(&b, "  %s: [%s, %s]\n", s.ID, s.Pre, s.Post)
	}

	b.WriteString("n_params\n")
	for _, p := range ir.Populations {
		writeParams(&b, p.ID, p.Params)
	}

	fmt.Fprintf(&b, "s_total: %d\n", ir.TotalSynapses)
	fmt.Fprintf(&b, "n_total: %d\n", ir.TotalNeurons)

	b.WriteString("s_params\n")
	for _, s := range ir.Projections {
		writeParams(&b, s.ID, s.Params)
	}

	b.WriteString("s_tags\n")
	for _, s := range ir.Projections {
		fmt.Fprintf(&b, "  %s\n", s.ID)
		fmt.Fprintf(&b, "    plastic: %t\n", s.Plastic)
		fmt.Fprintf(&b, "    p_connection: %s\n", formatFloat(s.PConnection))
		fmt.Fprintf(&b, "    mean: %s\n", formatFloat(s.WeightMean))
		fmt.Fprintf(&b, "    std: %s\n", formatFloat(s.WeightStd))
	}

	return b.String()
}

func writeParams(b *strings.Builder, id string, params types.ParamTable) {
	fmt.Fprintf(b, "  %s\n", id)
	for _, p := range params {
		fmt.Fprintf(b, "    %s: %s\n", p.Name, p.Quantity)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
