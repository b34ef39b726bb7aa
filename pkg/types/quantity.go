// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Quantity is a physical parameter value: a numeric magnitude plus the unit
// it was declared with. No unit conversion is ever performed; quantities pass
// through the pipeline exactly as the source network declared them. A
// dimensionless quantity has an empty Unit.
type Quantity struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// String renders the quantity as "<value> <unit>", or just "<value>" when
// dimensionless. The magnitude uses the shortest exact representation.
func (q Quantity) String() string {
	v := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit == "" {
		return v
	}
	return v + " " + q.Unit
}

// ParseQuantity parses the "<value> <unit>" form produced by String. The
// unit is optional; anything after the magnitude is taken verbatim as the
// unit string (units like "mV" or "ms**-1" are not interpreted).
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("empty quantity")
	}
	magnitude, unit, _ := strings.Cut(s, " ")
	v, err := strconv.ParseFloat(magnitude, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("parsing quantity %q: %w", s, err)
	}
	return Quantity{Value: v, Unit: strings.TrimSpace(unit)}, nil
}

// MarshalYAML encodes the quantity in its string form.
func (q Quantity) MarshalYAML() (interface{}, error) {
	return q.String(), nil
}

// UnmarshalYAML decodes either a bare number or a "<value> <unit>" string.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: quantity must be a scalar", node.Line)
	}
	parsed, err := ParseQuantity(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*q = parsed
	return nil
}

// Param is a single named entry of a parameter table.
type Param struct {
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
}

// ParamTable is an ordered parameter table mapping parameter names to
// quantities. Order is the source declaration order and is semantically
// meaningful: it is preserved through extraction, rendering, and artifact
// round-trips.
type ParamTable []Param

// Lookup returns the quantity for name and whether it is present.
func (pt ParamTable) Lookup(name string) (Quantity, bool) {
	for _, p := range pt {
		if p.Name == name {
			return p.Quantity, true
		}
	}
	return Quantity{}, false
}

// MarshalYAML encodes the table as a YAML mapping in table order.
func (pt ParamTable) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range pt {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: p.Name}
		val := &yaml.Node{Kind: yaml.ScalarNode, Value: p.Quantity.String()}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, preserving document order.
func (pt *ParamTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameter table must be a mapping", node.Line)
	}
	table := make(ParamTable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var q Quantity
		if err := node.Content[i+1].Decode(&q); err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
		table = append(table, Param{Name: name, Quantity: q})
	}
	*pt = table
	return nil
}
