// Package jsongraph exports a centerline.Set as a JSON Graph Format
// document and its per-line statistics as the CSV sidecar the external
// serializer expects.
package jsongraph

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"porenet/pkg/centerline"
	"porenet/pkg/voxelgraph"
)

// NodeMetadata is the per-node payload: voxel coordinates and the squared
// radius at that point.
type NodeMetadata struct {
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Z             int     `json:"z"`
	SquaredRadius float64 `json:"squared_radius"`
}

// Node is one JSON Graph Format node entry.
type Node struct {
	ID       string       `json:"id"`
	Metadata NodeMetadata `json:"metadata"`
}

// EdgeMetadata carries the capillary-segment properties the external
// consumer reads: its Euclidean length and the squared radius at its
// midpoint.
type EdgeMetadata struct {
	Length        float64 `json:"length"`
	SquaredRadius float64 `json:"squared_radius"`
}

// Edge is one JSON Graph Format edge entry.
type Edge struct {
	ID       string       `json:"id"`
	Source   string       `json:"source"`
	Target   string       `json:"target"`
	Metadata EdgeMetadata `json:"metadata"`
}

// Graph is the JSON Graph Format document's top-level "graph" object.
type Graph struct {
	Directed bool   `json:"directed"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// Document wraps Graph in the JSON Graph Format envelope.
type Document struct {
	Graph Graph `json:"graph"`
}

// Build converts set into a JSON Graph Format document, reading each
// node's squared radius from g.
func Build(set *centerline.Set, g voxelgraph.Graph) Document {
	var doc Document
	doc.Graph.Directed = true

	nodeID := func(lineIdx, nodeIdx int) string {
		return fmt.Sprintf("%d-%d", lineIdx, nodeIdx)
	}

	for li, line := range set.Lines {
		for ni, node := range line.Nodes {
			radius := g.PropertyValue(node.Point)
			doc.Graph.Nodes = append(doc.Graph.Nodes, Node{
				ID: nodeID(li, ni),
				Metadata: NodeMetadata{
					X: node.Point.X, Y: node.Point.Y, Z: node.Point.Z,
					SquaredRadius: radius * radius,
				},
			})
			if ni == 0 {
				continue
			}
			prev := line.Nodes[ni-1]
			length := math.Sqrt(float64(prev.Point.SquaredDistance(node.Point)))
			midRadius := (g.PropertyValue(prev.Point) + radius) / 2
			doc.Graph.Edges = append(doc.Graph.Edges, Edge{
				ID:     fmt.Sprintf("%d-%d", li, ni),
				Source: nodeID(li, ni-1),
				Target: nodeID(li, ni),
				Metadata: EdgeMetadata{
					Length:        length,
					SquaredRadius: midRadius * midRadius,
				},
			})
		}
	}
	return doc
}

// WriteCenterlinesJSON writes set as a JSON Graph Format document to path.
func WriteCenterlinesJSON(path string, set *centerline.Set, g voxelgraph.Graph) error {
	doc := Build(set, g)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsongraph: marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("jsongraph: writing %s: %w", path, err)
	}
	return nil
}

// WriteCenterlinesStat writes one CSV row per centerline:
// size,tortuosity,avg_property,, — the trailing comma matches the
// external serializer's existing output format, not a formatting
// accident.
func WriteCenterlinesStat(path string, set *centerline.Set) error {
	var b strings.Builder
	for _, s := range set.Stats {
		b.WriteString(strconv.FormatFloat(s.Size, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(s.Tortuosity, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(s.AvgProperty, 'g', -1, 64))
		b.WriteString(",,\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("jsongraph: writing %s: %w", path, err)
	}
	return nil
}
