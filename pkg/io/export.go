package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/modgraph/pkg/subgraph"
)

type export struct {
	Programmes []programme `json:"programmes"`
}

type programme struct {
	Name    string     `json:"name"`
	Years   [][]string `json:"years"`
	Nodes   []node     `json:"nodes"`
	Edges   []edge     `json:"edges"`
	Choices []choice   `json:"choices,omitempty"`
}

type node struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

type choice struct {
	From  string   `json:"from"`
	Kind  string   `json:"kind"`
	OneOf []string `json:"one_of"`
}

// WriteJSON encodes computed subgraphs as JSON and writes them to w.
// Years are one-based in the output, matching how they are presented to
// students. Edges are grouped by kind in canonical kind order.
func WriteJSON(graphs []*subgraph.Subgraph, w io.Writer) error {
	out := export{Programmes: make([]programme, 0, len(graphs))}

	for _, g := range graphs {
		p := programme{
			Name:  g.Programme,
			Years: make([][]string, len(g.Years)),
			Nodes: make([]node, 0, g.NodeCount()),
			Edges: []edge{},
		}
		for i, y := range g.Years {
			p.Years[i] = y.Sorted()
		}
		for _, n := range g.Nodes() {
			p.Nodes = append(p.Nodes, node{ID: n.ID, Year: n.Year + 1})
		}
		for _, k := range g.Kinds {
			for _, pr := range g.Edges[k].Pairs() {
				p.Edges = append(p.Edges, edge{From: pr.From, To: pr.To, Kind: k.String()})
			}
		}
		for _, c := range g.Choices {
			p.Choices = append(p.Choices, choice{From: c.From, Kind: c.Kind.String(), OneOf: c.Targets})
		}
		out.Programmes = append(out.Programmes, p)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes subgraphs to a JSON file at path.
func ExportJSON(graphs []*subgraph.Subgraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(graphs, f)
}
