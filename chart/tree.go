// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of NLPIPE.
//
//  NLPIPE is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  NLPIPE is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with NLPIPE.  If not, see <https://www.gnu.org/licenses/>.

package chart

import (
	"encoding/json"
	"strings"

	"nlpipe/grammar"
)

// Tree is a parse tree node. Leaves are terminal symbols
// holding the literal token.
type Tree struct {
	Symbol   grammar.Symbol
	Children []*Tree
}

func (t *Tree) IsLeaf() bool {
	return t.Symbol.Terminal
}

// Label returns the category name for inner nodes
// and the word for leaves.
func (t *Tree) Label() string {
	return t.Symbol.Name
}

// Leaves returns the words covered by the tree, left to right
func (t *Tree) Leaves() []string {
	var ans []string
	t.collectLeaves(&ans)
	return ans
}

func (t *Tree) collectLeaves(acc *[]string) {
	if t.IsLeaf() {
		*acc = append(*acc, t.Symbol.Name)
		return
	}
	for _, ch := range t.Children {
		ch.collectLeaves(acc)
	}
}

// Height returns the number of nodes on the longest
// path from the root to a leaf.
func (t *Tree) Height() int {
	var maxH int
	for _, ch := range t.Children {
		if h := ch.Height(); h > maxH {
			maxH = h
		}
	}
	return maxH + 1
}

// ChildLabels returns labels of the direct children
func (t *Tree) ChildLabels() []string {
	ans := make([]string, len(t.Children))
	for i, ch := range t.Children {
		ans[i] = ch.Label()
	}
	return ans
}

// Clone creates a deep copy of the tree
func (t *Tree) Clone() *Tree {
	ans := &Tree{Symbol: t.Symbol}
	if len(t.Children) > 0 {
		ans.Children = make([]*Tree, len(t.Children))
		for i, ch := range t.Children {
			ans.Children[i] = ch.Clone()
		}
	}
	return ans
}

// String returns the bracketed notation, e.g.
// (S (NP (Det The) (N cat)) (VP ...))
func (t *Tree) String() string {
	var sb strings.Builder
	t.writeBracketed(&sb)
	return sb.String()
}

func (t *Tree) writeBracketed(sb *strings.Builder) {
	if t.IsLeaf() {
		sb.WriteString(t.Symbol.Name)
		return
	}
	sb.WriteString("(")
	sb.WriteString(t.Symbol.Name)
	for _, ch := range t.Children {
		sb.WriteString(" ")
		ch.writeBracketed(sb)
	}
	sb.WriteString(")")
}

// Pretty returns a multi-line indented rendering of the tree
// where pre-terminal nodes are kept on a single line:
//
//	S
//	  NP
//	    (Det The)
//	    (N cat)
//	  VP
//	    ...
func (t *Tree) Pretty() string {
	var sb strings.Builder
	t.writePretty(&sb, 0)
	return sb.String()
}

func (t *Tree) isPreterminal() bool {
	return !t.IsLeaf() && len(t.Children) == 1 && t.Children[0].IsLeaf()
}

func (t *Tree) writePretty(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if t.IsLeaf() || t.isPreterminal() {
		t.writeBracketed(sb)
		sb.WriteString("\n")
		return
	}
	sb.WriteString(t.Symbol.Name)
	sb.WriteString("\n")
	for _, ch := range t.Children {
		ch.writePretty(sb, depth+1)
	}
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	if t.IsLeaf() {
		return json.Marshal(t.Symbol.Name)
	}
	return json.Marshal(
		struct {
			Label    string  `json:"label"`
			Children []*Tree `json:"children"`
		}{
			Label:    t.Symbol.Name,
			Children: t.Children,
		},
	)
}
