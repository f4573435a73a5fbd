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

// Package chart implements a bottom-up chart parser producing
// all parse trees of a token sequence for a context-free grammar.
package chart

import (
	"iter"
	"slices"

	"nlpipe/grammar"
)

// edge is a complete derivation of a rule over a span. The bounds
// contain len(RHS)+1 positions splitting the span among the RHS
// symbols (bounds[0] = span start, bounds[len(RHS)] = span end).
type edge struct {
	rule   int
	bounds []int
}

// cell maps non-terminals to their derivations over a single span
type cell map[string][]edge

func (c cell) hasRule(lhs string, rule int) bool {
	for _, e := range c[lhs] {
		if e.rule == rule {
			return true
		}
	}
	return false
}

type spanKey struct {
	sym  string
	i, j int
}

type chart struct {
	g      *grammar.Grammar
	tokens []string
	cells  []cell
}

func (ch *chart) at(i, j int) cell {
	return ch.cells[i*(len(ch.tokens)+1)+j]
}

func (ch *chart) derives(sym grammar.Symbol, i, j int) bool {
	if sym.Terminal {
		return j == i+1 && ch.tokens[i] == sym.Name
	}
	return len(ch.at(i, j)[sym.Name]) > 0
}

// matchRHS finds all ways the rhs symbols can cover [pos, end),
// each symbol taking a non-empty sub-span. All the sub-spans
// are shorter than the currently filled span (for len(rhs) > 1)
// so they are already complete in the chart.
func (ch *chart) matchRHS(rhs []grammar.Symbol, pos, end int, bounds []int, emit func([]int)) {
	if len(rhs) == 1 {
		if ch.derives(rhs[0], pos, end) {
			ans := make([]int, len(bounds)+1)
			copy(ans, bounds)
			ans[len(bounds)] = end
			emit(ans)
		}
		return
	}
	for mid := pos + 1; mid <= end-(len(rhs)-1); mid++ {
		if ch.derives(rhs[0], pos, mid) {
			ch.matchRHS(rhs[1:], mid, end, append(bounds, mid), emit)
		}
	}
}

func (ch *chart) fillSpan(i, j int) {
	c := make(cell)
	for ri := 0; ri < ch.g.NumRules(); ri++ {
		r := ch.g.Rule(ri)
		if r.IsUnit() || len(r.RHS) > j-i {
			continue
		}
		ch.matchRHS(r.RHS, i, j, []int{i}, func(bounds []int) {
			c[r.LHS.Name] = append(c[r.LHS.Name], edge{rule: ri, bounds: bounds})
		})
	}
	// unit productions A -> B stay within the span, close them here
	for changed := true; changed; {
		changed = false
		for ri := 0; ri < ch.g.NumRules(); ri++ {
			r := ch.g.Rule(ri)
			if !r.IsUnit() || len(c[r.RHS[0].Name]) == 0 || c.hasRule(r.LHS.Name, ri) {
				continue
			}
			c[r.LHS.Name] = append(c[r.LHS.Name], edge{rule: ri, bounds: []int{i, j}})
			changed = true
		}
	}
	ch.cells[i*(len(ch.tokens)+1)+j] = c
}

// derivations yields all trees of sym over [i, j). A (symbol, span)
// pair already present on the current path is skipped which cuts
// cyclic unit chains (A -> B -> A).
func (ch *chart) derivations(
	sym string,
	i, j int,
	path map[spanKey]bool,
	yield func(*Tree) bool,
) bool {
	key := spanKey{sym: sym, i: i, j: j}
	if path[key] {
		return true
	}
	path[key] = true
	defer delete(path, key)

	for _, e := range ch.at(i, j)[sym] {
		r := ch.g.Rule(e.rule)
		acc := make([]*Tree, len(r.RHS))
		cont := ch.expand(r.RHS, e.bounds, 0, acc, path, func() bool {
			return yield(&Tree{Symbol: r.LHS, Children: slices.Clone(acc)})
		})
		if !cont {
			return false
		}
	}
	return true
}

func (ch *chart) expand(
	rhs []grammar.Symbol,
	bounds []int,
	k int,
	acc []*Tree,
	path map[spanKey]bool,
	done func() bool,
) bool {
	if k == len(rhs) {
		return done()
	}
	if rhs[k].Terminal {
		acc[k] = &Tree{Symbol: rhs[k]}
		return ch.expand(rhs, bounds, k+1, acc, path, done)
	}
	return ch.derivations(rhs[k].Name, bounds[k], bounds[k+1], path, func(t *Tree) bool {
		acc[k] = t
		return ch.expand(rhs, bounds, k+1, acc, path, done)
	})
}

func newChart(g *grammar.Grammar, tokens []string) *chart {
	n := len(tokens)
	ch := &chart{
		g:      g,
		tokens: tokens,
		cells:  make([]cell, (n+1)*(n+1)),
	}
	for length := 1; length <= n; length++ {
		for i := 0; i+length <= n; i++ {
			ch.fillSpan(i, i+length)
		}
	}
	return ch
}

// Parse returns a lazy sequence of all parse trees of tokens
// with respect to the grammar g. The sequence is empty if the start
// symbol cannot derive the whole token sequence (including the case
// of an empty input or a word unknown to the grammar).
//
// Each iteration builds its own chart so the sequence can be
// consumed repeatedly with the same results. Returned trees
// never share nodes.
func Parse(g *grammar.Grammar, tokens []string) iter.Seq[*Tree] {
	toks := slices.Clone(tokens)
	return func(yield func(*Tree) bool) {
		if len(toks) == 0 {
			return
		}
		ch := newChart(g, toks)
		ch.derivations(
			g.Start().Name,
			0,
			len(toks),
			make(map[spanKey]bool),
			func(t *Tree) bool {
				return yield(t.Clone())
			},
		)
	}
}

// ParseN collects at most limit trees (limit <= 0 means all of them)
func ParseN(g *grammar.Grammar, tokens []string, limit int) []*Tree {
	var ans []*Tree
	for t := range Parse(g, tokens) {
		ans = append(ans, t)
		if limit > 0 && len(ans) >= limit {
			break
		}
	}
	return ans
}
