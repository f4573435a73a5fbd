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

// Package grammar contains a small context-free grammar model
// used by the chart parser.
package grammar

import (
	"fmt"
	"strings"
)

// Symbol is either a terminal (a literal word) or a non-terminal
// (a grammar category). Terminals are compared case-sensitively.
type Symbol struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal,omitempty"`
}

func (s Symbol) String() string {
	if s.Terminal {
		return fmt.Sprintf("'%s'", s.Name)
	}
	return s.Name
}

// NT creates a non-terminal symbol
func NT(name string) Symbol {
	return Symbol{Name: name}
}

// T creates a terminal symbol
func T(word string) Symbol {
	return Symbol{Name: word, Terminal: true}
}

// ----

// Rule is a single production LHS -> RHS
type Rule struct {
	LHS Symbol   `json:"lhs"`
	RHS []Symbol `json:"rhs"`
}

func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.LHS.String())
	sb.WriteString(" ->")
	for _, s := range r.RHS {
		sb.WriteString(" ")
		sb.WriteString(s.String())
	}
	return sb.String()
}

// IsUnit tells whether the rule rewrites its LHS to
// a single non-terminal (A -> B).
func (r Rule) IsUnit() bool {
	return len(r.RHS) == 1 && !r.RHS[0].Terminal
}

// ----

// MalformedGrammarError is returned when a grammar cannot
// be constructed from the provided rules.
type MalformedGrammarError struct {
	Reason string
}

func (err *MalformedGrammarError) Error() string {
	return fmt.Sprintf("malformed grammar: %s", err.Reason)
}

// ----

// Grammar is an immutable ordered set of rules with a designated
// start symbol.
type Grammar struct {
	rules []Rule
	start Symbol
	byLHS map[string][]int
}

// Rules returns a copy of the grammar rules in their original order.
func (g *Grammar) Rules() []Rule {
	ans := make([]Rule, len(g.rules))
	copy(ans, g.rules)
	return ans
}

// Rule returns i-th rule. The returned value shares RHS storage
// with the grammar so it must not be modified.
func (g *Grammar) Rule(i int) Rule {
	return g.rules[i]
}

// NumRules returns the number of grammar rules.
func (g *Grammar) NumRules() int {
	return len(g.rules)
}

func (g *Grammar) Start() Symbol {
	return g.start
}

// RulesFor returns indices of rules with the provided
// non-terminal on their left-hand side.
func (g *Grammar) RulesFor(lhs string) []int {
	return g.byLHS[lhs]
}

// Undefined lists non-terminals used on some right-hand side
// without any rule defining them. Branches using such symbols
// never produce a parse.
func (g *Grammar) Undefined() []Symbol {
	seen := make(map[string]bool)
	var ans []Symbol
	for _, r := range g.rules {
		for _, s := range r.RHS {
			if s.Terminal || seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			if _, ok := g.byLHS[s.Name]; !ok {
				ans = append(ans, s)
			}
		}
	}
	return ans
}

func (g *Grammar) String() string {
	var sb strings.Builder
	for i, r := range g.rules {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}

// New validates rules and creates a new grammar. The rules
// are copied so the caller may reuse the slice.
func New(rules []Rule, start Symbol) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, &MalformedGrammarError{Reason: "no rules defined"}
	}
	if start.Terminal {
		return nil, &MalformedGrammarError{
			Reason: fmt.Sprintf("start symbol %s must be a non-terminal", start)}
	}
	g := &Grammar{
		rules: make([]Rule, len(rules)),
		start: start,
		byLHS: make(map[string][]int),
	}
	for i, r := range rules {
		if r.LHS.Terminal {
			return nil, &MalformedGrammarError{
				Reason: fmt.Sprintf("rule %d: terminal %s cannot be a left-hand side", i, r.LHS)}
		}
		if len(r.RHS) == 0 {
			return nil, &MalformedGrammarError{
				Reason: fmt.Sprintf("rule %d: empty right-hand side of %s", i, r.LHS)}
		}
		rhs := make([]Symbol, len(r.RHS))
		copy(rhs, r.RHS)
		g.rules[i] = Rule{LHS: r.LHS, RHS: rhs}
		g.byLHS[r.LHS.Name] = append(g.byLHS[r.LHS.Name], i)
	}
	if _, ok := g.byLHS[start.Name]; !ok {
		return nil, &MalformedGrammarError{
			Reason: fmt.Sprintf("no rule for start symbol %s", start)}
	}
	return g, nil
}

// MustNew is like New but panics on error. It is intended
// for grammars defined directly in code.
func MustNew(rules []Rule, start Symbol) *Grammar {
	g, err := New(rules, start)
	if err != nil {
		panic(err)
	}
	return g
}
