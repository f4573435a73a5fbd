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

package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// cfgFile
//
//	Newline* ( Production Newline* )*
//
//nolint:govet // participle grammar tags are not standard struct tags
type cfgFile struct {
	Productions []*cfgProduction `parser:"Newline* ( @@ Newline* )*"`
}

// cfgProduction
//
//	Ident "->" Alternative ( "|" Alternative )*
//
//nolint:govet
type cfgProduction struct {
	LHS          string            `parser:"@Ident Arrow"`
	Alternatives []*cfgAlternative `parser:"@@ ( Bar @@ )*"`
}

//nolint:govet
type cfgAlternative struct {
	Symbols []*cfgSymbol `parser:"@@+"`
}

//nolint:govet
type cfgSymbol struct {
	Terminal    *string `parser:"  @Terminal"`
	NonTerminal *string `parser:"| @Ident"`
}

func (s *cfgSymbol) toSymbol() Symbol {
	if s.Terminal != nil {
		v := *s.Terminal
		return T(v[1 : len(v)-1])
	}
	return NT(*s.NonTerminal)
}

var cfgLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Terminal", Pattern: `'[^'\n]*'|"[^"\n]*"`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Bar", Pattern: `\|`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_$]*`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var cfgParser = participle.MustBuild[cfgFile](
	participle.Lexer(cfgLexer),
	participle.Elide("Whitespace", "Comment"),
)

// ParseCFG reads a grammar written in the notation of NLTK's
// CFG.fromstring:
//
//	S -> NP VP
//	NP -> Det N | 'It'
//	Det -> 'The' | 'the'
//
// Quoted symbols are terminals, everything else is a non-terminal.
// The start symbol is the left-hand side of the first production.
func ParseCFG(src string) (*Grammar, error) {
	return ParseCFGWithStart(src, "")
}

// ParseCFGWithStart is like ParseCFG but with an explicit start symbol.
// An empty start falls back to the first production's left-hand side.
func ParseCFGWithStart(src, start string) (*Grammar, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &MalformedGrammarError{Reason: "no rules defined"}
	}
	parsed, err := cfgParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse grammar: %w", err)
	}
	var rules []Rule
	for _, prod := range parsed.Productions {
		for _, alt := range prod.Alternatives {
			rhs := make([]Symbol, len(alt.Symbols))
			for i, s := range alt.Symbols {
				rhs[i] = s.toSymbol()
			}
			rules = append(rules, Rule{LHS: NT(prod.LHS), RHS: rhs})
		}
	}
	if start == "" && len(rules) > 0 {
		start = rules[0].LHS.Name
	}
	return New(rules, NT(start))
}

// MustParseCFG is like ParseCFG but panics on error.
func MustParseCFG(src string) *Grammar {
	g, err := ParseCFG(src)
	if err != nil {
		panic(err)
	}
	return g
}
