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

package pragmatic

import (
	"fmt"
	"strings"
)

type ResolverMode string

const (
	// ModeSequential applies rules one after another, each on the
	// output of the previous one.
	ModeSequential ResolverMode = "sequential"

	// ModeLongestMatch scans the original text once and replaces
	// leftmost-longest non-overlapping matches.
	ModeLongestMatch ResolverMode = "longestMatch"
)

func (m ResolverMode) Validate() error {
	if m != ModeSequential && m != ModeLongestMatch {
		return fmt.Errorf("unknown resolver mode `%s`", m)
	}
	return nil
}

// Rule replaces a literal phrase (typically a pronoun or a short
// noun phrase) with the referent it stands for.
type Rule struct {
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Resolve applies the rules in their order to progressively
// updated text. Each rule sees the output of the previous ones
// so the order matters: text produced by an earlier rule can be
// matched by a later one (but never by the earlier one again).
//
// Matching is plain substring search, word boundaries are not
// respected (e.g. a pattern "It" also matches inside "Item").
func Resolve(text string, rules []Rule) string {
	for _, r := range rules {
		if r.Pattern == "" {
			continue
		}
		text = strings.ReplaceAll(text, r.Pattern, r.Replacement)
	}
	return text
}

// ResolveLongestMatch replaces occurrences of the rule patterns
// in a single left-to-right pass over the original text. At each
// position the longest matching pattern wins (on a tie, the earlier
// rule). Replaced text is never matched again.
func ResolveLongestMatch(text string, rules []Rule) string {
	var sb strings.Builder
	for pos := 0; pos < len(text); {
		best := -1
		for i, r := range rules {
			if r.Pattern == "" || !strings.HasPrefix(text[pos:], r.Pattern) {
				continue
			}
			if best < 0 || len(r.Pattern) > len(rules[best].Pattern) {
				best = i
			}
		}
		if best >= 0 {
			sb.WriteString(rules[best].Replacement)
			pos += len(rules[best].Pattern)

		} else {
			sb.WriteByte(text[pos])
			pos++
		}
	}
	return sb.String()
}

// ResolverFor returns a resolving function for the mode
func ResolverFor(mode ResolverMode) (func(string, []Rule) string, error) {
	switch mode {
	case ModeSequential, "":
		return Resolve, nil
	case ModeLongestMatch:
		return ResolveLongestMatch, nil
	}
	return nil, mode.Validate()
}
