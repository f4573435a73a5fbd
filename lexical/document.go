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

package lexical

import (
	"encoding/json"
	"fmt"
	"strings"

	"nlpipe/merror"
)

// Token is a single word as produced by an external
// tokenizer/tagger (NLTK, spaCy, Stanza,...).
type Token struct {
	Text  string `json:"text"`
	POS   string `json:"pos"`
	Lemma string `json:"lemma,omitempty"`

	// Morph contains morphological features in the UD
	// format (e.g. `Number=Sing|Person=3`)
	Morph string `json:"morph,omitempty"`

	// Dep is a dependency relation to the Head token. Head is
	// an index within the sentence, the root refers to itself.
	// Both are used only if Dep is non-empty.
	Dep  string `json:"dep,omitempty"`
	Head int    `json:"head,omitempty"`
}

type Sentence struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// Words returns texts of the sentence tokens
func (s Sentence) Words() []string {
	ans := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		ans[i] = t.Text
	}
	return ans
}

// Entity is a named entity span over the document token
// sequence (i.e. all the sentences' tokens concatenated).
// The range [Start, End) is half-open.
type Entity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Document is an annotated text - the input of the pipeline
type Document struct {
	Text      string     `json:"text"`
	Sentences []Sentence `json:"sentences"`
	Entities  []Entity   `json:"entities,omitempty"`
}

// FullText returns the original text or (if missing)
// the sentence texts joined by a space.
func (doc *Document) FullText() string {
	if doc.Text != "" {
		return doc.Text
	}
	ans := make([]string, len(doc.Sentences))
	for i, s := range doc.Sentences {
		ans[i] = s.Text
	}
	return strings.Join(ans, " ")
}

// Tokens returns tokens of all sentences in a single sequence
func (doc *Document) Tokens() []Token {
	var ans []Token
	for _, s := range doc.Sentences {
		ans = append(ans, s.Tokens...)
	}
	return ans
}

// Words returns texts of all the document tokens
func (doc *Document) Words() []string {
	tokens := doc.Tokens()
	ans := make([]string, len(tokens))
	for i, t := range tokens {
		ans[i] = t.Text
	}
	return ans
}

func (doc *Document) NumTokens() int {
	var ans int
	for _, s := range doc.Sentences {
		ans += len(s.Tokens)
	}
	return ans
}

// Validate checks basic consistency of the document. It does not
// test whether entities overlap.
func (doc *Document) Validate() error {
	if len(doc.Sentences) == 0 {
		return merror.InputError{Msg: "document contains no sentences"}
	}
	for i, s := range doc.Sentences {
		if len(s.Tokens) == 0 {
			return merror.InputError{Msg: fmt.Sprintf("sentence %d contains no tokens", i)}
		}
		for j, t := range s.Tokens {
			if t.Text == "" {
				return merror.InputError{Msg: fmt.Sprintf("sentence %d, token %d: empty text", i, j)}
			}
			if t.Dep != "" && (t.Head < 0 || t.Head >= len(s.Tokens)) {
				return merror.InputError{
					Msg: fmt.Sprintf("sentence %d, token %d: invalid dependency head %d", i, j, t.Head),
				}
			}
		}
	}
	numTokens := doc.NumTokens()
	for i, ent := range doc.Entities {
		if ent.Start < 0 || ent.End <= ent.Start || ent.End > numTokens {
			return merror.InputError{
				Msg: fmt.Sprintf(
					"entity %d (%s): invalid span [%d, %d) for %d tokens",
					i, ent.Text, ent.Start, ent.End, numTokens,
				),
			}
		}
	}
	return nil
}

// DecodeDocument parses a JSON encoded document and validates it
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, merror.InputError{Msg: fmt.Sprintf("failed to decode document: %s", err)}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
