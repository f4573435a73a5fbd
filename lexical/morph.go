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
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// TaggedWord is a word/tag pair used in reports
type TaggedWord struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// Dependency is a single dependency relation
// provided by an external parser
type Dependency struct {
	Word     string `json:"word"`
	Relation string `json:"relation"`
	Head     string `json:"head"`
	HeadTag  string `json:"headTag"`
}

// SentenceAnalysis contains the lexical level information
// about a single sentence.
type SentenceAnalysis struct {
	Text      string       `json:"text"`
	Tokens    []string     `json:"tokens"`
	Stems     []string     `json:"stems"`
	Lemmas    []string     `json:"lemmas,omitempty"`
	Tagged    []TaggedWord `json:"posTags"`
	StopWords []string     `json:"stopWords"`

	// Morphology and Dependencies are filled only if the document
	// contains the respective annotations
	Morphology   []string     `json:"morphology,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`

	// Content contains tokens without punctuation. This is
	// what we feed the syntactic parser with.
	Content []string `json:"content"`
}

// IsPunctuation tells whether the token consists only
// of punctuation or symbol characters.
func IsPunctuation(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// Stem returns the (Snowball) English stem of the word.
// Stop words are only lower-cased.
func Stem(word string) string {
	return english.Stem(word, false)
}

func IsStopWord(word string) bool {
	return english.IsStopWord(strings.ToLower(word))
}

// AnalyzeSentence provides segmentation and morphology
// data for the sentence.
func AnalyzeSentence(s Sentence) SentenceAnalysis {
	ans := SentenceAnalysis{
		Text:   s.Text,
		Tokens: make([]string, len(s.Tokens)),
		Stems:  make([]string, len(s.Tokens)),
		Tagged: make([]TaggedWord, len(s.Tokens)),
	}
	var hasLemmas, hasMorph bool
	for i, tok := range s.Tokens {
		ans.Tokens[i] = tok.Text
		ans.Stems[i] = Stem(tok.Text)
		ans.Tagged[i] = TaggedWord{Word: tok.Text, Tag: tok.POS}
		if tok.Lemma != "" {
			hasLemmas = true
		}
		if tok.Morph != "" {
			hasMorph = true
		}
		if tok.Dep != "" && tok.Head >= 0 && tok.Head < len(s.Tokens) {
			head := s.Tokens[tok.Head]
			ans.Dependencies = append(
				ans.Dependencies,
				Dependency{Word: tok.Text, Relation: tok.Dep, Head: head.Text, HeadTag: head.POS},
			)
		}
		if IsStopWord(tok.Text) {
			ans.StopWords = append(ans.StopWords, tok.Text)
		}
		if !IsPunctuation(tok.Text) {
			ans.Content = append(ans.Content, tok.Text)
		}
	}
	if hasLemmas {
		ans.Lemmas = make([]string, len(s.Tokens))
		for i, tok := range s.Tokens {
			ans.Lemmas[i] = tok.Lemma
		}
	}
	if hasMorph {
		ans.Morphology = make([]string, len(s.Tokens))
		for i, tok := range s.Tokens {
			ans.Morphology[i] = tok.Morph
		}
	}
	return ans
}

// Analyze runs AnalyzeSentence on all the document sentences
func Analyze(doc *Document) []SentenceAnalysis {
	ans := make([]SentenceAnalysis, len(doc.Sentences))
	for i, s := range doc.Sentences {
		ans[i] = AnalyzeSentence(s)
	}
	return ans
}
