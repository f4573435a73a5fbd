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

package semantic

import (
	"fmt"
	"strings"
)

const (
	// NoFrameFound is the textual form of an empty frame
	NoFrameFound = "Meaning representation not found"
)

// Token is a word with its part-of-speech tag as
// provided by an external tagger.
type Token struct {
	Text string `json:"text"`
	POS  string `json:"pos"`
}

// Frame is a simple predicate-argument structure
// (who did what to whom).
type Frame struct {
	Predicate string   `json:"predicate"`
	Arguments []string `json:"arguments"`
}

func (f Frame) IsEmpty() bool {
	return f.Predicate == ""
}

// String formats the frame as predicate(arg1, arg2).
// An empty frame produces NoFrameFound.
func (f Frame) String() string {
	if f.IsEmpty() {
		return NoFrameFound
	}
	return fmt.Sprintf("%s(%s)", f.Predicate, strings.Join(f.Arguments, ", "))
}

// ----

type wordClass int

const (
	classOther wordClass = iota
	classNominal
	classVerbal
)

// TagSet classifies part-of-speech tags into nominal
// and verbal categories.
type TagSet struct {
	Name    string
	Nominal []string
	Verbal  []string
}

func (ts TagSet) classify(tag string) wordClass {
	for _, v := range ts.Nominal {
		if v == tag {
			return classNominal
		}
	}
	for _, v := range ts.Verbal {
		if v == tag {
			return classVerbal
		}
	}
	return classOther
}

var (
	// PennTagSet contains Penn Treebank tags as produced e.g. by NLTK
	PennTagSet = TagSet{
		Name:    "penn",
		Nominal: []string{"NN", "NNS", "NNP", "NNPS", "PRP"},
		Verbal:  []string{"VB", "VBD", "VBG", "VBN", "VBP", "VBZ"},
	}

	// UniversalTagSet contains Universal Dependencies coarse tags
	// (e.g. spaCy's token.pos_)
	UniversalTagSet = TagSet{
		Name:    "universal",
		Nominal: []string{"NOUN", "PROPN", "PRON"},
		Verbal:  []string{"VERB", "AUX"},
	}
)

// TagSetByName returns a predefined tag set
func TagSetByName(name string) (TagSet, bool) {
	switch name {
	case PennTagSet.Name:
		return PennTagSet, true
	case UniversalTagSet.Name:
		return UniversalTagSet, true
	}
	return TagSet{}, false
}

// ExtractFrame walks the tokens left to right. Nominal tokens found
// before the first verbal token are subjects, the ones after it are
// objects. This is based purely on word order, no real dependency
// analysis is involved.
func (ts TagSet) ExtractFrame(tokens []Token) Frame {
	var subjects, verbs, objects []string
	for _, tok := range tokens {
		switch ts.classify(tok.POS) {
		case classNominal:
			if len(verbs) == 0 {
				subjects = append(subjects, tok.Text)

			} else {
				objects = append(objects, tok.Text)
			}
		case classVerbal:
			verbs = append(verbs, tok.Text)
		}
	}
	if len(subjects) > 0 && len(verbs) > 0 && len(objects) > 0 {
		return Frame{Predicate: verbs[0], Arguments: []string{subjects[0], objects[0]}}

	} else if len(subjects) > 0 && len(verbs) > 0 {
		return Frame{Predicate: verbs[0], Arguments: []string{subjects[0]}}
	}
	return Frame{}
}

// ExtractFrame uses the Penn Treebank tag set
func ExtractFrame(tokens []Token) Frame {
	return PennTagSet.ExtractFrame(tokens)
}
