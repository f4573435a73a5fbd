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
	"strings"
)

const (
	TopicAcquisition = "business acquisition"
	TopicTransaction = "business transaction"
)

var transactionKeywords = []string{"buying", "acquisition", "merger"}

// Entity is a named entity as recognized by an external tool
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Context is a rough summary of what a text is about
// based on its named entities.
type Context struct {
	Organizations []string `json:"organizations,omitempty"`
	Locations     []string `json:"locations,omitempty"`
	Money         []string `json:"money,omitempty"`
	Dates         []string `json:"dates,omitempty"`
	Topic         string   `json:"topic,omitempty"`
}

func (c Context) IsEmpty() bool {
	return len(c.Organizations) == 0 && len(c.Locations) == 0 &&
		len(c.Money) == 0 && len(c.Dates) == 0 && c.Topic == ""
}

// AnalyzeContext groups entities by their (OntoNotes) labels
// and guesses a topic of the text.
func AnalyzeContext(text string, entities []Entity) Context {
	var ans Context
	for _, ent := range entities {
		switch ent.Label {
		case "ORG":
			ans.Organizations = append(ans.Organizations, ent.Text)
		case "GPE", "LOC":
			ans.Locations = append(ans.Locations, ent.Text)
		case "MONEY":
			ans.Money = append(ans.Money, ent.Text)
		case "DATE":
			ans.Dates = append(ans.Dates, ent.Text)
		}
	}
	if len(ans.Organizations) > 0 && len(ans.Money) > 0 {
		ans.Topic = TopicAcquisition

	} else {
		lower := strings.ToLower(text)
		for _, kw := range transactionKeywords {
			if strings.Contains(lower, kw) {
				ans.Topic = TopicTransaction
				break
			}
		}
	}
	return ans
}
