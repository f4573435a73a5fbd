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

package openapi

func stringList() ObjectProperty {
	return ObjectProperty{Type: "array", Items: &arrayItem{Type: "string"}}
}

func objectList(props ObjectProperties) ObjectProperty {
	return ObjectProperty{Type: "array", Items: &arrayItem{Type: "object", Properties: props}}
}

func entityProps() ObjectProperties {
	return ObjectProperties{
		"start": ObjectProperty{Type: "integer", Description: "first token (inclusive)"},
		"end":   ObjectProperty{Type: "integer", Description: "last token (exclusive)"},
		"label": ObjectProperty{Type: "string"},
		"text":  ObjectProperty{Type: "string"},
	}
}

func frameProps() ObjectProperties {
	return ObjectProperties{
		"predicate": ObjectProperty{Type: "string"},
		"arguments": stringList(),
	}
}

func contextRuleProps() ObjectProperties {
	return ObjectProperties{
		"pattern":     ObjectProperty{Type: "string"},
		"replacement": ObjectProperty{Type: "string"},
	}
}

func createSchemas() ObjectProperties {
	ans := make(ObjectProperties)
	ans["Grammar"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"key":       ObjectProperty{Type: "string"},
			"start":     ObjectProperty{Type: "string"},
			"triggers":  stringList(),
			"isDefault": ObjectProperty{Type: "boolean"},
			"rules":     stringList(),
			"undefined": stringList(),
		},
	}
	ans["Tree"] = ObjectProperty{
		Type:        "object",
		Description: "A parse tree node. Leaves are encoded as plain strings.",
		Properties: ObjectProperties{
			"label": ObjectProperty{Type: "string"},
			"children": ObjectProperty{
				Type:  "array",
				Items: &arrayItem{Ref: schemaRef("Tree")},
			},
		},
	}
	ans["Document"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"text": ObjectProperty{Type: "string"},
			"sentences": objectList(ObjectProperties{
				"text": ObjectProperty{Type: "string"},
				"tokens": objectList(ObjectProperties{
					"text":  ObjectProperty{Type: "string"},
					"pos":   ObjectProperty{Type: "string"},
					"lemma": ObjectProperty{Type: "string"},
					"morph": ObjectProperty{Type: "string", Description: "UD morphological features"},
					"dep":   ObjectProperty{Type: "string", Description: "dependency relation"},
					"head": ObjectProperty{
						Type:        "integer",
						Description: "index of the head token within the sentence",
					},
				}),
			}),
			"entities": objectList(entityProps()),
		},
	}
	ans["Report"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"id":      ObjectProperty{Type: "string"},
			"created": ObjectProperty{Type: "string"},
			"text":    ObjectProperty{Type: "string"},
			"lexical": objectList(ObjectProperties{
				"text":       ObjectProperty{Type: "string"},
				"tokens":     stringList(),
				"stems":      stringList(),
				"lemmas":     stringList(),
				"stopWords":  stringList(),
				"content":    stringList(),
				"morphology": stringList(),
				"posTags": objectList(ObjectProperties{
					"word": ObjectProperty{Type: "string"},
					"tag":  ObjectProperty{Type: "string"},
				}),
				"dependencies": objectList(ObjectProperties{
					"word":     ObjectProperty{Type: "string"},
					"relation": ObjectProperty{Type: "string"},
					"head":     ObjectProperty{Type: "string"},
					"headTag":  ObjectProperty{Type: "string"},
				}),
			}),
			"syntactic": objectList(ObjectProperties{
				"sentence": ObjectProperty{Type: "string"},
				"grammar":  ObjectProperty{Type: "string"},
				"tokens":   stringList(),
				"trees":    ObjectProperty{Type: "array", Items: &arrayItem{Ref: schemaRef("Tree")}},
			}),
			"semantic": ObjectProperty{
				Type: "object",
				Properties: ObjectProperties{
					"frame":  ObjectProperty{Type: "object", Properties: frameProps()},
					"text":   ObjectProperty{Type: "string"},
					"tagSet": ObjectProperty{Type: "string"},
					"synonyms": objectList(ObjectProperties{
						"word":     ObjectProperty{Type: "string"},
						"synonyms": stringList(),
					}),
				},
			},
			"pragmatic": ObjectProperty{
				Type: "object",
				Properties: ObjectProperties{
					"resolverMode": ObjectProperty{Type: "string", Enum: []string{"sequential", "longestMatch"}},
					"resolvedText": ObjectProperty{Type: "string"},
					"context":      ObjectProperty{Ref: schemaRef("Context")},
				},
			},
			"translation": ObjectProperty{Ref: schemaRef("TranslateResult")},
			"stageTimes": ObjectProperty{
				Type:                 "object",
				AdditionalProperties: &AdditionalProperty{Type: "number"},
			},
		},
	}
	ans["Context"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"organizations": stringList(),
			"locations":     stringList(),
			"money":         stringList(),
			"dates":         stringList(),
			"topic":         ObjectProperty{Type: "string"},
		},
	}
	ans["ParseArgs"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"tokens":  stringList(),
			"grammar": ObjectProperty{Type: "string", Description: "key of a configured grammar"},
			"rules":   ObjectProperty{Type: "string", Description: "inline grammar in the CFG notation"},
			"start":   ObjectProperty{Type: "string", Description: "start symbol of the inline grammar"},
		},
	}
	ans["ParseResult"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"grammar":  ObjectProperty{Type: "string"},
			"trees":    ObjectProperty{Type: "array", Items: &arrayItem{Ref: schemaRef("Tree")}},
			"numTrees": ObjectProperty{Type: "integer"},
			"message":  ObjectProperty{Type: "string"},
		},
	}
	ans["FrameArgs"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"tokens": objectList(ObjectProperties{
				"text": ObjectProperty{Type: "string"},
				"pos":  ObjectProperty{Type: "string"},
			}),
			"tagSet": ObjectProperty{Type: "string", Enum: []string{"penn", "universal"}},
		},
	}
	ans["FrameResult"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"frame":  ObjectProperty{Type: "object", Properties: frameProps()},
			"text":   ObjectProperty{Type: "string"},
			"tagSet": ObjectProperty{Type: "string"},
		},
	}
	ans["ResolveArgs"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"text":  ObjectProperty{Type: "string"},
			"mode":  ObjectProperty{Type: "string", Enum: []string{"sequential", "longestMatch"}},
			"rules": objectList(contextRuleProps()),
			"entities": objectList(ObjectProperties{
				"text":  ObjectProperty{Type: "string"},
				"label": ObjectProperty{Type: "string"},
			}),
		},
	}
	ans["ResolveResult"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"resolvedText": ObjectProperty{Type: "string"},
			"mode":         ObjectProperty{Type: "string"},
			"context":      ObjectProperty{Ref: schemaRef("Context")},
		},
	}
	ans["TranslateArgs"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"tokens":   stringList(),
			"entities": objectList(entityProps()),
		},
	}
	ans["TranslateResult"] = ObjectProperty{
		Type: "object",
		Properties: ObjectProperties{
			"translated": ObjectProperty{Type: "string"},
			"wordByWord": ObjectProperty{Type: "string"},
		},
	}
	return ans
}
