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

const (
	openAPIVersion = "3.1.0"
	contentJSON    = "application/json"
	contentText    = "text/plain"
)

func schemaRef(name string) string {
	return "#/components/schemas/" + name
}

func jsonBody(desc, schema string) *RequestBody {
	return &RequestBody{
		Description: desc,
		Required:    true,
		Content: map[string]MethodResponseContent{
			contentJSON: {Schema: MethodResponseSchema{Ref: schemaRef(schema)}},
		},
	}
}

func jsonResponses(schema string, withBadRequest bool) MethodResponses {
	ans := MethodResponses{
		200: {
			Description: "OK",
			Content: map[string]MethodResponseContent{
				contentJSON: {Schema: MethodResponseSchema{Ref: schemaRef(schema)}},
			},
		},
	}
	if withBadRequest {
		ans[400] = MethodResponse{Description: "Invalid request data"}
	}
	return ans
}

func NewResponse(ver, url string) *APIResponse {
	paths := make(map[string]Methods)

	paths["/grammars"] = Methods{
		Get: &Method{
			Description: "Lists grammars available for parsing in the order they are tried by the grammar dispatch.",
			OperationID: "Grammars",
			Parameters:  []Parameter{},
			Responses: MethodResponses{
				200: {
					Description: "OK",
					Content: map[string]MethodResponseContent{
						contentJSON: {
							Schema: MethodResponseSchema{
								Type:  "array",
								Items: &arrayItem{Ref: schemaRef("Grammar")},
							},
						},
					},
				},
			},
		},
	}

	paths["/analyze"] = Methods{
		Post: &Method{
			Description: "Runs all the analysis stages (lexical, syntactic, semantic, pragmatic, translation) on an annotated document.",
			OperationID: "Analyze",
			Parameters:  []Parameter{},
			RequestBody: jsonBody("An annotated document produced by an external tagger", "Document"),
			Responses:   jsonResponses("Report", true),
		},
	}

	paths["/analyze/text"] = Methods{
		Post: &Method{
			Description: "Same as /analyze but the report is returned as a human readable text.",
			OperationID: "AnalyzeText",
			Parameters:  []Parameter{},
			RequestBody: jsonBody("An annotated document produced by an external tagger", "Document"),
			Responses: MethodResponses{
				200: {
					Description: "OK",
					Content: map[string]MethodResponseContent{
						contentText: {Schema: MethodResponseSchema{Type: "string"}},
					},
				},
				400: {Description: "Invalid request data"},
			},
		},
	}

	paths["/parse"] = Methods{
		Post: &Method{
			Description: "Finds all the parse trees of a token sequence. The grammar is either selected by the dispatch table, specified by its key or provided inline in the CFG notation.",
			OperationID: "Parse",
			Parameters: []Parameter{
				{
					Name:        "maxTrees",
					In:          "query",
					Description: "Maximum number of returned trees (1 up to the configured limit). By default, the configured limit is applied.",
					Required:    false,
					Schema: ParamSchema{
						Type: "integer",
					},
				},
			},
			RequestBody: jsonBody("Tokens and an optional grammar specification", "ParseArgs"),
			Responses:   jsonResponses("ParseResult", true),
		},
	}

	paths["/frame"] = Methods{
		Post: &Method{
			Description: "Extracts a predicate-argument frame from POS tagged tokens.",
			OperationID: "Frame",
			Parameters:  []Parameter{},
			RequestBody: jsonBody("Tagged tokens and an optional tag set", "FrameArgs"),
			Responses:   jsonResponses("FrameResult", true),
		},
	}

	paths["/resolve"] = Methods{
		Post: &Method{
			Description: "Replaces phrases with their referents using context rules.",
			OperationID: "Resolve",
			Parameters:  []Parameter{},
			RequestBody: jsonBody("A text, optional rules and entities", "ResolveArgs"),
			Responses:   jsonResponses("ResolveResult", true),
		},
	}

	paths["/translate"] = Methods{
		Post: &Method{
			Description: "Translates tokens using the configured dictionary. Named entities are translated as single units.",
			OperationID: "Translate",
			Parameters:  []Parameter{},
			RequestBody: jsonBody("Tokens and entity spans", "TranslateArgs"),
			Responses:   jsonResponses("TranslateResult", true),
		},
	}

	return &APIResponse{
		OpenAPI: openAPIVersion,
		Info: Info{
			Title:       "NLPIPE API",
			Description: "A classic natural language processing pipeline over annotated documents",
			Version:     ver,
		},
		Servers: []Server{
			{URL: url},
		},
		Paths:      paths,
		Components: Components{Schemas: createSchemas()},
	}
}
