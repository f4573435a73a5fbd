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

package resources

import (
	"crypto/sha1"
	"embed"
	"encoding/hex"
	"fmt"
	"hash"
	"os"
	"path"
	"sort"
	"strings"

	"nlpipe/grammar"
	"nlpipe/lexical"
	"nlpipe/pragmatic"
	"nlpipe/semantic"
	"nlpipe/translation"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	dfltGrammarsAsset = "assets/grammars.yaml"
	dfltTableAsset    = "assets/eng-spa.yaml"
	dfltContextAsset  = "assets/context.yaml"
	dfltSynonymsAsset = "assets/synonyms.yaml"
	samplesDir        = "assets/samples"
)

//go:embed assets
var assets embed.FS

// Bundle contains all the loaded resources. It is
// never modified after Load returns.
type Bundle struct {
	Dispatch     *grammar.Dispatch
	Table        *translation.Table
	ContextRules []pragmatic.Rule
	Synonyms     *semantic.SynonymTable
	ResolverMode pragmatic.ResolverMode
	TagSet       semantic.TagSet
	MaxTrees     int

	// Fingerprint identifies the loaded resource data together
	// with the settings affecting analysis results. Two bundles
	// with equal fingerprints produce equal results.
	Fingerprint string
}

type grammarEntry struct {
	Key      string   `yaml:"key"`
	Start    string   `yaml:"start"`
	Triggers []string `yaml:"triggers"`
	Rules    string   `yaml:"rules"`
}

type grammarsFile struct {
	Default  string         `yaml:"default"`
	Grammars []grammarEntry `yaml:"grammars"`
}

func readResource(srcPath, dfltAsset string) ([]byte, error) {
	if srcPath == "" {
		return assets.ReadFile(dfltAsset)
	}
	return os.ReadFile(srcPath)
}

// LoadGrammars parses a YAML grammar dispatch definition. Each grammar
// is written in the CFG notation accepted by grammar.ParseCFG. If no
// default key is specified, the last grammar becomes the default one.
func LoadGrammars(data []byte) (*grammar.Dispatch, error) {
	var gf grammarsFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("failed to decode grammars: %w", err)
	}
	entries := make([]grammar.DispatchEntry, 0, len(gf.Grammars))
	for _, ge := range gf.Grammars {
		g, err := grammar.ParseCFGWithStart(ge.Rules, ge.Start)
		if err != nil {
			return nil, fmt.Errorf("failed to load grammar `%s`: %w", ge.Key, err)
		}
		if undef := g.Undefined(); len(undef) > 0 {
			log.Warn().
				Str("grammar", ge.Key).
				Any("symbols", undef).
				Msg("grammar uses undefined non-terminals")
		}
		entries = append(
			entries,
			grammar.DispatchEntry{Key: ge.Key, Grammar: g, Triggers: ge.Triggers},
		)
	}
	dflt := gf.Default
	if dflt == "" && len(entries) > 0 {
		dflt = entries[len(entries)-1].Key
	}
	return grammar.NewDispatch(entries, dflt)
}

// LoadTable parses a flat YAML mapping source -> target
func LoadTable(data []byte) (*translation.Table, error) {
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode translation table: %w", err)
	}
	return translation.NewTable(entries), nil
}

// LoadSynonyms parses a YAML mapping word -> list of synonyms
func LoadSynonyms(data []byte) (*semantic.SynonymTable, error) {
	var entries map[string][]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode synonyms: %w", err)
	}
	return semantic.NewSynonymTable(entries), nil
}

// LoadContextRules parses a YAML list of pattern/replacement
// pairs. The order of the list is preserved.
func LoadContextRules(data []byte) ([]pragmatic.Rule, error) {
	var rules []pragmatic.Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode context rules: %w", err)
	}
	for i, r := range rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("context rule %d has an empty pattern", i)
		}
	}
	return rules, nil
}

// Load reads all the configured resources. The conf is expected
// to be validated (see Conf.ValidateAndDefaults).
func Load(conf *Conf) (*Bundle, error) {
	fp := sha1.New()
	data, err := readResource(conf.GrammarsPath, dfltGrammarsAsset)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammars: %w", err)
	}
	writeFingerprintPart(fp, data)
	dispatch, err := LoadGrammars(data)
	if err != nil {
		return nil, err
	}
	data, err = readResource(conf.TranslationTablePath, dfltTableAsset)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation table: %w", err)
	}
	writeFingerprintPart(fp, data)
	table, err := LoadTable(data)
	if err != nil {
		return nil, err
	}
	data, err = readResource(conf.ContextRulesPath, dfltContextAsset)
	if err != nil {
		return nil, fmt.Errorf("failed to read context rules: %w", err)
	}
	writeFingerprintPart(fp, data)
	rules, err := LoadContextRules(data)
	if err != nil {
		return nil, err
	}
	data, err = readResource(conf.SynonymsPath, dfltSynonymsAsset)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonyms: %w", err)
	}
	writeFingerprintPart(fp, data)
	synonyms, err := LoadSynonyms(data)
	if err != nil {
		return nil, err
	}
	tagSet, ok := semantic.TagSetByName(conf.TagSet)
	if !ok {
		return nil, fmt.Errorf("unknown tag set `%s`", conf.TagSet)
	}
	writeFingerprintPart(fp, []byte(conf.ResolverMode))
	writeFingerprintPart(fp, []byte(tagSet.Name))
	writeFingerprintPart(fp, []byte(fmt.Sprint(conf.MaxTrees())))
	fingerprint := hex.EncodeToString(fp.Sum(nil))
	log.Info().
		Int("grammars", len(dispatch.Entries())).
		Int("tableEntries", table.Len()).
		Int("contextRules", len(rules)).
		Int("synonyms", synonyms.Len()).
		Str("tagSet", tagSet.Name).
		Str("fingerprint", fingerprint).
		Msg("loaded linguistic resources")
	return &Bundle{
		Dispatch:     dispatch,
		Table:        table,
		ContextRules: rules,
		Synonyms:     synonyms,
		ResolverMode: conf.ResolverMode,
		TagSet:       tagSet,
		MaxTrees:     conf.MaxTrees(),
		Fingerprint:  fingerprint,
	}, nil
}

// writeFingerprintPart writes a length-prefixed part so that
// adjacent parts cannot be shifted into each other
func writeFingerprintPart(h hash.Hash, data []byte) {
	fmt.Fprintf(h, "%d:", len(data))
	h.Write(data)
}

// SampleNames lists embedded sample documents
func SampleNames() []string {
	items, err := assets.ReadDir(samplesDir)
	if err != nil {
		return []string{}
	}
	ans := make([]string, 0, len(items))
	for _, item := range items {
		ans = append(ans, strings.TrimSuffix(item.Name(), ".json"))
	}
	sort.Strings(ans)
	return ans
}

// SampleDocument returns an embedded annotated document
func SampleDocument(name string) (*lexical.Document, error) {
	data, err := assets.ReadFile(path.Join(samplesDir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("sample document `%s` not found", name)
	}
	return lexical.DecodeDocument(data)
}
