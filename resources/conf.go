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
	"fmt"

	"nlpipe/pragmatic"
	"nlpipe/semantic"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const (
	DfltMaxTreesPerSentence = 50
)

// Conf specifies linguistic resources used by the pipeline.
// Any empty path means "use the embedded default".
type Conf struct {
	GrammarsPath         string                 `json:"grammarsPath"`
	TranslationTablePath string                 `json:"translationTablePath"`
	ContextRulesPath     string                 `json:"contextRulesPath"`
	SynonymsPath         string                 `json:"synonymsPath"`
	ResolverMode         pragmatic.ResolverMode `json:"resolverMode"`
	TagSet               string                 `json:"tagSet"`

	// MaxTreesPerSentence limits number of reported parse trees.
	// A negative value means "report all".
	MaxTreesPerSentence int `json:"maxTreesPerSentence"`
}

// MaxTrees returns the limit in the form accepted by chart.ParseN
func (conf *Conf) MaxTrees() int {
	if conf.MaxTreesPerSentence < 0 {
		return 0
	}
	return conf.MaxTreesPerSentence
}

func validateOptionalFile(path, confContext, item string) error {
	if path == "" {
		log.Info().Msgf("`%s.%s` not set, using embedded default", confContext, item)
		return nil
	}
	isFile, err := fs.IsFile(path)
	if err != nil {
		return fmt.Errorf("failed to test `%s.%s` file: %w", confContext, item, err)
	}
	if !isFile {
		return fmt.Errorf("the `%s.%s` does not point to a file", confContext, item)
	}
	return nil
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if err := validateOptionalFile(conf.GrammarsPath, confContext, "grammarsPath"); err != nil {
		return err
	}
	if err := validateOptionalFile(
		conf.TranslationTablePath, confContext, "translationTablePath"); err != nil {
		return err
	}
	if err := validateOptionalFile(conf.ContextRulesPath, confContext, "contextRulesPath"); err != nil {
		return err
	}
	if err := validateOptionalFile(conf.SynonymsPath, confContext, "synonymsPath"); err != nil {
		return err
	}
	if conf.ResolverMode == "" {
		conf.ResolverMode = pragmatic.ModeSequential
		log.Warn().
			Str("value", string(conf.ResolverMode)).
			Msgf("`%s.resolverMode` not set, using default", confContext)
	}
	if err := conf.ResolverMode.Validate(); err != nil {
		return fmt.Errorf("invalid `%s.resolverMode`: %w", confContext, err)
	}
	if conf.TagSet == "" {
		conf.TagSet = semantic.PennTagSet.Name
		log.Warn().
			Str("value", conf.TagSet).
			Msgf("`%s.tagSet` not set, using default", confContext)
	}
	if _, ok := semantic.TagSetByName(conf.TagSet); !ok {
		return fmt.Errorf("unknown `%s.tagSet` value `%s`", confContext, conf.TagSet)
	}
	if conf.MaxTreesPerSentence == 0 {
		conf.MaxTreesPerSentence = DfltMaxTreesPerSentence
		log.Warn().
			Int("value", conf.MaxTreesPerSentence).
			Msgf("`%s.maxTreesPerSentence` not set, using default", confContext)
	}
	return nil
}
