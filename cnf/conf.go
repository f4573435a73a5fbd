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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nlpipe/rdb"
	"nlpipe/resources"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerReadTimeoutSecs  = 10
	dfltServerWriteTimeoutSecs = 30
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8989
	dfltTimeZone               = "Europe/Prague"
	dfltAuthHeaderName         = "X-Api-Key"
	dfltNumRecentAnalyses      = 100
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string           `json:"listenAddress"`
	PublicURL              string           `json:"publicUrl"`
	ListenPort             int              `json:"listenPort"`
	ServerReadTimeoutSecs  int              `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int              `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string         `json:"corsAllowedOrigins"`
	Resources              *resources.Conf  `json:"resources"`
	Redis                  *rdb.Conf        `json:"redis"`
	LogFile                string           `json:"logFile"`
	LogLevel               logging.LogLevel `json:"logLevel"`
	TimeZone               string           `json:"timeZone"`
	AuthHeaderName         string           `json:"authHeaderName"`

	// AuthTokens protect the monitoring API. An empty
	// list means no protection.
	AuthTokens []string `json:"authTokens"`

	// NumRecentAnalyses specifies how many recent analyses
	// are kept by the monitoring logger
	NumRecentAnalyses int `json:"numRecentAnalyses"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call ValidateAndDefaults
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if conf.srcPath == "" {
		return ""
	}
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

// LoadConfig reads a JSON configuration file. Any failure
// is fatal.
func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	conf, err := DecodeConfig(rawData)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	conf.srcPath = path
	return conf
}

func DecodeConfig(rawData []byte) (*Conf, error) {
	var conf Conf
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &conf, nil
}

// DefaultConfig provides a configuration with all the resources
// taken from embedded defaults. It is used when no configuration
// file is provided.
func DefaultConfig() *Conf {
	return &Conf{
		Resources: &resources.Conf{},
	}
}

// ValidateAndDefaults checks the configuration and fills in
// default values where possible.
func ValidateAndDefaults(conf *Conf) error {
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Msgf("listenAddress not specified, using default: %s", dfltListenAddress)
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s:%d", conf.ListenAddress, conf.ListenPort)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if conf.Resources == nil {
		conf.Resources = &resources.Conf{}
		log.Warn().Msg("resources not specified, using embedded defaults")
	}
	if err := conf.Resources.ValidateAndDefaults("resources"); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if conf.Redis == nil {
		log.Warn().Msg("redis not configured, result caching disabled")

	} else if err := conf.Redis.ValidateAndDefaults("redis"); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if len(conf.AuthTokens) > 0 && conf.AuthHeaderName == "" {
		conf.AuthHeaderName = dfltAuthHeaderName
		log.Warn().
			Str("value", dfltAuthHeaderName).
			Msg("authHeaderName not specified, using default")
	}
	if conf.NumRecentAnalyses == 0 {
		conf.NumRecentAnalyses = dfltNumRecentAnalyses

	} else if conf.NumRecentAnalyses < 0 {
		return fmt.Errorf("invalid numRecentAnalyses value %d", conf.NumRecentAnalyses)
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}
