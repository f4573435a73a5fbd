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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"nlpipe/cnf"
	"nlpipe/general"
	"nlpipe/lexical"
	"nlpipe/pipeline"
	"nlpipe/resources"
)

const (
	dfltSample = "cat"
)

var (
	version   string
	buildDate string
	gitCommit string
)

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if strings.HasSuffix(ctx.Request.URL.Path, "/openapi") {
			ctx.Header("Access-Control-Allow-Origin", "*")
			ctx.Header("Access-Control-Allow-Methods", "GET")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		} else {
			var allowedOrigin string
			currOrigin := getRequestOrigin(ctx)
			for _, origin := range conf.CorsAllowedOrigins {
				if currOrigin == origin {
					allowedOrigin = origin
					break
				}
			}
			if allowedOrigin != "" {
				ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				ctx.Writer.Header().Set(
					"Access-Control-Allow-Headers",
					"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
				)
				ctx.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
			}

			if ctx.Request.Method == "OPTIONS" {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		ctx.Next()
	}
}

func AuthRequired(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if len(conf.AuthTokens) > 0 && !collections.SliceContains(conf.AuthTokens, ctx.GetHeader(conf.AuthHeaderName)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

// loadDocument reads an annotated document either from a file
// or (if no such file exists) from the embedded samples
func loadDocument(src string) (*lexical.Document, error) {
	isFile, err := fs.IsFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", src, err)
	}
	if !isFile {
		return resources.SampleDocument(src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", src, err)
	}
	return lexical.DecodeDocument(data)
}

func writeReport(w io.Writer, report *pipeline.Report, format string) error {
	switch format {
	case "text":
		return report.WriteText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return fmt.Errorf("unknown output format %s", format)
}

func runAnalyze(conf *cnf.Conf, docSrc, format string) error {
	bundle, err := resources.Load(conf.Resources)
	if err != nil {
		return err
	}
	analyzer, err := pipeline.NewAnalyzer(bundle)
	if err != nil {
		return err
	}
	doc, err := loadDocument(docSrc)
	if err != nil {
		return err
	}
	return writeReport(os.Stdout, analyzer.Analyze(doc), format)
}

func main() {
	version := general.VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}
	outputFormat := flag.String("format", "text", "output format of the analyze action (text, json)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "NLPIPE - a classic natural language processing pipeline\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] server [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] analyze [config.json] [doc.json|%s]\n\t",
			filepath.Base(os.Args[0]), strings.Join(resources.SampleNames(), "|"))
		fmt.Fprintf(os.Stderr, "%s [options] test [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("nlpipe %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return
	}

	var conf *cnf.Conf
	docSrc := dfltSample
	if action == "analyze" {
		switch flag.NArg() {
		case 1:
			conf = cnf.DefaultConfig()
		case 2:
			conf = cnf.DefaultConfig()
			docSrc = flag.Arg(1)
		default:
			conf = cnf.LoadConfig(flag.Arg(1))
			docSrc = flag.Arg(2)
		}

	} else {
		conf = cnf.LoadConfig(flag.Arg(1))
	}
	logging.SetupLogging(logging.LoggingConf{Path: conf.LogFile, Level: conf.LogLevel})

	if action == "test" {
		if err := cnf.ValidateAndDefaults(conf); err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}
		if _, err := resources.Load(conf.Resources); err != nil {
			log.Fatal().Err(err).Msg("invalid resources")
		}
		log.Info().Msg("config OK")
		return
	}

	if err := cnf.ValidateAndDefaults(conf); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
		return
	}

	switch action {
	case "server":
		log.Info().Msg("Starting NLPIPE")
		runApiServer(conf, version)
	case "analyze":
		if err := runAnalyze(conf, docSrc, *outputFormat); err != nil {
			log.Fatal().Err(err).Msg("failed to analyze document")
		}
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
