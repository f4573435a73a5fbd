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
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"nlpipe/cnf"
	"nlpipe/general"
	"nlpipe/handlers"
	"nlpipe/monitoring"
	monitoringActions "nlpipe/monitoring/handlers"
	"nlpipe/openapi"
	"nlpipe/pipeline"
	"nlpipe/rdb"
	"nlpipe/resources"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type apiServer struct {
	server   *http.Server
	conf     *cnf.Conf
	version  general.VersionInfo
	radapter *rdb.Adapter
	analyzer *pipeline.Analyzer
	logger   *monitoring.AnalysisLogger
	metrics  *monitoring.PrometheusWriter
}

func mkServerInfo(
	conf *cnf.Conf,
	version general.VersionInfo,
	analyzer *pipeline.Analyzer,
) gin.HandlerFunc {
	res := analyzer.Resources()
	info := general.ServerInfo{
		Name:       "NLPIPE",
		Version:    version,
		TagSet:     res.TagSet.Name,
		Resolver:   string(res.ResolverMode),
		CacheUsed:  conf.Redis != nil,
		AuthNeeded: len(conf.AuthTokens) > 0,
	}
	for _, entry := range res.Dispatch.Entries() {
		info.Grammars = append(info.Grammars, entry.Key)
	}
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(ctx.Writer, info)
	}
}

func (api *apiServer) openAPIURL() string {
	ans, err := url.JoinPath(api.conf.PublicURL, "openapi")
	if err != nil {
		return "/openapi"
	}
	return ans
}

func (api *apiServer) Engine() *gin.Engine {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	actions := handlers.NewActions(api.analyzer, api.radapter, api.logger)

	engine.GET("/", mkServerInfo(api.conf, api.version, api.analyzer))

	engine.GET("/openapi", openapi.MkHandleRequest(api.conf.PublicURL, api.version.Version))

	// the UI is fed by the hand-written document served at /openapi
	engine.GET(
		"/docs/*any",
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(api.openAPIURL())),
	)

	engine.GET(
		"/grammars", actions.Grammars)

	engine.POST(
		"/analyze", actions.Analyze)

	engine.POST(
		"/analyze/text", actions.AnalyzeText)

	engine.POST(
		"/parse", actions.Parse)

	engine.POST(
		"/frame", actions.Frame)

	engine.POST(
		"/resolve", actions.Resolve)

	engine.POST(
		"/translate", actions.Translate)

	protected := engine.Group("/monitoring").Use(AuthRequired(api.conf))
	monActions := monitoringActions.NewActions(api.logger, api.conf.TimezoneLocation())

	protected.GET(
		"/load", monActions.ServiceLoad)

	protected.GET(
		"/load/:action", monActions.ActionLoad)

	protected.GET(
		"/recent", monActions.RecentRecords)

	engine.GET(
		"/metrics",
		gin.WrapH(promhttp.HandlerFor(api.metrics.Registry(), promhttp.HandlerOpts{})),
	)
	return engine
}

func (api *apiServer) Start(ctx context.Context) {
	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      api.Engine(),
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down NLPIPE HTTP API server")
	err := api.server.Shutdown(ctx)
	if err2 := api.radapter.Close(); err2 != nil {
		log.Error().Err(err2).Msg("failed to close Redis connection")
	}
	return err
}

func runApiServer(
	conf *cnf.Conf,
	version general.VersionInfo,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bundle, err := resources.Load(conf.Resources)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load linguistic resources")
		return
	}
	analyzer, err := pipeline.NewAnalyzer(bundle)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize analyzer")
		return
	}
	radapter := rdb.NewAdapter(conf.Redis)
	if err := radapter.TestConnection(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
		return
	}
	metrics := monitoring.NewPrometheusWriter()
	logger := monitoring.NewAnalysisLogger(metrics, conf.NumRecentAnalyses)
	server := newAPIServer(conf, version, radapter, analyzer, logger, metrics)

	services := []service{logger, server}
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}

func newAPIServer(
	conf *cnf.Conf,
	version general.VersionInfo,
	radapter *rdb.Adapter,
	analyzer *pipeline.Analyzer,
	logger *monitoring.AnalysisLogger,
	metrics *monitoring.PrometheusWriter,
) *apiServer {
	return &apiServer{
		conf:     conf,
		version:  version,
		radapter: radapter,
		analyzer: analyzer,
		logger:   logger,
		metrics:  metrics,
	}
}
