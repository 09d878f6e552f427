// Copyright 2021 Compass Systems
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/ChainSafe/log15"
	"github.com/gin-gonic/gin"
	"github.com/mapprotocol/compass-verifier/internal/expose"
	"github.com/mapprotocol/compass-verifier/internal/expose/handler"
	"github.com/mapprotocol/compass-verifier/internal/expose/service"
	"github.com/mapprotocol/compass-verifier/internal/record"
	"github.com/mapprotocol/compass-verifier/internal/report"
	"github.com/mapprotocol/compass-verifier/pkg/util"
	"github.com/urfave/cli/v2"
)

func handleExposeCmd(ctx *cli.Context) error {
	log.Info("Starting verifier expose ...")
	cfg, err := expose.Local(ctx)
	if err != nil {
		return err
	}
	util.Init(cfg.Other.Env, cfg.Other.MonitorUrl)

	store, err := record.New(cfg.Store.Type, cfg.Store.Target)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	runCtx, cancel := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var reporter *report.Report
	if cfg.Other.ReportUrl != "" {
		reporter = report.New(cfg.Other.ReportUrl)
		reporter.Start(runCtx)
	}

	srv, err := service.NewVerify(cfg, store, reporter)
	if err != nil {
		return err
	}
	g := gin.New()
	g.Use(gin.Recovery())
	handler.New(srv).Register(g)

	server := &http.Server{Addr: cfg.Port, Handler: g}
	errCh := make(chan error, 1)
	go func() {
		log.Info("Serving", "port", cfg.Port, "strict", cfg.Strict, "store", cfg.Store.Type)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
	case <-runCtx.Done():
		log.Info("Shutting down verifier expose")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err = server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	if reporter != nil {
		cancel()
		<-reporter.Done()
	}
	return nil
}
