package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hotelvalmont/cms-server/auth"
	"github.com/hotelvalmont/cms-server/content"
	"github.com/hotelvalmont/cms-server/internal/config"
	"github.com/hotelvalmont/cms-server/pagecache"
	"github.com/hotelvalmont/cms-server/server"
	"github.com/hotelvalmont/cms-server/store/sqlitestore"
	"github.com/hotelvalmont/cms-server/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := log.Logger
	if !cfg.IsProduction() {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	for _, warning := range cfg.Warnings() {
		logger.Warn().Msg(warning)
	}

	displayAppname(cfg.AppName)

	store, err := sqlitestore.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	authService, err := auth.NewService(store.Admins())
	if err != nil {
		return err
	}

	pages := pagecache.NewMemory()
	coordinator := pagecache.NewCoordinator(pages, cfg.RevalidateSecret, logger)

	contentService, err := content.NewService(store.Content(), coordinator, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, server.Services{
		Auth:        authService,
		Tokens:      token.NewAuthority([]byte(cfg.SessionSecret)),
		Content:     contentService,
		Coordinator: coordinator,
		Pages:       pages,
		Subscribers: store.Newsletter(),
	}, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv}
	go listenAndServe(logger, httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(logger zerolog.Logger, server *http.Server) {
	logger.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
