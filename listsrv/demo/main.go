package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/samthor/blocktree/listsrv"
	"github.com/sirupsen/logrus"
)

var (
	flagConfig = flag.String("config", "listsrv.toml", "path to TOML config, reloaded on change")
	flagDebug  = flag.Bool("debug", false, "log at debug level")
)

func main() {
	flag.Parse()
	log := listsrv.Log

	if *flagDebug {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := listsrv.LoadConfig(*flagConfig)
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	store := listsrv.NewStore(cfg.ListOptions())
	h := &listsrv.Handler{
		Store:            store,
		SkipOriginVerify: cfg.SkipOriginVerify,
		OpLimit:          cfg.OpLimit,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		// only the op limit can change live; new lists keep the startup options
		err := listsrv.WatchConfig(ctx, *flagConfig, func(c *listsrv.Config) {
			h.SetOpLimit(c.OpLimit)
		})
		if err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("stopped watching config")
		}
	}()

	http.Handle("/list", h)

	errCh := make(chan error, 1)
	go func() { errCh <- listsrv.ListenAndServe(cfg, nil) }()

	select {
	case err = <-errCh:
		log.WithError(err).Fatal("shutdown")
	case <-ctx.Done():
		log.Info("interrupted")
	}
}
