package main

import (
	"context"
	"finplay/app/catalog"
	"finplay/app/client/groq"
	"finplay/app/config"
	"finplay/app/server"
	"finplay/app/service/conversation"
	"finplay/app/service/rules"
	"finplay/app/service/transcript"
	"finplay/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, catalog.New)
	do.Provide(di, rules.New)
	do.Provide(di, transcript.New)
	do.Provide(di, func(di *do.Injector) (conversation.Delegate, error) {
		return groq.New(di)
	})
	do.Provide(di, conversation.NewFactory)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if err := do.MustInvoke[*server.Service](di).Run(appCtx); err != nil {
		slog.Error("Server stopped", "error", err)
	}
}
