package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/jotme/internal/fakebackend"
	"github.com/dmitrijs2005/jotme/internal/fakebackend/config"
	"github.com/dmitrijs2005/jotme/internal/logging"
)

func main() {

	cfg := config.LoadConfig(os.Args[1:])
	logger := logging.New(cfg.LogLevel, "text", os.Stdout)

	if err := fakebackend.NewApp(cfg, logger).Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
