// cmd/knockout/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/jason-s-yu/knockout/internal/cmd/knockout"
	"github.com/jason-s-yu/knockout/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := knockout.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}

	logger := knockout.NewLogger(cfg, os.Stderr)

	res, err := knockout.Run(cfg, os.Stdout, logger)
	if err != nil {
		logger.Fatalf("knockout: %v", err)
	}
	logger.WithField("outcome", res.Outcome.String()).Debug("Done")
}
