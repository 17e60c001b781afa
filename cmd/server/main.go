package main

import (
	"flag"
	"log"

	"github.com/shashank-sharma/backend/internal/app"
	"github.com/shashank-sharma/backend/internal/config"
	_ "github.com/shashank-sharma/backend/migrations"
)

func main() {
	flags := config.ConfigFlags{}

	flag.BoolVar(&flags.Metrics, "metrics", false, "expose Prometheus metrics on a dedicated port")
	flag.BoolVar(&flags.FileLogging, "file-logging", false, "also write logs to a file")
	flag.BoolVar(&flags.WithGui, "gui", false, "show the terminal dashboard instead of the plain start banner")
	flag.BoolVar(&flags.Dev, "dev", false, "run in development mode")
	flag.StringVar(&flags.HttpAddr, "http", "0.0.0.0:8090", "HTTP address to listen on")
	flag.Parse()

	application, err := app.New(flags)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Start(flags.HttpAddr); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
