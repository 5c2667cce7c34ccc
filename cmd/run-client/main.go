package main

import (
	"flag"
	"os"

	"github.com/rywk/dualgrid/pkg/client"
	"github.com/rywk/dualgrid/pkg/config"
	"github.com/rywk/dualgrid/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "client.yaml", "config file")
	mapPath := flag.String("map", "", "map file, overrides render.map_path")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if *mapPath != "" {
		cfg.Render.MapPath = *mapPath
	}
	closer, err := logger.Initialize(cfg.Logging)
	if err != nil {
		logger.Error("init logging", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := client.Run(cfg); err != nil {
		logger.Error("client stopped", "error", err)
		closer.Close()
		os.Exit(1)
	}
}
