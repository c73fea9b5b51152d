package main

import (
	"flag"
	"log"

	approuters "github.com/devimrittika/Green-Planet/internal/app_routers"
	"github.com/devimrittika/Green-Planet/internal/configuration"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config file")
	flag.Parse()

	container, err := configuration.BuildContainer(*configPath)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// Ensure cleanup on shutdown
	defer container.Close()

	approuters.StartServer(container)
}
