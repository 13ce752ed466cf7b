package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bannerkeeper/internal/app"
	"github.com/dmitrijs2005/bannerkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/bannerkeeper/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	a, err := app.NewApp(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
