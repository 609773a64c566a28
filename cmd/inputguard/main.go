package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/inputguard/internal/buildinfo"
	"github.com/dmitrijs2005/inputguard/internal/cli"
	"github.com/dmitrijs2005/inputguard/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	err = app.Run(ctx)
	if cerr := app.Close(); cerr != nil {
		log.Printf("close: %v", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
