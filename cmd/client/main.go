package main

import (
	"context"
	"log"
	"os"

	"github.com/monacoremo/postgrest-sessions-example/internal/buildinfo"
	"github.com/monacoremo/postgrest-sessions-example/internal/client/cli"
	"github.com/monacoremo/postgrest-sessions-example/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
