package main

import (
	"context"
	"os"

	"github.com/petruschka/site-api/internal/config"
	"github.com/petruschka/site-api/internal/utils"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		panic(err)
	}
	if err := utils.InitLogger(os.Getenv("LOG_LEVEL"), "development"); err != nil {
		panic(err)
	}
	defer utils.Zlog.Sync()

	runner := NewRunner(os.Stdout)
	defer runner.Close()

	app := &cli.Command{
		Name:     "petruschkactl",
		Usage:    "Inspect and maintain the Petruschka site database",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		utils.Zlog.Fatal("command failed", zap.Error(err))
	}
}
