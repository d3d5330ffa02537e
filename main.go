package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/tacit/cli"
	"github.com/ardnew/tacit/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Errors implementing slog.LogValuer expand into their attributes.
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
