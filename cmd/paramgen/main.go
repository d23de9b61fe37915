package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/simonhull/paramgen/internal/commands"
	"github.com/simonhull/paramgen/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := commands.NewApp().ExecuteContext(ctx)
	stop()
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
