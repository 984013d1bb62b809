// Command searchdown inspects, renders and drives searchdown widget
// configurations from the terminal.
package main

import (
	"context"
	"os"

	"github.com/goliatone/go-searchdown/internal/app"
)

var version = "dev"

func main() {
	application, err := app.New(version)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		application.Logger().Debug().Err(err).Msg("command failed")
		cancel()
		app.ExitOnError(err)
	}
}
