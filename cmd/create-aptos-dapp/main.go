package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aptos-labs/create-aptos-dapp/internal/cli"
	"github.com/aptos-labs/create-aptos-dapp/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, os.Args[1:])
	stop()

	if err != nil {
		noColor := ui.NewHeadlessManager().IsHeadless()
		cli.PrintError(os.Stderr, ui.NewTheme(ui.ThemeConfig{NoColor: noColor}), err)
		os.Exit(cli.ExitCode(err))
	}
}
