// Package main is the terminal client for the tic-tac-toe server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/client"
)

var rootCmd = &cobra.Command{
	Use:           "client <server-address>",
	Short:         "Joins a tic-tac-toe game over TCP.",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCmd,
}

func runCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	gameClient := client.New(logger, cmd.InOrStdin(), cmd.OutOrStdout())

	return errors.Wrap(gameClient.Run(ctx, args[0]), "run client failed")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
