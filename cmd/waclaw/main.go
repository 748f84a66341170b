// waclaw - client-side action layer for WhatsApp-style real-time sessions
//
// License: MIT

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal"
	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal/call"
	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal/repl"
	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal/send"
	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal/version"
)

func NewWaclawCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "waclaw",
		Short:   "waclaw - message composition and call control v" + internal.FormatVersion(),
		Example: "waclaw send 5511999999999@c.us 'hello'",
	}

	cmd.AddCommand(
		send.NewSendCommand(),
		call.NewCallCommand(),
		repl.NewReplCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewWaclawCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
