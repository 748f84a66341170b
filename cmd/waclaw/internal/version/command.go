package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the waclaw version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(internal.FormatVersion())
		},
	}
}
