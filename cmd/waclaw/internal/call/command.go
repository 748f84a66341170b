package call

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

func NewCallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Call control",
	}

	cmd.AddCommand(newEndCommand())
	return cmd
}

func newEndCommand() *cobra.Command {
	var (
		peer  string
		state string
		group bool
	)

	cmd := &cobra.Command{
		Use:     "end [call-id]",
		Short:   "End a call",
		Args:    cobra.MaximumNArgs(1),
		Example: "  waclaw call end\n  waclaw call end 1234ABCD --peer 5511999999999@c.us --state ACTIVE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := internal.LoadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			session, err := internal.OpenSession(ctx, cfg)
			if err != nil {
				return err
			}
			defer session.Close()

			callID := ""
			if len(args) == 1 {
				callID = args[0]
			}

			if peer != "" {
				peerJID, err := wid.Parse(peer)
				if err != nil {
					return err
				}
				session.Calls.Put(&store.Call{
					ID:      callID,
					PeerJID: peerJID,
					State:   store.CallState(state),
					IsGroup: group,
				})
			}

			ok, err := session.Composer.EndCall(ctx, callID)
			if err != nil {
				return err
			}
			if ok {
				fmt.Println("call ended")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&peer, "peer", "", "Peer JID of the call (seeds the local call registry)")
	cmd.Flags().StringVar(&state, "state", string(store.CallStateActive), "Current call state")
	cmd.Flags().BoolVar(&group, "group", false, "The call is a group call")

	return cmd
}
