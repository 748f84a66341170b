package send

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal"
	"github.com/tinyland-inc/waclaw/pkg/composer"
	"github.com/tinyland-inc/waclaw/pkg/message"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

func NewSendCommand() *cobra.Command {
	var (
		delay     time.Duration
		group     bool
		detect    bool
		mentions  []string
		quoted    string
		messageID string
	)

	cmd := &cobra.Command{
		Use:     "send <chat-jid> <text>",
		Short:   "Compose and dispatch a text message",
		Args:    cobra.ExactArgs(2),
		Example: "  waclaw send 5511999999999@c.us 'hello'\n  waclaw send 1203630@g.us 'hi @5511999999999' --detect-mentioned",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := internal.LoadConfig()
			if err != nil {
				return err
			}

			chatID, err := wid.Parse(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			session, err := internal.OpenSession(ctx, cfg)
			if err != nil {
				return err
			}
			defer session.Close()

			chat := &store.Chat{ID: chatID, IsGroup: group || chatID.IsGroup()}
			session.Chats.Put(chat)

			opts := composer.DefaultSendOptions()
			opts.Delay = delay
			if delay == 0 {
				opts.Delay = cfg.DefaultDelay
			}
			opts.DetectMentioned = detect
			if len(mentions) > 0 {
				opts.MentionedList = mentions
			}
			if quoted != "" {
				opts.QuotedMsg = quoted
			}
			if messageID != "" {
				opts.MessageID = messageID
			}

			msg := &message.Message{Kind: message.KindChat, Body: args[1]}
			finalized, err := session.Composer.ComposeOutboundMessage(ctx, chat, msg, &opts)
			if err != nil {
				return err
			}

			if err := session.Client.SendMessage(ctx, finalized); err != nil {
				return err
			}

			fmt.Printf("sent %s\n", finalized.Key.String())
			return nil
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 0, "Typing delay before sending")
	cmd.Flags().BoolVar(&group, "group", false, "Treat the chat as a group")
	cmd.Flags().BoolVar(&detect, "detect-mentioned", false, "Detect @mentions from the message text")
	cmd.Flags().StringSliceVar(&mentions, "mention", nil, "Explicit mentioned participant JIDs")
	cmd.Flags().StringVar(&quoted, "quote", "", "Serialized key of a message to reply to")
	cmd.Flags().StringVar(&messageID, "message-id", "", "Explicit serialized message key to reuse")

	return cmd
}
