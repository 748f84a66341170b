package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tinyland-inc/waclaw/cmd/waclaw/internal"
	"github.com/tinyland-inc/waclaw/pkg/composer"
	"github.com/tinyland-inc/waclaw/pkg/message"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

func NewReplCommand() *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:   "repl <chat-jid>",
		Short: "Interactive send loop for a chat",
		Args:  cobra.ExactArgs(1),
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

			rl, err := readline.New(chatID.String() + "> ")
			if err != nil {
				return err
			}
			defer rl.Close()

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt || err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "/quit" {
					return nil
				}

				opts := composer.DefaultSendOptions()
				opts.Delay = cfg.DefaultDelay

				msg := &message.Message{Kind: message.KindChat, Body: line}
				finalized, err := session.Composer.ComposeOutboundMessage(ctx, chat, msg, &opts)
				if err != nil {
					fmt.Printf("error: %v\n", err)
					continue
				}
				if err := session.Client.SendMessage(ctx, finalized); err != nil {
					fmt.Printf("error: %v\n", err)
					continue
				}
				fmt.Printf("sent %s\n", finalized.Key.ID)
			}
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "Treat the chat as a group")
	return cmd
}
