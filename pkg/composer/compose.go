package composer

import (
	"context"
	"io"
	"regexp"
	"time"

	"github.com/tinyland-inc/waclaw/pkg/logger"
	"github.com/tinyland-inc/waclaw/pkg/message"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/werrors"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// mentionRegexp matches numeric-id mentions in message text: "@" followed by
// one or more digits. Only numeric mentions are detected, and repeated
// mentions of the same participant are kept once per match.
var mentionRegexp = regexp.MustCompile(`@(\d+)\b`)

// ComposeOutboundMessage validates and enriches a partial outbound message
// intent against the target chat and returns the finalized record, ready to
// hand to the transport. The chat must already be resolved by the caller.
//
// The intent is filled in place and returned; every validation failure
// aborts the pipeline with a werrors kind and no partial result is usable.
func (c *Composer) ComposeOutboundMessage(ctx context.Context, chat *store.Chat, msg *message.Message, opts *SendOptions) (*message.Message, error) {
	options := mergeOptions(opts)

	c.stampBaseFields(chat, msg)

	if options.Delay > 0 {
		if err := c.signalAndWait(ctx, chat, msg, &options); err != nil {
			return nil, err
		}
	}

	if msg.Kind != message.KindProtocol {
		applyEphemeralFields(chat, msg)
	}

	if chat.ID.IsBot() {
		if err := c.attachBotFields(chat, msg); err != nil {
			return nil, err
		}
	}

	if options.MessageID != nil {
		key, err := c.resolveExplicitKey(chat, options.MessageID)
		if err != nil {
			return nil, err
		}
		msg.Key = key
	}

	if msg.Key.IsZero() {
		id, err := message.GenerateID(c.random)
		if err != nil {
			return nil, err
		}
		msg.Key = message.MsgKey{FromMe: true, Remote: chat.ID, ID: id}
	}

	mentioned, err := coerceMentionList(options.MentionedList)
	if err != nil {
		return nil, err
	}

	if options.DetectMentioned && chat.IsGroup && len(mentioned) == 0 {
		mentioned, err = c.detectMentioned(ctx, chat, msg)
		if err != nil {
			return nil, err
		}
	}

	if mentioned != nil {
		normalized, err := normalizeMentionList(mentioned)
		if err != nil {
			return nil, err
		}
		msg.MentionedList = normalized
	}

	if options.QuotedMsg != nil {
		if err := c.applyQuotedMessage(ctx, chat, msg, options.QuotedMsg); err != nil {
			return nil, err
		}
	}

	return msg, nil
}

// stampBaseFields fills the send defaults: timestamp, sender, recipient,
// directionality, new/local flags and the initial ack state. Fields already
// set on the intent win.
func (c *Composer) stampBaseFields(chat *store.Chat, msg *message.Message) {
	if msg.T == 0 {
		msg.T = c.now().Unix()
	}
	if msg.From.IsZero() {
		msg.From = c.deps.Self
	}
	if msg.To.IsZero() {
		msg.To = chat.ID
	}
	if msg.Self == "" {
		msg.Self = message.SelfOut
	}
	msg.IsNewMsg = true
	msg.Local = true
	msg.Ack = message.AckClock
}

// signalAndWait emits the activity indicator matching the message type,
// suspends for the configured delay, then signals paused. The wait is
// cancelable through ctx; indicator failures are best-effort and only
// logged.
func (c *Composer) signalAndWait(ctx context.Context, chat *store.Chat, msg *message.Message, options *SendOptions) error {
	if msg.Kind == message.KindChat {
		if err := c.deps.Signaler.MarkComposing(ctx, chat.ID); err != nil {
			logger.WarnCF("composer", "Composing signal failed", map[string]any{
				"chat": chat.ID.String(), "error": err.Error(),
			})
		}
	} else if options.IsPtt || msg.Kind == message.KindPtt {
		if err := c.deps.Signaler.MarkRecording(ctx, chat.ID); err != nil {
			logger.WarnCF("composer", "Recording signal failed", map[string]any{
				"chat": chat.ID.String(), "error": err.Error(),
			})
		}
	}

	select {
	case <-time.After(options.Delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := c.deps.Signaler.MarkPaused(ctx, chat.ID); err != nil {
		logger.WarnCF("composer", "Paused signal failed", map[string]any{
			"chat": chat.ID.String(), "error": err.Error(),
		})
	}
	return nil
}

// applyEphemeralFields merges the chat's disappearing-message configuration
// into the message. Fields already set on the intent win; chats without
// ephemeral mode contribute nothing.
func applyEphemeralFields(chat *store.Chat, msg *message.Message) {
	if chat.EphemeralDuration == 0 {
		return
	}
	if msg.EphemeralExpiration == 0 {
		msg.EphemeralExpiration = chat.EphemeralDuration
	}
	if msg.EphemeralSettingTimestamp == 0 {
		msg.EphemeralSettingTimestamp = chat.EphemeralSettingTimestamp
	}
	if msg.EphemeralTrigger == "" {
		msg.EphemeralTrigger = chat.EphemeralTrigger
	}
}

// attachBotFields draws a fresh 32-byte message secret and derives the bot
// message secret for the chat's registered persona. A missing persona is a
// contract violation, not a recoverable condition.
func (c *Composer) attachBotFields(chat *store.Chat, msg *message.Message) error {
	profile, ok := c.deps.Bots.Get(chat.ID)
	if !ok {
		return werrors.New(werrors.KindBotPersonaNotFound,
			"no bot persona registered for "+chat.ID.String(),
			map[string]any{"chatId": chat.ID.String()})
	}

	secret := make([]byte, 32)
	if _, err := io.ReadFull(c.random, secret); err != nil {
		return err
	}
	derived, err := c.botSecret(secret, profile.PersonaID)
	if err != nil {
		return err
	}

	msg.MessageSecret = derived
	msg.BotPersonaID = profile.PersonaID
	return nil
}

// resolveExplicitKey validates a caller-supplied message id against the
// target chat. The key must be from-me and must reference the same chat.
func (c *Composer) resolveExplicitKey(chat *store.Chat, messageID any) (message.MsgKey, error) {
	var key message.MsgKey
	switch v := messageID.(type) {
	case string:
		parsed, err := message.ParseKey(v)
		if err != nil {
			return message.MsgKey{}, err
		}
		key = parsed
	case message.MsgKey:
		key = v
	case *message.MsgKey:
		key = *v
	default:
		return message.MsgKey{}, werrors.Newf(werrors.KindInvalidMessageKey,
			"unsupported messageId type %T", messageID)
	}

	if !key.FromMe {
		return message.MsgKey{}, werrors.New(werrors.KindNotFromMe,
			"message key is not from me",
			map[string]any{"messageId": key.String()})
	}
	if !key.Remote.Equals(chat.ID) {
		return message.MsgKey{}, werrors.New(werrors.KindRemoteMismatch,
			"message key remote id is not same of chat",
			map[string]any{"messageId": key.String()})
	}
	return key, nil
}

// coerceMentionList validates the mentionedList option shape. Only ordered
// sequences of string or WID are accepted; entries are returned in their
// supplied order as strings.
func coerceMentionList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []wid.WID:
		out := make([]string, len(v))
		for i, w := range v {
			out[i] = w.String()
		}
		return out, nil
	default:
		return nil, werrors.Newf(werrors.KindInvalidMentionList,
			"the option mentionedList is not an array (got %T)", value)
	}
}

// detectMentioned scans the message text for "@<digits>" mentions and keeps
// the candidates that are current participants of the group, in first-seen
// order. Repeated mentions are preserved per match; no deduplication.
func (c *Composer) detectMentioned(ctx context.Context, chat *store.Chat, msg *message.Message) ([]string, error) {
	matches := mentionRegexp.FindAllStringSubmatch(msg.Text(), -1)
	if len(matches) == 0 {
		return nil, nil
	}

	participants, err := c.deps.Participants.Participants(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(participants))
	for _, p := range participants {
		known[p.ToLegacyString()] = true
	}

	mentioned := []string{}
	for _, m := range matches {
		candidate := m[1] + "@" + wid.ServerUser
		if !known[candidate] {
			continue
		}
		mentioned = append(mentioned, candidate)
	}
	return mentioned, nil
}

// normalizeMentionList parses each mention into a validated WID and rejects
// anything that is not an individual user.
func normalizeMentionList(mentioned []string) ([]wid.WID, error) {
	normalized := make([]wid.WID, 0, len(mentioned))
	for _, m := range mentioned {
		w, err := wid.Parse(m)
		if err != nil {
			return nil, err
		}
		if !w.IsUser() {
			return nil, werrors.New(werrors.KindMentionedNotUser,
				"mentioned is not an user",
				map[string]any{"mentionedId": w.String()})
		}
		normalized = append(normalized, w)
	}
	return normalized, nil
}

// applyQuotedMessage resolves the quotedMsg option through key parsing and
// registry lookup, checks reply eligibility, and merges the quoted message's
// reply-context fields into msg. Quote fields take precedence.
func (c *Composer) applyQuotedMessage(ctx context.Context, chat *store.Chat, msg *message.Message, quotedOpt any) error {
	var quoted *message.Message

	switch v := quotedOpt.(type) {
	case string:
		key, err := message.ParseKey(v)
		if err != nil {
			return err
		}
		quoted, err = c.deps.Messages.GetMessageByKey(ctx, key)
		if err != nil {
			return err
		}
	case message.MsgKey:
		var err error
		quoted, err = c.deps.Messages.GetMessageByKey(ctx, v)
		if err != nil {
			return err
		}
	case *message.Message:
		quoted = v
	}

	if quoted == nil {
		return werrors.Newf(werrors.KindInvalidQuotedMsg, "invalid quotedMsg")
	}

	if !quoted.IsStatusV3 && !c.canReply(quoted) {
		return werrors.New(werrors.KindQuotedCannotReply,
			"quotedMsg can not reply",
			map[string]any{"quotedMsg": quoted.Key.String()})
	}

	msg.ContextInfo = message.ContextInfoFor(quoted, chat.ID)
	return nil
}
