// Package werrors defines the structured error type used by the action
// composition pipeline. Every validation failure carries a machine-readable
// kind, a human message, and the offending values, so callers can branch on
// the kind instead of matching error strings.
package werrors

import (
	"errors"
	"fmt"
)

// Error kinds raised by the composition and call-control paths.
const (
	KindInvalidWid           = "invalid_wid"
	KindInvalidMessageKey    = "invalid_message_key"
	KindNotFromMe            = "message_key_is_not_from_me"
	KindRemoteMismatch       = "message_key_remote_id_is_not_same_of_chat"
	KindInvalidMentionList   = "mentioned_list_is_not_array"
	KindMentionedNotUser     = "mentioned_is_not_user"
	KindInvalidQuotedMsg     = "invalid_quoted_msg"
	KindQuotedCannotReply    = "quoted_msg_can_not_reply"
	KindBotPersonaNotFound   = "bot_persona_not_found"
	KindCallNotFound         = "call_not_found"
	KindCallNotOutgoing      = "call_is_not_outcoming_calling"
	KindChatNotFound         = "chat_not_found"
	KindTransportUnavailable = "transport_unavailable"
)

// Error is a tagged error with structured context.
type Error struct {
	Kind    string
	Message string
	Context map[string]any
}

func (e *Error) Error() string {
	return e.Kind + ": " + e.Message
}

// New creates an Error with the given kind, message and context values.
func New(kind, message string, context map[string]any) *Error {
	return &Error{Kind: kind, Message: message, Context: context}
}

// Newf creates an Error with a formatted message and no context.
func Newf(kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err if it is (or wraps) an *Error, else "".
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind string) bool {
	return KindOf(err) == kind
}
