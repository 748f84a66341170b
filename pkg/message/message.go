// Package message defines the outbound message model: tagged message kinds,
// delivery acknowledgment states, message keys and reply-context metadata.
package message

import (
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// Kind discriminates the message payload type.
type Kind string

const (
	KindChat       Kind = "chat"
	KindImage      Kind = "image"
	KindVideo      Kind = "video"
	KindAudio      Kind = "audio"
	KindPtt        Kind = "ptt"
	KindDocument   Kind = "document"
	KindSticker    Kind = "sticker"
	KindLocation   Kind = "location"
	KindVCard      Kind = "vcard"
	KindProtocol   Kind = "protocol"
	KindCiphertext Kind = "ciphertext"
	KindRevoked    Kind = "revoked"
)

// IsMedia reports whether the kind carries a media payload.
func (k Kind) IsMedia() bool {
	switch k {
	case KindImage, KindVideo, KindAudio, KindPtt, KindDocument, KindSticker:
		return true
	}
	return false
}

// Ack is the delivery acknowledgment state of a message.
type Ack int

const (
	AckError    Ack = -1
	AckClock    Ack = 0
	AckSent     Ack = 1
	AckReceived Ack = 2
	AckRead     Ack = 3
	AckPlayed   Ack = 4
)

// Directionality markers for the Self field.
const (
	SelfOut = "out"
	SelfIn  = "in"
)

// ContextInfo carries the reply-context fields merged into a message when it
// quotes another message.
type ContextInfo struct {
	QuotedStanzaID    string   `json:"quotedStanzaID,omitempty"`
	QuotedParticipant *wid.WID `json:"quotedParticipant,omitempty"`
	QuotedRemoteJID   *wid.WID `json:"quotedRemoteJid,omitempty"`
	QuotedMsgKind     Kind     `json:"quotedMsgType,omitempty"`
	QuotedBody        string   `json:"quotedBody,omitempty"`
}

// Message is an outbound message record. The composer populates it from a
// partial intent; once returned from the pipeline it is complete and must
// not be mutated.
type Message struct {
	Key  MsgKey  `json:"id"`
	Kind Kind    `json:"type"`
	T    int64   `json:"t"`
	From wid.WID `json:"from"`
	To   wid.WID `json:"to"`
	Self string  `json:"self"`

	Body     string `json:"body,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filehash string `json:"filehash,omitempty"`
	Mimetype string `json:"mimetype,omitempty"`

	IsNewMsg bool `json:"isNewMsg"`
	Local    bool `json:"local"`
	Ack      Ack  `json:"ack"`

	// Ephemeral (disappearing message) fields, present only when the chat
	// has ephemeral mode enabled.
	EphemeralExpiration       uint32 `json:"ephemeralDuration,omitempty"`
	EphemeralSettingTimestamp int64  `json:"ephemeralSettingTimestamp,omitempty"`
	EphemeralTrigger          string `json:"disappearingModeInitiator,omitempty"`

	// Bot recipient fields.
	MessageSecret []byte `json:"messageSecret,omitempty"`
	BotPersonaID  string `json:"botPersonaId,omitempty"`

	MentionedList []wid.WID    `json:"mentionedJidList,omitempty"`
	ContextInfo   *ContextInfo `json:"contextInfo,omitempty"`

	// IsStatusV3 marks status (story) messages, which are always quotable.
	IsStatusV3 bool `json:"isStatusV3,omitempty"`
}

// Text returns the textual content of the message: the body for plain chat
// messages, the caption for everything else.
func (m *Message) Text() string {
	if m.Kind == KindChat {
		return m.Body
	}
	return m.Caption
}

// ContextInfoFor derives the reply-context fields for quoting quoted inside
// the chat identified by chatID. The quoted participant is only carried when
// the quoted message lives in a different chat or in a group.
func ContextInfoFor(quoted *Message, chatID wid.WID) *ContextInfo {
	info := &ContextInfo{
		QuotedStanzaID: quoted.Key.ID,
		QuotedMsgKind:  quoted.Kind,
		QuotedBody:     quoted.Text(),
	}

	remote := quoted.Key.Remote
	if !remote.Equals(chatID) {
		info.QuotedRemoteJID = &remote
	}

	participant := quoted.From
	if !quoted.Key.FromMe && quoted.Key.Participant != nil {
		participant = *quoted.Key.Participant
	}
	info.QuotedParticipant = &participant

	return info
}
