package message

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"

	"github.com/tinyland-inc/waclaw/pkg/werrors"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// MsgKey uniquely identifies a message within a chat. FromMe is the
// directionality bit: true for messages authored by the current user.
type MsgKey struct {
	FromMe      bool
	Remote      wid.WID
	ID          string
	Participant *wid.WID
}

// ParseKey parses the serialized "fromMe_remote_id[_participant]" form.
func ParseKey(s string) (MsgKey, error) {
	parts := strings.Split(s, "_")
	if len(parts) < 3 || len(parts) > 4 {
		return MsgKey{}, werrors.New(werrors.KindInvalidMessageKey,
			"invalid message key: "+s, map[string]any{"messageId": s})
	}

	var fromMe bool
	switch parts[0] {
	case "true":
		fromMe = true
	case "false":
		fromMe = false
	default:
		return MsgKey{}, werrors.New(werrors.KindInvalidMessageKey,
			"invalid message key direction: "+s, map[string]any{"messageId": s})
	}

	remote, err := wid.Parse(parts[1])
	if err != nil {
		return MsgKey{}, werrors.New(werrors.KindInvalidMessageKey,
			"invalid message key remote: "+s, map[string]any{"messageId": s})
	}
	if parts[2] == "" {
		return MsgKey{}, werrors.New(werrors.KindInvalidMessageKey,
			"empty message key id: "+s, map[string]any{"messageId": s})
	}

	key := MsgKey{FromMe: fromMe, Remote: remote, ID: parts[2]}
	if len(parts) == 4 {
		participant, err := wid.Parse(parts[3])
		if err != nil {
			return MsgKey{}, werrors.New(werrors.KindInvalidMessageKey,
				"invalid message key participant: "+s, map[string]any{"messageId": s})
		}
		key.Participant = &participant
	}
	return key, nil
}

func (k MsgKey) String() string {
	fromMe := "false"
	if k.FromMe {
		fromMe = "true"
	}
	s := fromMe + "_" + k.Remote.String() + "_" + k.ID
	if k.Participant != nil {
		s += "_" + k.Participant.String()
	}
	return s
}

// IsZero reports whether the key is unset.
func (k MsgKey) IsZero() bool {
	return k.ID == "" && k.Remote.IsZero()
}

// Equals reports whether two keys identify the same message.
func (k MsgKey) Equals(o MsgKey) bool {
	return k.String() == o.String()
}

// GenerateID produces a fresh wire-compatible message id: the 3EB0 prefix
// followed by 16 uppercase hex characters drawn from r.
func GenerateID(r io.Reader) (string, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return "3EB0" + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// NewKey generates a fresh from-me key scoped to the given chat, using a
// cryptographically secure random source.
func NewKey(chatID wid.WID) (MsgKey, error) {
	id, err := GenerateID(rand.Reader)
	if err != nil {
		return MsgKey{}, err
	}
	return MsgKey{FromMe: true, Remote: chatID, ID: id}, nil
}
