// Package wid implements WhatsApp identifiers (WIDs) for users, groups,
// broadcast lists and calls. A WID is an opaque "user@server" pair; string
// round-trips are exact and comparisons are by value.
package wid

import (
	"strings"

	"github.com/tinyland-inc/waclaw/pkg/werrors"
)

// Known WID servers.
const (
	ServerUser       = "c.us"
	ServerUserModern = "s.whatsapp.net"
	ServerGroup      = "g.us"
	ServerBroadcast  = "broadcast"
	ServerCall       = "call"
	ServerBot        = "bot"
	ServerLid        = "lid"
	ServerNewsletter = "newsletter"
)

var knownServers = map[string]bool{
	ServerUser:       true,
	ServerUserModern: true,
	ServerGroup:      true,
	ServerBroadcast:  true,
	ServerCall:       true,
	ServerBot:        true,
	ServerLid:        true,
	ServerNewsletter: true,
}

// WID is a validated WhatsApp identifier.
type WID struct {
	User   string
	Server string
}

// Parse validates and parses a WID from its "user@server" string form.
func Parse(s string) (WID, error) {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return WID{}, werrors.New(werrors.KindInvalidWid, "invalid wid: "+s, map[string]any{"wid": s})
	}

	w := WID{User: s[:at], Server: s[at+1:]}
	if !knownServers[w.Server] {
		return WID{}, werrors.New(werrors.KindInvalidWid, "unknown wid server: "+s, map[string]any{"wid": s})
	}
	return w, nil
}

// MustParse parses a WID and panics on failure. For tests and literals.
func MustParse(s string) WID {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// IsZero reports whether the WID is the zero value.
func (w WID) IsZero() bool {
	return w.User == "" && w.Server == ""
}

func (w WID) String() string {
	return w.User + "@" + w.Server
}

// ToLegacyString renders the WID in its legacy wire form: user WIDs on the
// modern server are mapped back to the c.us server. This is the form required
// by call stanzas.
func (w WID) ToLegacyString() string {
	if w.Server == ServerUserModern {
		return w.User + "@" + ServerUser
	}
	return w.String()
}

// Equals reports whether two WIDs denote the same entity. The legacy and
// modern user servers are considered equal.
func (w WID) Equals(o WID) bool {
	return w.ToLegacyString() == o.ToLegacyString()
}

// IsUser reports whether the WID denotes an individual user account.
func (w WID) IsUser() bool {
	return w.Server == ServerUser || w.Server == ServerUserModern || w.Server == ServerLid
}

// IsGroup reports whether the WID denotes a group chat.
func (w WID) IsGroup() bool {
	return w.Server == ServerGroup
}

// IsBroadcast reports whether the WID denotes a broadcast list.
func (w WID) IsBroadcast() bool {
	return w.Server == ServerBroadcast
}

// IsStatus reports whether the WID is the status broadcast list.
func (w WID) IsStatus() bool {
	return w.User == "status" && w.Server == ServerBroadcast
}

// IsGroupCall reports whether the WID references a group call.
func (w WID) IsGroupCall() bool {
	return w.Server == ServerCall
}

// IsBot reports whether the WID denotes a bot recipient.
func (w WID) IsBot() bool {
	return w.Server == ServerBot
}

// IsLid reports whether the WID is a local-identifier (hidden-number) WID.
func (w WID) IsLid() bool {
	return w.Server == ServerLid
}
