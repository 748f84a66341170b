package composer

import (
	"context"

	"github.com/tinyland-inc/waclaw/pkg/logger"
	"github.com/tinyland-inc/waclaw/pkg/node"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/werrors"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// isOutgoing reports whether the call state admits a terminate trigger.
func isOutgoing(state store.CallState) bool {
	switch state {
	case store.CallStateActive, store.CallStateOutgoingCalling, store.CallStateOutgoingRing:
		return true
	}
	return false
}

// EndCall terminates a call. With an empty callID the first call that is
// active/outgoing, or any group call, is resolved in store iteration order.
// Group calls bypass the state check because their state model differs; the
// actual transition to terminated is driven by the remote acknowledgment of
// the terminate stanza.
func (c *Composer) EndCall(ctx context.Context, callID string) (bool, error) {
	var call *store.Call
	var found bool

	if callID != "" {
		call, found = c.deps.Calls.Get(callID)
	} else {
		call, found = c.deps.Calls.FindFirst(func(candidate *store.Call) bool {
			return isOutgoing(candidate.State) || candidate.IsGroup
		})
	}

	if !found {
		display := callID
		if display == "" {
			display = "<empty>"
		}
		return false, werrors.New(werrors.KindCallNotFound,
			"call "+display+" not found",
			map[string]any{"callId": callID})
	}

	if !isOutgoing(call.State) && !call.IsGroup {
		return false, werrors.New(werrors.KindCallNotOutgoing,
			"call "+call.ID+" is not outgoing",
			map[string]any{"callId": call.ID, "state": string(call.State)})
	}

	if !call.PeerJID.IsGroupCall() {
		if err := c.deps.Sessions.EnsureE2ESessions(ctx, []wid.WID{call.PeerJID}); err != nil {
			return false, err
		}
	}

	peer := call.PeerJID.ToLegacyString()
	terminate := node.New("call",
		map[string]string{
			"to": peer,
			"id": c.deps.Dispatcher.GenerateID(),
		},
		node.New("terminate", map[string]string{
			"call-id":      call.ID,
			"call-creator": peer,
		}),
	)

	if err := c.deps.Dispatcher.SendNode(ctx, terminate); err != nil {
		return false, err
	}

	logger.InfoCF("composer", "Call terminated", map[string]any{
		"call_id": call.ID,
		"peer":    peer,
	})
	return true, nil
}
