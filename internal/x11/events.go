package x11

import (
	x "github.com/linuxdeepin/go-x11-client"
	"github.com/linuxdeepin/go-x11-client/ext/input"
)

// Event is an inbound server notification decoded at the protocol
// boundary. The daemon only distinguishes device hierarchy changes;
// every other event collapses into UnknownEvent.
type Event interface {
	event()
}

// HierarchyChanged reports that the set of input devices changed. Only
// the flags word is retained; the per-device change records are
// deliberately not consumed, since settings are reapplied globally to
// the core keyboard rather than patched per device.
type HierarchyChanged struct {
	Flags uint32
}

// UnknownEvent is any inbound event the daemon has no use for.
type UnknownEvent struct {
	Code uint8
}

func (HierarchyChanged) event() {}
func (UnknownEvent) event()     {}

// hierarchyAddedMask covers a new master device and a new slave
// device. Removals, enables and disables never trigger reapplication.
const hierarchyAddedMask = input.HierarchyMaskMasterAdded | input.HierarchyMaskSlaveAdded

// NeedsReapply reports whether ev must trigger a repeat-settings
// reapplication: a hierarchy change that includes at least one added
// device. It is deliberately coarse; any qualifying event causes a
// full, idempotent reapplication regardless of which device arrived.
func NeedsReapply(ev Event) bool {
	hc, ok := ev.(HierarchyChanged)
	return ok && hc.Flags&hierarchyAddedMask != 0
}

// decodeEvent classifies an inbound wire event. Anything that is not a
// generic event carrying the XInput hierarchy-changed sub-type
// collapses into UnknownEvent.
func decodeEvent(ev x.GenericEvent, inputOpcode uint8) Event {
	code := ev.GetEventCode()
	if code != x.GeGenericEventCode {
		return UnknownEvent{Code: code}
	}
	geEvent, err := x.NewGeGenericEvent(ev)
	if err != nil {
		return UnknownEvent{Code: code}
	}
	if geEvent.Extension != inputOpcode || geEvent.EventType != input.HierarchyEventCode {
		return UnknownEvent{Code: code}
	}
	hierarchyEv, err := input.NewHierarchyEvent(geEvent.Data)
	if err != nil {
		return UnknownEvent{Code: code}
	}
	return HierarchyChanged{Flags: hierarchyEv.Flags}
}
