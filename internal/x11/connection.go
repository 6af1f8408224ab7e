package x11

import (
	"errors"
	"fmt"

	x "github.com/linuxdeepin/go-x11-client"
	"github.com/linuxdeepin/go-x11-client/ext/input"
	"github.com/linuxdeepin/go-x11-client/ext/xkb"
)

// Versions announced during extension negotiation.
const (
	xi2MajorVersion = 2
	xi2MinorVersion = 0
	xkbMajorVersion = 1
	xkbMinorVersion = 0
)

// Wire names of the extensions the daemon depends on.
const (
	inputExtName = "XInputExtension"
	xkbExtName   = "XKEYBOARD"
)

const eventChanSize = 10

// Conn manages the X11 connection and the two extensions the daemon
// depends on: XInput for device hierarchy notifications and XKB for
// keyboard controls.
type Conn struct {
	conn        *x.Conn
	root        x.Window
	events      chan x.GenericEvent
	inputOpcode uint8
}

// Connect establishes a connection to the X server. An empty display
// string falls back to $DISPLAY.
func Connect(display string) (*Conn, error) {
	var (
		conn *x.Conn
		err  error
	)
	if display == "" {
		conn, err = x.NewConn()
	} else {
		conn, err = x.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot connect to X server: %w", err)
	}

	events := make(chan x.GenericEvent, eventChanSize)
	conn.AddEventChan(events)

	return &Conn{
		conn:   conn,
		root:   conn.GetDefaultScreen().Root,
		events: events,
	}, nil
}

// Negotiate verifies that the XInput and XKB extensions are present
// and performs the handshakes both require. The daemon cannot function
// without either, so any failure here is fatal to startup.
func (c *Conn) Negotiate() error {
	inputExt, err := x.QueryExtension(c.conn, inputExtName).Reply(c.conn)
	if err != nil {
		return fmt.Errorf("cannot query XInput: %w", err)
	}
	if !inputExt.Present {
		return errors.New("server does not support XInput")
	}
	c.inputOpcode = inputExt.MajorOpcode
	if _, err := input.XIQueryVersion(c.conn, xi2MajorVersion, xi2MinorVersion).Reply(c.conn); err != nil {
		return fmt.Errorf("cannot negotiate XInput %d.%d: %w", xi2MajorVersion, xi2MinorVersion, err)
	}

	xkbExt, err := x.QueryExtension(c.conn, xkbExtName).Reply(c.conn)
	if err != nil {
		return fmt.Errorf("cannot query XKB: %w", err)
	}
	if !xkbExt.Present {
		return errors.New("server does not support XKB")
	}
	// XKB answers every request with an Access error until UseExtension
	// has completed.
	if _, err := xkb.UseExtension(c.conn, xkbMajorVersion, xkbMinorVersion).Reply(c.conn); err != nil {
		return fmt.Errorf("cannot use XKB: %w", err)
	}

	return nil
}

// SelectHierarchyEvents subscribes the root window to device hierarchy
// change notifications for all devices. The selection is write-only:
// it is flushed but not awaited, so a failed selection surfaces only
// as missing events.
func (c *Conn) SelectHierarchyEvents() {
	masks := []input.EventMask{{
		DeviceId: input.DeviceAll,
		Mask:     []uint32{input.XIEventMaskHierarchy},
	}}
	input.XISelectEvents(c.conn, c.root, masks)
	c.conn.Flush()
}

// WaitEvent blocks until the next inbound event arrives and decodes it
// at the protocol boundary. ok is false once the server has closed the
// connection or the stream is otherwise unreadable, which is the
// daemon's only shutdown path.
func (c *Conn) WaitEvent() (Event, bool) {
	ev, ok := <-c.events
	if !ok {
		return nil, false
	}
	return decodeEvent(ev, c.inputOpcode), true
}

// Close flushes pending requests and drops the connection.
func (c *Conn) Close() {
	c.conn.Flush()
	c.conn.Close()
}
