package daemon

import (
	"log/slog"

	"xrepeatd/internal/x11"
)

// Session is the subset of the X connection the reconciliation loop
// needs. It is satisfied by *x11.Conn and by fakes in tests.
type Session interface {
	SetRepeat(rate, delay uint16) error
	WaitEvent() (x11.Event, bool)
}

// Daemon reapplies the configured key repeat settings whenever a new
// input device joins the hierarchy. The X server does not carry repeat
// settings over to hot-plugged keyboards, so they have to be pushed
// again on every addition.
type Daemon struct {
	session Session
	rate    uint16
	delay   uint16
	logger  *slog.Logger
}

// New creates a daemon bound to an established session. rate and delay
// are fixed for the lifetime of the daemon.
func New(session Session, rate, delay uint16, logger *slog.Logger) *Daemon {
	return &Daemon{
		session: session,
		rate:    rate,
		delay:   delay,
		logger:  logger,
	}
}

// Run applies the repeat settings once for the keyboards already
// present, then blocks waiting for device additions and reapplies on
// each one. Apply failures are logged and never stop the loop; each
// hierarchy event is handled independently. Run returns when the
// server closes the connection.
func (d *Daemon) Run() {
	d.apply()

	for {
		ev, ok := d.session.WaitEvent()
		if !ok {
			d.logger.Info("event stream closed, shutting down")
			return
		}
		if x11.NeedsReapply(ev) {
			d.logger.Info("input device added, reapplying repeat settings",
				"rate", d.rate, "delay", d.delay)
			d.apply()
		}
	}
}

func (d *Daemon) apply() {
	if err := d.session.SetRepeat(d.rate, d.delay); err != nil {
		d.logger.Error("cannot apply repeat settings", "error", err)
	}
}
