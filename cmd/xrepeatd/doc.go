/*
Xrepeatd keeps the keyboard key repeat rate and delay consistent
across all keyboards attached to an X display, including keyboards
plugged in while it runs. The X server applies repeat settings per
device and forgets them for new devices, so xrepeatd listens for
XInput device hierarchy changes and pushes its configured settings to
the core keyboard whenever a device is added, and once at startup.

	xrepeatd -r 70 -d 250

Rate is in repeats per second (1-1000, default 70), delay in
milliseconds before the first repeat (default 250). Both can also be
set in a YAML config file at ~/.config/xrepeatd/config.yaml, along
with the display to connect to:

	rate: 70
	delay: 250
	display: ":0"

xrepeatd runs in the foreground and exits when the server closes the
connection.
*/
package main
