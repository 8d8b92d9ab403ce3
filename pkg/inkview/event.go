package inkview

// IsKey reports whether e is a key press, release or repeat.
func (e Event) IsKey() bool {
	switch e {
	case EventKeypress, EventKeyrelease, EventKeyrepeat:
		return true
	}
	return false
}

// IsPointer reports whether e comes from the touch screen.
func (e Event) IsPointer() bool {
	switch e {
	case EventPointerup, EventPointerdown, EventPointermove,
		EventPointerlong, EventPointerhold, EventMtsync,
		EventPointerdrag, EventPointercancel:
		return true
	}
	return false
}

// IsPanel reports whether e was raised by the status panel.
func (e Event) IsPanel() bool {
	switch e {
	case EventTab, EventPanel, EventPanelIcon, EventPanelText,
		EventPanelProgress, EventPanelMplayer, EventPanelUsbdrive,
		EventPanelNetwork, EventPanelClock, EventPanelBluetooth,
		EventPanelTasklist, EventPanelObreeySync,
		EventPanelSetreadingmode, EventPanelSetreadingmodeInvert:
		return true
	}
	return false
}
