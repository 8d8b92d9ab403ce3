package inkview

// GetPanelType returns the current status panel flags. A native value
// outside the known flag bits is reported as *FlagRangeError.
func GetPanelType() (PanelType, error) {
	return PanelTypeFromInt32(nativePanelType())
}

// SetPanelType shows, hides or configures the status panel.
func SetPanelType(t PanelType) {
	setNativePanelType(int32(t))
}
