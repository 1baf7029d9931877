package game

// DebugState holds global debug flags that persist across level changes
type DebugState struct {
	ShowSamples bool // Draw every floor sample, green when covered
}

var globalDebugState = &DebugState{
	ShowSamples: false,
}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
