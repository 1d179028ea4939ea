package ui

// Context brackets every layer's UI draw calls for one frame.
// Begin and End are called exactly once per rendered frame, on the main thread.
type Context interface {
	Begin()
	End()
}
