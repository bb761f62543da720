package service

// Broadcaster pushes session-scoped events to connected clients. A nil
// broadcaster is valid and means no live delivery.
type Broadcaster interface {
	Emit(sessionID, event string, payload interface{})
}
