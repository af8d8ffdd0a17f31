package service

// Broadcaster pushes dashboard refresh events to connected managers (avoids
// import cycle with the ws package)
type Broadcaster interface {
	BroadcastDashboard(event string, payload interface{})
}
