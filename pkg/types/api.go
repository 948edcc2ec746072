package types

// InputRequest sets the army unit's movement vector.
type InputRequest struct {
	// Horizontal input axis in [-1,1].
	// example: 1
	X float64 `json:"x" example:"1"`
	// Vertical input axis in [-1,1].
	// example: 0
	Y float64 `json:"y" example:"0"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Name of the loaded scene; empty if none is loaded.
	// example: main
	Scene string `json:"scene" example:"main"`
	// Ticks simulated in the current scene.
	// example: 600
	Ticks uint64 `json:"ticks" example:"600"`
	// Scene transitions performed since start.
	// example: 1
	Transitions int `json:"transitions" example:"1"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64            `json:"server_time_unix" example:"1700000000"`
	Satellite      *SatelliteStatus `json:"satellite,omitempty"`
	Scouts         []ScoutStatus    `json:"scouts"`
	Army           *ArmyStatus      `json:"army,omitempty"`
	// Last error observed by the scene host (if any).
	LastError string `json:"last_error,omitempty"`
}

// SubscribersResponse is returned by GET /subscribers: registrations per
// event kind.
type SubscribersResponse struct {
	Kinds map[string]int `json:"kinds"`
}

// ReloadResponse is returned by POST /scene/reload.
type ReloadResponse struct {
	// Scene now loaded.
	// example: main
	Scene string `json:"scene" example:"main"`
	// Dead subscriptions removed during the transition.
	// example: 1
	Purged int `json:"purged" example:"1"`
}
