package types

// Vec3 is a world-space position on the wire.
type Vec3 struct {
	// example: 2
	X float64 `json:"x" example:"2"`
	// example: 0
	Y float64 `json:"y" example:"0"`
	// example: 0
	Z float64 `json:"z" example:"0"`
}

// SatelliteStatus describes the patrolling satellite.
type SatelliteStatus struct {
	// Identifier of the live satellite.
	// example: satellite
	ID       string `json:"id" example:"satellite"`
	Position Vec3   `json:"position"`
	// Current travel direction (left or right).
	// example: left
	Direction string `json:"direction" example:"left"`
	// Patrol state name.
	// example: patrolling_left
	State string `json:"state" example:"patrolling_left"`
	// Number of boundary bounces so far.
	// example: 3
	Flips int `json:"flips" example:"3"`
	// Number of ticks on which the target was detected.
	// example: 12
	Detections int `json:"detections" example:"12"`
	// Whether the satellite is inside the view region.
	// example: true
	Visible bool `json:"visible" example:"true"`
}

// ScoutStatus describes one scout.
type ScoutStatus struct {
	// example: scout
	ID       string `json:"id" example:"scout"`
	Position Vec3   `json:"position"`
	// Last reported target position, absent before the first report.
	Target *Vec3 `json:"target,omitempty"`
	// Number of target reports handled.
	// example: 5
	Received int `json:"received" example:"5"`
}

// ArmyStatus describes the player-controlled unit.
type ArmyStatus struct {
	// example: army
	ID       string `json:"id" example:"army"`
	Position Vec3   `json:"position"`
	// Current input vector.
	Movement [2]float64 `json:"movement"`
}
