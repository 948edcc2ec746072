// Package scene hosts the simulation: it builds a scene's entities from
// configuration, drives fixed-step ticks and performs scene transitions.
//
//   - scene.go: Scene, one loaded level (world, satellite, scouts, army).
//   - manager.go: Manager, the host. Owns the current scene, serializes
//     ticks with external input, and runs the lifecycle hook that purges
//     the event registry between scenes.
//   - run.go: Run, the ticker-driven update loop.
//   - metrics.go: Prometheus collectors for ticks and transitions.
//
// Inside a tick everything runs on one goroutine. Manager's mutex exists so
// the HTTP layer can read status and push input while the loop runs.
package scene
