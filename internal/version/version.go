// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Audio cues, .env configuration, event journal
// 0.2.0 - Solar systems, warp transition, bloom and twinkle
// 0.1.0 - Initial release: five galaxy archetypes, orbit camera, headless summary
