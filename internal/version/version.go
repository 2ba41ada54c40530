// Package version exposes the application version string.
package version

// Version is the application version. It is overridden at build time via
// -ldflags "-X github.com/JakeFAU/nhl-stats-crawler/internal/version.Version=...".
var Version = "0.5.0"
