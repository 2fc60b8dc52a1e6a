// Package version holds the application version, overridden at build time with
// -ldflags "-X github.com/ndewijer/Budget-Projection-Backend/internal/version.Version=...".
package version

// Version is the application version.
var Version = "dev"
