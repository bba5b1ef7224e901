package version

// Version is overridden at link time with -ldflags "-X blastseed/internal/version.Version=...".
var Version = "0.1.0-dev"
