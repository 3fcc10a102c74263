package version

// Version is stamped at build time via -ldflags; the default marks dev builds.
var Version = "0.0.0-dev"
