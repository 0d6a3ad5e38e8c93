package version

// Version is the release version of the engine, set at build time.
var Version = "0.3.1"
