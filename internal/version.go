package internal

// Version is the subvocab release, overridden at build time via -ldflags
var Version = "0.1.0"
