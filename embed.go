package ogengine

import "embed"

// EmbeddedAssets contains files served when the static dir has no copy of
// its own: robots.txt.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
