package waypost

import "embed"

// EmbeddedAssets contains the client script shipped with the engine:
// engagement.js (likes, comments, reports, newsletter).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
