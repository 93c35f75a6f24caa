package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// bursts of identical read requests. Using a centralized
// singleflight.Group ensures that only one loader runs for a given key
// while other callers wait for the result.

import "golang.org/x/sync/singleflight"

// BattleGroup deduplicates concurrent battle reads keyed by battle UUID.
// Spectators polling the same battle share a single repository lookup.
var BattleGroup singleflight.Group

// LeaderboardGroup deduplicates concurrent leaderboard reads keyed by
// the requested limit.
var LeaderboardGroup singleflight.Group
