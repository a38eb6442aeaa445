// Package feed turns a channel's post collection into an ordered sequence
// using the ranking engine.
package feed

import (
	"chatroom/internal/models"
	"chatroom/internal/observability"
	"chatroom/internal/ranking"
)

// Orchestrator is stateless glue between a post collection and the ranking
// engine. It holds only the currently selected mode and window, exposed for
// display purposes; every call to Sort recomputes from scratch.
type Orchestrator struct {
	mode   ranking.Mode
	window ranking.Window
}

// NewOrchestrator returns an Orchestrator with the given selection. Invalid
// values fall back to hot/day.
func NewOrchestrator(mode ranking.Mode, window ranking.Window) *Orchestrator {
	o := &Orchestrator{mode: ranking.ModeHot, window: ranking.WindowDay}
	o.SetMode(mode)
	o.SetWindow(window)
	return o
}

// Mode returns the currently selected sort mode.
func (o *Orchestrator) Mode() ranking.Mode {
	return o.mode
}

// Window returns the currently selected time window.
func (o *Orchestrator) Window() ranking.Window {
	return o.window
}

// SetMode selects a sort mode; unrecognized modes are ignored.
func (o *Orchestrator) SetMode(mode ranking.Mode) {
	if mode.Valid() {
		o.mode = mode
	}
}

// SetWindow selects a time window; unrecognized windows are ignored.
func (o *Orchestrator) SetWindow(window ranking.Window) {
	if window.Valid() {
		o.window = window
	}
}

// Sort returns a freshly ordered copy of posts for the current selection.
// The input is never mutated.
func (o *Orchestrator) Sort(posts []models.Post) []models.Post {
	defer observability.TrackSort(string(o.mode))()
	return ranking.SortPosts(posts, o.mode, o.window)
}
