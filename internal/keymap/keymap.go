// Package keymap defines the preview key bindings and resolves keys to actions.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// Action represents a user-triggerable preview action.
type Action string

const (
	ActionPlayPause Action = "play_pause"
	ActionRestart   Action = "restart"
	ActionNext      Action = "next"
	ActionPrevious  Action = "previous"
	ActionJump      Action = "jump" // digit keys, 1-based step
	ActionMute      Action = "mute"
	ActionQuit      Action = "quit"
	ActionHelp      Action = "help"
)

// Binding ties keys to an action with a short description for help.
type Binding struct {
	Action      Action
	Keys        []string
	HelpKey     string
	Description string
}

// All contains every preview binding, in help display order.
var All = []Binding{
	{ActionPlayPause, []string{" ", "space"}, "space", "play/pause"},
	{ActionRestart, []string{"r"}, "r", "restart"},
	{ActionPrevious, []string{"left", "h"}, "←", "previous"},
	{ActionNext, []string{"right", "l"}, "→", "next"},
	{ActionJump, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "1-9", "jump to step"},
	{ActionMute, []string{"m"}, "m", "mute"},
	{ActionHelp, []string{"?"}, "?", "help"},
	{ActionQuit, []string{"q", "ctrl+c", "esc"}, "q", "quit"},
}

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action
	byAction map[Action][]string
}

// NewResolver creates a resolver from bindings. Later bindings win when two
// bindings claim the same key.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.bindings[k] = b.Action
		}
		r.byAction[b.Action] = dedupe(append(r.byAction[b.Action], b.Keys...))
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(k string) Action {
	return r.bindings[k]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// JumpIndex converts a digit key to a zero-based step index.
func JumpIndex(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return 0, false
	}
	return int(k[0] - '1'), true
}

// HelpBindings converts bindings to bubbles key bindings for the help view.
func HelpBindings(bindings []Binding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(b.HelpKey, b.Description),
		))
	}
	return out
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
