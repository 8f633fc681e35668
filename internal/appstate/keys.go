package appstate

import (
	"golang.org/x/mobile/event/key"

	"github.com/example/shineycrop/internal/crop"
)

// KeyShortcut describes a key combination.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// action is what a shortcut asks the editor to do.
type action int

const (
	actionNone action = iota
	// actionConfirm previews in editing mode and accepts in preview mode.
	actionConfirm
	// actionCommit skips the preview and finishes immediately.
	actionCommit
	// actionBack discards a preview, or cancels the session while editing.
	actionBack
	actionShape
	actionAspect
	actionCopy
	actionPaste
	actionQuit
)

var actionNames = map[action]string{
	actionConfirm: "confirm",
	actionCommit:  "commit",
	actionBack:    "back",
	actionShape:   "shape",
	actionAspect:  "aspect",
	actionCopy:    "copy",
	actionPaste:   "paste",
	actionQuit:    "quit",
}

func (a action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "none"
}

type binding struct {
	KeyShortcut
	action action
	// preset indexes crop.Presets for actionAspect.
	preset int
}

func presetBindings() []binding {
	var bs []binding
	for i := range crop.Presets {
		if i > 8 {
			break
		}
		bs = append(bs, binding{KeyShortcut{Rune: rune('1' + i)}, actionAspect, i})
	}
	return bs
}

var bindings = append([]binding{
	{KeyShortcut{Code: key.CodeReturnEnter, Modifiers: key.ModControl}, actionCommit, 0},
	{KeyShortcut{Code: key.CodeReturnEnter}, actionConfirm, 0},
	{KeyShortcut{Code: key.CodeKeypadEnter}, actionConfirm, 0},
	{KeyShortcut{Code: key.CodeEscape}, actionBack, 0},
	{KeyShortcut{Code: key.CodeDeleteBackspace}, actionBack, 0},
	{KeyShortcut{Rune: 's'}, actionShape, 0},
	{KeyShortcut{Rune: 'c', Modifiers: key.ModControl}, actionCopy, 0},
	{KeyShortcut{Rune: 'v', Modifiers: key.ModControl}, actionPaste, 0},
	{KeyShortcut{Rune: 'q'}, actionQuit, 0},
}, presetBindings()...)

// lookup maps a key press to its binding. Releases and unbound keys return
// actionNone.
func lookup(e key.Event) binding {
	if e.Direction == key.DirRelease {
		return binding{}
	}
	mods := e.Modifiers &^ key.ModShift
	for _, b := range bindings {
		if b.Modifiers != mods {
			continue
		}
		if b.Rune != 0 && b.Rune == e.Rune {
			return b
		}
		if b.Code != key.CodeUnknown && b.Code == e.Code {
			return b
		}
	}
	return binding{}
}
