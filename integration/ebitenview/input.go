// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/mandel"
)

// Key repeat timing in ticks, close to a desktop keyboard's auto-repeat.
const (
	repeatDelay    = 24
	repeatInterval = 3
)

// panKeys maps ebiten keys to pan directions. WASD mirrors the arrows.
var panKeys = []struct {
	key ebiten.Key
	dir mandel.Key
}{
	{ebiten.KeyArrowLeft, mandel.KeyLeft},
	{ebiten.KeyArrowRight, mandel.KeyRight},
	{ebiten.KeyArrowUp, mandel.KeyUp},
	{ebiten.KeyArrowDown, mandel.KeyDown},
	{ebiten.KeyA, mandel.KeyLeft},
	{ebiten.KeyD, mandel.KeyRight},
	{ebiten.KeyW, mandel.KeyUp},
	{ebiten.KeyS, mandel.KeyDown},
}

// inputState is one tick of raw input.
type inputState struct {
	wheelY         float64
	cursorX        int
	cursorY        int
	keys           []mandel.Key
	closeRequested bool
}

// events converts a tick of input into engine events. Close comes last so
// that input from the same tick is still applied.
func (s inputState) events() []mandel.Event {
	var events []mandel.Event
	if s.wheelY != 0 {
		events = append(events, mandel.MouseScrolled{
			Delta: s.wheelY,
			X:     float64(s.cursorX),
			Y:     float64(s.cursorY),
		})
	}
	for _, k := range s.keys {
		events = append(events, mandel.KeyPressed{Key: k})
	}
	if s.closeRequested {
		events = append(events, mandel.Closed{})
	}
	return events
}

// repeats reports whether a key held for the given number of ticks fires
// this tick.
func repeats(ticks int) bool {
	if ticks == 1 {
		return true
	}
	return ticks >= repeatDelay && (ticks-repeatDelay)%repeatInterval == 0
}

// pollInput reads ebiten's input state for the current tick.
func pollInput() inputState {
	_, wy := ebiten.Wheel()
	cx, cy := ebiten.CursorPosition()
	s := inputState{
		wheelY:         wy,
		cursorX:        cx,
		cursorY:        cy,
		closeRequested: ebiten.IsWindowBeingClosed(),
	}
	for _, pk := range panKeys {
		if repeats(inpututil.KeyPressDuration(pk.key)) {
			s.keys = append(s.keys, pk.dir)
		}
	}
	return s
}
