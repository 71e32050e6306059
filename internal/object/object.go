// Package object holds the terminal renderables for the rings, projectiles,
// shooter and effects. Gameplay state lives in package game; objects here only
// read it.
package object

import (
	"time"

	"github.com/tomz197/ringblaster/internal/draw"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // Braille dots in field coordinates
	Screen *draw.Screen // Text, written after the canvas is rendered
}

// Object is anything that can be drawn on the playfield.
type Object interface {
	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Screen for text.
	Draw(ctx DrawContext) error
}

// Effect is a short-lived object that ages with wall-clock time.
type Effect interface {
	Object
	// Update ages the effect. Returns true if it should be removed.
	Update(dt time.Duration) (remove bool)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// UpdateEffects ages all effects, releasing and dropping finished ones.
// The backing array of effects is reused.
func UpdateEffects(effects []Effect, dt time.Duration) []Effect {
	kept := effects[:0]
	for _, e := range effects {
		if e.Update(dt) {
			ReleaseObject(e)
			continue
		}
		kept = append(kept, e)
	}
	clear(effects[len(kept):])
	return kept
}
