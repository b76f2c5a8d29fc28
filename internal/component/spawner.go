package component

import "github.com/antitower/server/internal/core/timer"

// Name is a display label.
type Name struct {
	Value string
}

// Sprite names the texture the renderer should draw for the entity.
type Sprite struct {
	Texture string
}

type Player struct {
	Speed float64
}

// Tower spawns footmen on a repeating timer.
type Tower struct {
	Rate *timer.Timer
}

// BubbleSpawner spawns bubbles on a repeating timer.
type BubbleSpawner struct {
	Rate *timer.Timer
}

// Bubble drifts in a circle at Speed radians per second.
type Bubble struct {
	Speed float64
}

// Harvester accumulates mana that the player drains when nearby.
type Harvester struct {
	Stored         float64
	GenerationRate float64
	Max            float64
}

// Lifetime removes the entity when the one-shot timer finishes,
// regardless of health.
type Lifetime struct {
	Timer *timer.Timer
}

// Potion pays out Value mana when its lifetime ends.
type Potion struct {
	Value float64
}

// PotionShelf parents brewing potions.
type PotionShelf struct{}
