// Command simbench runs the simulation headless with a crowded arena and
// reports tick throughput.
//
//	go build ./cmd/simbench
//	./simbench -footmen 400 -bubbles 400 -ticks 3000 -profile cpu
//	go tool pprof -http=":8000" ./simbench cpu.pprof
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/antitower/server/internal/component"
	"github.com/antitower/server/internal/config"
	"github.com/antitower/server/internal/data"
	"github.com/antitower/server/internal/system"
	"github.com/antitower/server/internal/vmath"
	"github.com/antitower/server/internal/world"
)

func main() {
	var (
		footmen = flag.Int("footmen", 200, "footmen placed in a ring around the harvesters")
		bubbles = flag.Int("bubbles", 200, "bubbles placed inside the ring")
		ticks   = flag.Int("ticks", 3000, "ticks to simulate")
		cell    = flag.Float64("cell", 128, "broad-phase cell size, 0 = brute force")
		mode    = flag.String("profile", "", `"cpu", "mem" or empty`)
	)
	flag.Parse()

	if err := run(*footmen, *bubbles, *ticks, *cell, *mode); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(footmen, bubbles, ticks int, cell float64, mode string) error {
	switch mode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", mode)
	}

	cfg := config.Defaults()
	cfg.Simulation.BroadphaseCell = cell
	cfg.Simulation.MaxEntities = 0
	if err := cfg.Validate(); err != nil {
		return err
	}

	ws := world.NewState(data.DefaultArchetypes(), world.NewSettings(cfg), zap.NewNop())
	populate(ws, footmen, bubbles)
	runner := system.NewPipeline(ws, system.Options{})

	dt := cfg.Simulation.TickRate
	start := time.Now()
	for range ticks {
		runner.Tick(dt)
	}
	wall := time.Since(start)

	fmt.Printf("ticks        %d\n", ticks)
	fmt.Printf("entities     %d (start %d)\n", ws.EntityCount(), footmen+bubbles)
	fmt.Printf("wall         %s\n", wall.Round(time.Millisecond))
	fmt.Printf("per tick     %s\n", (wall / time.Duration(max(1, ticks))).Round(time.Microsecond))
	fmt.Printf("sim/wall     %.1fx\n", (time.Duration(ticks) * dt).Seconds()/wall.Seconds())
	return nil
}

// populate lays out towers on the east edge, harvesters at the centre,
// footmen on a ring and bubbles scattered inside it.
func populate(ws *world.State, footmen, bubbles int) {
	ws.Spawn(component.KindPlayer, vmath.V3(0, 0, 0))
	for i := range 4 {
		ws.Spawn(component.KindTower, vmath.V3(900, float64(i-2)*300, 0))
		ws.Spawn(component.KindHarvester, vmath.V3(float64(i%2)*120-60, float64(i/2)*120-60, 0))
	}
	for i := range footmen {
		a := 2 * math.Pi * float64(i) / float64(max(1, footmen))
		ws.Spawn(component.KindFootman, vmath.V3(600*math.Cos(a), 600*math.Sin(a), 0))
	}
	for i := range bubbles {
		a := 2 * math.Pi * float64(i) / float64(max(1, bubbles))
		r := 150 + 250*float64(i%7)/7
		ws.Spawn(component.KindBubble, vmath.V3(r*math.Cos(a), r*math.Sin(a), 0))
	}
}
