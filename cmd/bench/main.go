// Profiling:
// go build ./cmd/bench
// ./bench -mode cpu && go tool pprof -http=":8000" ./bench cpu.pprof

package main

import (
	"flag"
	"log"
	"time"

	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/render"
	"github.com/milk9111/scenecore/ecs/system"
	"github.com/milk9111/scenecore/prefabs"
	"github.com/pkg/profile"
)

func main() {
	mode := flag.String("mode", "cpu", "profile mode: cpu, mem or none")
	prefab := flag.String("prefab", "spinner.yaml", "prefab grafted into the scene")
	copies := flag.Int("copies", 2000, "number of grafted copies")
	depth := flag.Int("depth", 8, "copies per parent chain")
	frames := flag.Int("frames", 600, "frames to simulate")
	slots := flag.Uint("slots", 1024, "uniform slots per buffer")
	flag.Parse()

	res := render.NewResources()
	render.RegisterBuiltins(res)
	p, err := prefabs.NewLibrary(res).Get(*prefab)
	if err != nil {
		log.Fatal(err)
	}
	scene, err := buildScene(p, *copies, *depth)
	if err != nil {
		log.Fatal(err)
	}

	packer, err := render.NewPacker(render.NewMemoryDevice(256, uint32(*slots)), res)
	if err != nil {
		log.Fatal(err)
	}
	transforms := system.NewTransformSystem()
	scheduler := ecs.NewScheduler(system.NewScriptSystem(1.0/60.0, nil), transforms)

	var stop interface{ Stop() }
	switch *mode {
	case "cpu":
		stop = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		stop = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	}

	start := time.Now()
	var last render.Result
	for i := 0; i < *frames; i++ {
		scheduler.Update(scene)
		if last, err = packer.Pack(scene); err != nil {
			log.Fatal(err)
		}
	}
	elapsed := time.Since(start)

	if stop != nil {
		stop.Stop()
	}
	log.Printf("entities=%d frames=%d per_frame=%s draws=%d batches=%d detached=%d",
		scene.Len(), *frames, elapsed/time.Duration(max(*frames, 1)),
		len(last.Draws()), len(last.Batches), transforms.Stats().Detached())
}

// buildScene grafts copies of p, parenting each copy's root to the previous
// one in chains of depth copies.
func buildScene(p *ecs.Prefab, copies, depth int) (*ecs.Scene, error) {
	s := ecs.NewScene()
	var prev ecs.Entity
	for i := 0; i < copies; i++ {
		root, err := ecs.Graft(s, p)
		if err != nil {
			return nil, err
		}
		if depth > 1 && i%depth != 0 {
			t, _ := s.Transform(root)
			t.SetParent(prev)
		}
		prev = root
	}
	return s, nil
}
