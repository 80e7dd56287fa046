package main

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/scenecore/ecs"
	"github.com/milk9111/scenecore/ecs/component"
	"github.com/milk9111/scenecore/ecs/render"
	"github.com/milk9111/scenecore/ecs/system"
	"github.com/milk9111/scenecore/levels"
	"github.com/milk9111/scenecore/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Config struct {
	Level     string
	Slots     uint32
	Alignment uint32
	Drop      bool
	Watch     bool
	Debug     bool
	Logger    *slog.Logger
}

type Game struct {
	cfg    Config
	log    *slog.Logger
	frames int

	res      *render.Resources
	lib      *prefabs.Library
	watcher  *prefabs.Watcher
	device   *render.MemoryDevice
	packer   *render.Packer
	renderer *Renderer
	input    *Input

	scene      *ecs.Scene
	scheduler  *ecs.Scheduler
	transforms *system.TransformSystem

	last     render.Result
	detached int
}

func NewGame(cfg Config) (*Game, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	g := &Game{cfg: cfg, log: cfg.Logger, input: NewInput()}

	g.res = render.NewResources()
	render.RegisterBuiltins(g.res)
	g.lib = prefabs.NewLibrary(g.res, prefabs.WithLibraryLogger(g.log))

	g.device = render.NewMemoryDevice(cfg.Alignment, cfg.Slots)
	g.renderer = NewRenderer(g.device, g.res)
	policy := render.OverflowFlush
	if cfg.Drop {
		policy = render.OverflowDrop
	}
	packer, err := render.NewPacker(g.device, g.res,
		render.WithOverflowPolicy(policy),
		render.WithFlush(g.renderer.Collect),
		render.WithPackerLogger(g.log),
	)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	g.packer = packer

	if err := g.loadLevel(); err != nil {
		return nil, err
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "levels")
		if err != nil {
			g.log.Warn("viewer: hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) loadLevel() error {
	m, err := levels.LoadMap(g.cfg.Level)
	if err != nil {
		return fmt.Errorf("viewer: level %s: %w", g.cfg.Level, err)
	}
	scene := ecs.NewScene()
	if _, err := levels.Instantiate(scene, m, g.lib); err != nil {
		return fmt.Errorf("viewer: level %s: %w", g.cfg.Level, err)
	}

	g.scene = scene
	g.transforms = system.NewTransformSystem(system.WithLogger(g.log))
	g.scheduler = ecs.NewScheduler(
		system.NewPlayerSystem(),
		system.NewScriptSystem(1.0/float64(ebiten.TPS()), g.log),
		g.transforms,
		system.NewCameraSystem(baseWidth, baseHeight),
	)
	if cam, ok := scene.First(component.CameraTagComponent); ok {
		g.packer.SetCamera(cam)
	} else {
		g.packer.SetCamera(0)
	}
	g.log.Info("viewer: level loaded", "level", g.cfg.Level, "entities", scene.Len())
	return nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	for _, path := range changed {
		g.lib.Invalidate(path)
	}
	if err := g.loadLevel(); err != nil {
		g.log.Error("viewer: reload failed, keeping previous scene", "err", err)
	}
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.reload()

	g.input.Update(g.scene)
	g.scheduler.Update(g.scene)

	for _, evt := range g.scene.Events().Drain() {
		if evt.Type == ecs.EventTransformDetached {
			g.detached++
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Begin(screen.Bounds().Dx(), screen.Bounds().Dy())
	res, err := g.packer.Pack(g.scene)
	if err != nil {
		g.log.Error("viewer: pack failed", "err", err)
	}
	g.last = res
	g.renderer.Draw(screen)

	if g.cfg.Debug {
		stats := g.transforms.Stats()
		msg := fmt.Sprintf("FPS: %.2f  entities: %d  draws: %d  batches: %d  skipped: %d  dropped: %d\ndetached: %d (cycles %d, missing %d, depth %d)",
			ebiten.ActualFPS(), g.scene.Len(), len(res.Draws()), len(res.Batches), res.Skipped, res.Dropped,
			g.detached, stats.Cycles, stats.MissingParents, stats.DepthExceeded)
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
