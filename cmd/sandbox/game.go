package main

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/config"
	"github.com/milk9111/patrolai/player"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/milk9111/patrolai/sfx"
	"github.com/milk9111/patrolai/sfx/bank"
	"github.com/milk9111/patrolai/system"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	tileSize     = 32

	// enemies closer than this get the debug overlay
	debugRange = 20
)

type Game struct {
	world   *system.World
	watcher *prefabs.Watcher
	camera  cp.Vector
	frames  int
	log     *logrus.Entry
}

func NewGame(cfg *config.Config, log *logrus.Logger) (*Game, error) {
	prefabs.DiskDir = cfg.Prefabs.Dir
	g := &Game{log: logrus.NewEntry(log)}

	var sound sfx.Player = sfx.Nop{}
	if cfg.Audio.Enabled {
		b := bank.New(cfg.Audio.SampleRate)
		b.Listener = g.listener
		sound = b
	}

	world, err := system.NewWorld(cfg.Sim.Level, system.Options{
		Rand:  common.NewRand(cfg.Sim.Seed),
		Sound: sound,
		Log:   g.log,
	})
	if err != nil {
		return nil, err
	}
	g.world = world
	if world.Player != nil {
		g.camera = world.Player.Position()
	}

	if cfg.Prefabs.Watch && cfg.Prefabs.Dir != "" {
		w, err := prefabs.NewWatcher(cfg.Prefabs.Dir, filepath.Join(cfg.Prefabs.Dir, "scripts"))
		if err != nil {
			g.log.WithError(err).Warn("sandbox: prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) listener() cp.Vector {
	return g.camera
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.reload()

	if p := g.world.Player; p != nil {
		p.Input = readInput()
		g.camera = g.camera.Lerp(p.Position(), 0.1)
	}
	g.world.Update()
	return nil
}

func (g *Game) reload() {
	if g.watcher != nil {
		for _, c := range g.watcher.Drain() {
			if err := g.world.Reload(c); err != nil {
				g.log.WithError(err).WithField("path", c.Path).Error("sandbox: reload failed")
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		err := g.world.Reload(prefabs.Change{Kind: prefabs.ChangeFSM, Path: "manual"})
		if err != nil {
			g.log.WithError(err).Error("sandbox: restart failed")
		}
	}
}

func readInput() player.Input {
	in := player.Input{
		Jump:  ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Shoot: ebiten.IsKeyPressed(ebiten.KeyZ),
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveX++
	}
	return in
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	c := &screenCanvas{screen: screen, camera: g.camera, scale: tileSize}

	g.drawTiles(c)
	g.world.Render(c)

	msg := fmt.Sprintf("FPS: %.1f  score: %d  enemies: %d", ebiten.ActualFPS(), g.world.Score.Value, len(g.world.Enemies))
	if p := g.world.Player; p != nil {
		msg += fmt.Sprintf("\nplayer: %s  health: %d", p.State(), p.Health.Current)
		if p.IsDead() {
			msg += "  (dead, R to restart)"
		}
	}
	if e, d := g.world.ClosestEnemy(debugRange); e != nil {
		c.StrokeRect(e.Body.Pos, e.Body.Size.Mult(1.4), colornames.Yellow)
		msg += fmt.Sprintf("\nclosest: %s [%s] state=%s dist=%.1f stall=%d hp=%d",
			e.ID.String()[:8], e.Variant.Name(), e.State(), d, e.Stall.Count, e.Health.Current)
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) drawTiles(c *screenCanvas) {
	lvl := g.world.Level
	size := cp.Vector{X: 1, Y: 1}
	for row := 0; row < lvl.Height; row++ {
		for col := 0; col < lvl.Width; col++ {
			if !lvl.Solid(col, row) {
				continue
			}
			x, y := lvl.WorldPos(col, row)
			c.FillRect(cp.Vector{X: x, Y: y}, size, colornames.Slategray)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
