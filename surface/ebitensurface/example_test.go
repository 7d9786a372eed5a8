package ebitensurface_test

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gridfx/animator"
	"github.com/plus3/gridfx/frame"
	"github.com/plus3/gridfx/surface/ebitensurface"
)

// Game draws the grid behind the rest of its content.
type Game struct {
	anim    *animator.Animator
	surface *ebitensurface.Surface
	queue   *frame.Queue
	sizes   *animator.Broadcaster
	start   time.Time
}

func (g *Game) Update() error {
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 23, 42, 255})

	// Run the animator's frame, then place the layer behind everything else
	g.queue.Run(time.Since(g.start))
	g.surface.Composite(screen)

	// Draw foreground content
	// ...
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Resizes notify the animator, which rebuilds the grid
	g.sizes.Set(outsideWidth, outsideHeight)
	if !g.anim.Active() {
		g.anim.Activate()
	}
	return outsideWidth, outsideHeight
}

func Example() {
	surface := ebitensurface.New(ebitensurface.DefaultOpacity)
	queue := frame.NewQueue()
	sizes := animator.NewBroadcaster(1280, 720)

	game := &Game{
		anim:    animator.New(surface, queue, sizes),
		surface: surface,
		queue:   queue,
		sizes:   sizes,
		start:   time.Now(),
	}

	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
