package main

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gridfx/animator"
	"github.com/plus3/gridfx/config"
	"github.com/plus3/gridfx/debugui"
	debugui_ebiten "github.com/plus3/gridfx/debugui/ebiten"
	"github.com/plus3/gridfx/frame"
	"github.com/plus3/gridfx/surface/ebitensurface"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var debugPanel bool

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Animate the grid in a desktop window",
	Long: `Opens a resizable window and animates the grid behind it. The grid is
rebuilt whenever the window changes size. Press Q or Esc to quit.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&debugPanel, "debug", false, "show the ImGui statistics panel")
}

var pageBackground = color.RGBA{15, 23, 42, 255}

// windowGame hosts one animator in the ebiten loop. ebiten calls Layout,
// Update and Draw on one goroutine, which is the animator's host loop.
type windowGame struct {
	anim    *animator.Animator
	surface *ebitensurface.Surface
	queue   *frame.Queue
	sizes   *animator.Broadcaster
	overlay *debugui_ebiten.Overlay
	reloads <-chan *config.Config
	done    <-chan struct{}
	start   time.Time
}

func (g *windowGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	select {
	case cfg := <-g.reloads:
		if err := g.anim.SetParams(cfg.Params()); err != nil {
			logger.Warn("config rejected", zap.Error(err))
			break
		}
		g.surface.SetOpacity(cfg.Opacity)
	default:
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground)

	g.queue.Run(time.Since(g.start))
	g.surface.Composite(screen)

	if g.overlay != nil {
		g.overlay.DrawOver(screen)
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Resize(outsideWidth, outsideHeight)
	}

	g.sizes.Set(outsideWidth, outsideHeight)
	if !g.anim.Active() {
		g.anim.Activate()
	}
	return outsideWidth, outsideHeight
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	reloads, stopWatch, err := startWatch(ctx)
	if err != nil {
		return err
	}
	defer stopWatch()

	surface := ebitensurface.New(cfg.Opacity)
	queue := frame.NewQueue()
	sizes := animator.NewBroadcaster(cfg.Window.Width, cfg.Window.Height)
	anim := animator.New(surface, queue, sizes,
		animator.WithLogger(logger),
		animator.WithParams(cfg.Params()),
		animator.WithSource(randomSource(cfg)),
	)

	game := &windowGame{
		anim:    anim,
		surface: surface,
		queue:   queue,
		sizes:   sizes,
		reloads: reloads,
		done:    ctx.Done(),
		start:   time.Now(),
	}

	if debugPanel {
		game.overlay = debugui_ebiten.NewOverlay(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height,
			debugui.NewPanel(anim, 120))
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("opening window",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Bool("debug", debugPanel))

	err = ebiten.RunGame(game)

	anim.Deactivate()
	surface.Dispose()
	return err
}
