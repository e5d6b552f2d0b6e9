package adorn

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, the adorners,
// input state and render buffers.
type Scene struct {
	root   *Node
	debug  bool
	logger *zap.Logger

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	adorners []*Adorner
	layers   []*AdornerLayer

	// Render state
	commands []RenderCommand
	pixel    *ebiten.Image

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	pathBuf     []*Node
	injectQueue []syntheticPointerEvent

	testRunner      *TestRunner
	screenshotQueue []string
	updateFunc      func() error
}

// NewScene creates a new scene with a root container. The root carries an
// adorner layer, so adorners on any node in the tree have a surface.
func NewScene() *Scene {
	root := NewContainer("root")
	s := &Scene{
		root:          root,
		logger:        zap.NewNop(),
		ScreenshotDir: "screenshots",
		commands:      make([]RenderCommand, 0, defaultCommandCap),
	}
	s.trackLayer(NewAdornerLayer(root))
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger sets the logger used for adorner lifecycle and debug output.
// A nil logger disables logging.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.logger = l
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// SetUpdateFunc sets a callback run once per frame by Run, after the scene
// has been updated. A non-nil error ends the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update processes input, then advances adorner fades and timers and
// re-arranges attached overlays. Call it once per frame (Run does).
func (s *Scene) Update() {
	s.tick(float32(1.0/float64(ebiten.TPS())), true)
}

// tick is one frame of Update. readDevices selects whether real mouse input
// is read when no injected event is pending.
func (s *Scene) tick(dt float32, readDevices bool) {
	// Hit testing needs this frame's transforms.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() && readDevices {
		s.processMouse()
	}
	s.step(dt)
}

// step advances adorners by dt and lays out every tracked layer.
func (s *Scene) step(dt float32) {
	// Adorners may be disposed by their own callbacks.
	for i := 0; i < len(s.adorners); i++ {
		s.adorners[i].Update(dt)
	}

	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.syncLayers()
	updateWorldTransform(s.root, identityTransform, 1.0, false)
}

// syncLayers positions the wrappers of every live layer and drops layers
// whose owner has been disposed.
func (s *Scene) syncLayers() {
	live := s.layers[:0]
	for _, l := range s.layers {
		if l.owner.IsDisposed() {
			continue
		}
		l.sync()
		live = append(live, l)
	}
	for i := len(live); i < len(s.layers); i++ {
		s.layers[i] = nil
	}
	s.layers = live
}

// trackLayer makes sure l is synced every frame.
func (s *Scene) trackLayer(l *AdornerLayer) {
	for _, x := range s.layers {
		if x == l {
			return
		}
	}
	s.layers = append(s.layers, l)
}

// --- Adorner registry ---

func (s *Scene) addAdorner(a *Adorner) {
	s.adorners = append(s.adorners, a)
}

func (s *Scene) removeAdorner(a *Adorner) {
	for i, x := range s.adorners {
		if x == a {
			copy(s.adorners[i:], s.adorners[i+1:])
			s.adorners[len(s.adorners)-1] = nil
			s.adorners = s.adorners[:len(s.adorners)-1]
			return
		}
	}
}

// Adorners returns the scene's adorners in creation order. The returned
// slice MUST NOT be mutated.
func (s *Scene) Adorners() []*Adorner {
	return s.adorners
}

// Adorner returns the first adorner with the given name, or nil.
func (s *Scene) Adorner(name string) *Adorner {
	for _, a := range s.adorners {
		if a.name == name {
			return a
		}
	}
	return nil
}

// Execute runs cmd on the named adorner.
func (s *Scene) Execute(name string, cmd Command) error {
	a := s.Adorner(name)
	if a == nil {
		return fmt.Errorf("adorn: no adorner named %q", name)
	}
	return a.Execute(cmd)
}

// ApplyConfigFile applies each entry of f to the adorner of the same name.
// Entries naming no adorner are logged and skipped. Errors from individual
// adorners are combined.
func (s *Scene) ApplyConfigFile(f ConfigFile) error {
	var err error
	for _, name := range f.Names() {
		cfg := f.Adorners[name]
		a := s.Adorner(name)
		if a == nil {
			s.logger.Warn("config for unknown adorner", zap.String("name", name))
			continue
		}
		err = multierr.Append(err, a.SetConfig(cfg))
	}
	if err == nil {
		s.logger.Info("config applied", zap.Int("adorners", len(f.Adorners)))
	}
	return err
}

// --- Debug ---

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame draw stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	debugLogger = s.logger
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
