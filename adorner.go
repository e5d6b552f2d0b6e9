package adorn

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Adorner shows a content node over a host node. It owns the show / fade /
// hide lifecycle:
//
//	Hidden   --Show-->    Visible      (attached at opacity 1)
//	Hidden   --FadeIn-->  FadingIn     (attached at opacity 0, fading to 1)
//	FadingIn --done-->    Visible
//	Visible  --FadeOut--> FadingOut    (fading to 0 from the current opacity)
//	FadingOut--done-->    Hidden       (detached)
//	any      --Hide-->    Hidden
//
// Hovering the host or the content fades the adorner in; leaving starts the
// close timer, which fades it out when it fires. The content is attached to
// the layer exactly while the state is not Hidden.
//
// All methods must be called from the update thread.
type Adorner struct {
	// FadeEase is the easing used for fades. Defaults to ease.Linear.
	FadeEase ease.TweenFunc

	id      uuid.UUID
	name    string
	scene   *Scene
	host    *Node
	content *Node
	cfg     Config

	visible bool
	state   VisibilityState

	layer   *AdornerLayer
	wrapper *adornerWrapper
	fade    *TweenGroup

	closeTimer *Timer
	hover      *hoverCoordinator
	commands   map[Command]func() error
	disposed   bool
}

// NewAdorner creates an adorner for host and registers it with scene so it
// is updated every frame. The adorner is named after the host. Nothing is
// shown until content is set with SetContent.
func NewAdorner(scene *Scene, host *Node, cfg Config) *Adorner {
	a := &Adorner{
		id:       uuid.New(),
		name:     host.Name,
		scene:    scene,
		host:     host,
		cfg:      cfg.clone(),
		FadeEase: ease.Linear,
		visible:  cfg.Visible,
	}
	a.closeTimer = NewTimer(cfg.CloseDelayDuration(), a.closeTimerFired)
	a.hover = newHoverCoordinator(a.hoverEntered, a.hoverLeft)
	a.hover.bindHost(host)
	a.commands = map[Command]func() error{
		CommandShow:    a.Show,
		CommandHide:    func() error { a.Hide(); return nil },
		CommandFadeIn:  a.FadeIn,
		CommandFadeOut: func() error { a.FadeOut(); return nil },
	}
	scene.addAdorner(a)
	return a
}

// ID returns the adorner's unique identity.
func (a *Adorner) ID() uuid.UUID { return a.id }

// Name returns the adorner's name.
func (a *Adorner) Name() string { return a.name }

// SetName renames the adorner. Scene.Adorner looks adorners up by name.
func (a *Adorner) SetName(name string) { a.name = name }

// Host returns the adorned host node.
func (a *Adorner) Host() *Node { return a.host }

// Content returns the current content node, or nil.
func (a *Adorner) Content() *Node { return a.content }

// Config returns a copy of the current configuration. Editing its position
// overrides has no effect until it is passed back to SetConfig.
func (a *Adorner) Config() Config { return a.cfg.clone() }

// State returns the current visibility state.
func (a *Adorner) State() VisibilityState { return a.state }

// IsVisible returns the visibility flag. It is set by Show, SetVisible(true)
// and FadeIn, and cleared by Hide and by a completed fade-out.
func (a *Adorner) IsVisible() bool { return a.visible }

// Attached reports whether the content is currently attached to a layer.
func (a *Adorner) Attached() bool { return a.wrapper != nil }

// Opacity returns the current overlay opacity, or 0 when detached.
func (a *Adorner) Opacity() float64 {
	if a.wrapper == nil {
		return 0
	}
	return a.wrapper.node.Alpha
}

// Bounds returns the content rectangle from the last arrange pass, in the
// adorned element's local coordinates. Zero when detached.
func (a *Adorner) Bounds() Rect {
	if a.wrapper == nil {
		return Rect{}
	}
	return a.wrapper.rect
}

// --- Commands ---

// Show attaches the content at full opacity. A running fade is cancelled.
// Returns an error wrapping ErrPartNotFound if the configured part is
// missing, in which case nothing changes.
func (a *Adorner) Show() error {
	return a.SetVisible(true)
}

// Hide detaches the content immediately.
func (a *Adorner) Hide() {
	a.visible = false
	a.detach()
}

// SetVisible sets the visibility flag and shows or hides the content to
// match. Explicit visibility takes precedence over hover fades.
func (a *Adorner) SetVisible(v bool) error {
	a.visible = v
	return a.syncVisibility()
}

// FadeIn attaches the content and animates its opacity to 1. A fade-in that
// interrupts a fade-out continues from the current opacity. No-op when
// visible or already fading in.
func (a *Adorner) FadeIn() error {
	if a.state == StateVisible || a.state == StateFadingIn {
		return nil
	}
	a.visible = true
	if a.wrapper == nil {
		ok, err := a.attach()
		if err != nil {
			a.visible = false
			return err
		}
		if !ok {
			return nil
		}
		a.wrapper.node.SetAlpha(0)
	}
	a.setState(StateFadingIn)
	a.startFade(1, a.cfg.FadeInTime, a.fadeInCompleted)
	return nil
}

// FadeOut animates the content's opacity to 0 from its current value and
// detaches it when the animation completes. No-op when hidden or already
// fading out.
func (a *Adorner) FadeOut() {
	if a.state == StateFadingOut || a.state == StateHidden {
		return
	}
	a.setState(StateFadingOut)
	a.startFade(0, a.cfg.FadeOutTime, a.fadeOutCompleted)
}

// Execute runs cmd through the adorner's command table.
func (a *Adorner) Execute(cmd Command) error {
	fn, ok := a.commands[cmd]
	if !ok {
		return fmt.Errorf("adorn: %w: %d", ErrUnknownCommand, cmd)
	}
	return fn()
}

// --- Configuration ---

// SetContent replaces the content. The old content's hover subscription is
// released and, if it was attached, it is detached; the new content is
// subscribed and shown if the visibility flag is set.
func (a *Adorner) SetContent(content *Node) error {
	if content == a.content {
		return nil
	}
	if a.wrapper != nil {
		a.closeTimer.Stop()
		a.cancelFade()
		a.releaseWrapper()
		a.setState(StateHidden)
	}
	a.content = content
	a.hover.bindContent(content)
	return a.syncVisibility()
}

// SetConfig applies cfg. Placement changes re-arrange a live overlay;
// a changed part name re-attaches it; disabling hover show hides it; a
// changed Visible value is applied like SetVisible.
func (a *Adorner) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("adorn: adorner %q: %w", a.name, err)
	}
	old := a.cfg
	cfg = cfg.clone()
	a.cfg = cfg
	a.closeTimer.SetInterval(cfg.CloseDelayDuration())

	if a.wrapper != nil {
		if cfg.AdornedPartName != old.AdornedPartName {
			a.cancelFade()
			a.releaseWrapper()
			a.setState(StateHidden)
			if err := a.syncVisibility(); err != nil {
				return err
			}
		} else if !cfg.Placement().Equal(old.Placement()) {
			a.wrapper.setPlacement(cfg.Placement())
		}
	}

	if old.HoverShowEnabled && !cfg.HoverShowEnabled {
		a.closeTimer.Stop()
		a.Hide()
	}
	if cfg.Visible != old.Visible {
		return a.SetVisible(cfg.Visible)
	}
	return nil
}

// SetHoverShowEnabled turns hover-driven showing on or off. Turning it off
// stops the close timer and hides the adorner.
func (a *Adorner) SetHoverShowEnabled(enabled bool) {
	if a.cfg.HoverShowEnabled == enabled {
		return
	}
	a.cfg.HoverShowEnabled = enabled
	if !enabled {
		a.closeTimer.Stop()
		a.Hide()
	}
}

// SetCloseDelay sets the hover close delay in seconds. Negative values are
// treated as zero.
func (a *Adorner) SetCloseDelay(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	a.cfg.CloseDelay = seconds
	a.closeTimer.SetInterval(secondsToDuration(seconds))
}

// SetFadeTimes sets the fade durations in seconds. Negative values are
// treated as zero. Fades already running keep their duration.
func (a *Adorner) SetFadeTimes(in, out float64) {
	a.cfg.FadeInTime = max(in, 0)
	a.cfg.FadeOutTime = max(out, 0)
}

// SetPlacement sets inside/outside placement on both axes.
func (a *Adorner) SetPlacement(horizontal, vertical Placement) {
	a.cfg.HorizontalPlacement = horizontal
	a.cfg.VerticalPlacement = vertical
	a.placementChanged()
}

// SetOffset sets the placement offset.
func (a *Adorner) SetOffset(x, y float64) {
	a.cfg.OffsetX = x
	a.cfg.OffsetY = y
	a.placementChanged()
}

// SetPosition sets explicit position overrides. A nil value restores
// alignment-derived placement on that axis. The values are copied.
func (a *Adorner) SetPosition(x, y *float64) {
	a.cfg.PositionX = cloneFloat(x)
	a.cfg.PositionY = cloneFloat(y)
	a.placementChanged()
}

// SetAdornedPartName selects a named descendant of the host to adorn. An
// attached overlay is moved to the new target.
func (a *Adorner) SetAdornedPartName(name string) error {
	cfg := a.cfg
	cfg.AdornedPartName = name
	return a.SetConfig(cfg)
}

// SetDataContext sets the host's data context and copies it to the content.
func (a *Adorner) SetDataContext(v any) {
	a.host.DataContext = v
	if a.content != nil {
		a.content.DataContext = v
	}
}

// Dispose hides the adorner, releases its subscriptions and unregisters it
// from the scene.
func (a *Adorner) Dispose() {
	if a.disposed {
		return
	}
	a.Hide()
	a.hover.release()
	a.scene.removeAdorner(a)
	a.disposed = true
}

// Update advances the fade animation and the close timer by dt seconds.
// The scene calls it once per frame.
func (a *Adorner) Update(dt float32) {
	if f := a.fade; f != nil {
		f.Update(dt)
		if f.Done && a.fade == f {
			a.fade = nil
		}
	}
	a.closeTimer.Update(dt)
}

// --- Internals ---

func (a *Adorner) placementChanged() {
	if a.wrapper != nil {
		a.wrapper.setPlacement(a.cfg.Placement())
	}
}

// syncVisibility shows or hides to match the visibility flag. A failed
// attach clears the flag.
func (a *Adorner) syncVisibility() error {
	if !a.visible {
		a.detach()
		return nil
	}
	if a.wrapper != nil {
		if a.state == StateFadingIn || a.state == StateFadingOut {
			a.cancelFade()
			a.wrapper.node.SetAlpha(1)
			a.setState(StateVisible)
		}
		return nil
	}
	ok, err := a.attach()
	if err != nil {
		a.visible = false
		return err
	}
	if ok {
		a.wrapper.node.SetAlpha(1)
		a.setState(StateVisible)
	}
	return nil
}

// attach wraps the content and registers it on the host's layer. Reports
// false without error when there is no content or no layer.
func (a *Adorner) attach() (bool, error) {
	if a.wrapper != nil {
		return true, nil
	}
	if a.content == nil {
		return false, nil
	}
	target := a.host
	if part := a.cfg.AdornedPartName; part != "" {
		target = a.host.FindNamed(part)
		if target == nil {
			err := fmt.Errorf("adorn: adorner %q: part %q: %w", a.name, part, ErrPartNotFound)
			a.logger().Error("attach failed", zap.Stringer("adorner", a.id), zap.String("name", a.name), zap.Error(err))
			return false, err
		}
	}
	if a.layer == nil {
		a.layer = GetAdornerLayer(a.host)
	}
	if a.layer == nil {
		a.logger().Warn("no adorner layer for host",
			zap.Stringer("adorner", a.id), zap.String("name", a.name), zap.String("host", a.host.Name))
		return false, nil
	}
	w := newAdornerWrapper(a.content, target, a.cfg.Placement())
	a.layer.add(a.id, w)
	a.wrapper = w
	a.scene.trackLayer(a.layer)
	a.content.DataContext = a.host.DataContext
	return true, nil
}

// detach stops the timer and any fade, removes the wrapper and marks the
// adorner hidden.
func (a *Adorner) detach() {
	a.closeTimer.Stop()
	a.cancelFade()
	a.releaseWrapper()
	a.setState(StateHidden)
}

// releaseWrapper unregisters and disconnects the wrapper, if any.
func (a *Adorner) releaseWrapper() {
	if a.wrapper == nil {
		return
	}
	a.layer.remove(a.id)
	a.wrapper.disconnect()
	a.wrapper = nil
	a.layer = nil
}

func (a *Adorner) startFade(to, seconds float64, done func()) {
	a.cancelFade()
	g := TweenAlpha(a.wrapper.node, to, float32(seconds), a.FadeEase)
	g.OnComplete = done
	a.fade = g
}

func (a *Adorner) cancelFade() {
	if a.fade != nil {
		a.fade.Cancel()
		a.fade = nil
	}
}

func (a *Adorner) fadeInCompleted() {
	if a.state == StateFadingIn {
		a.setState(StateVisible)
	}
}

func (a *Adorner) fadeOutCompleted() {
	// A fade-in may have started since this fade-out began.
	if a.state == StateFadingOut {
		a.Hide()
	}
}

func (a *Adorner) hoverEntered() {
	if !a.cfg.HoverShowEnabled {
		return
	}
	a.closeTimer.Stop()
	if err := a.FadeIn(); err != nil {
		a.logger().Error("hover fade-in failed", zap.Stringer("adorner", a.id), zap.Error(err))
	}
}

func (a *Adorner) hoverLeft() {
	if !a.cfg.HoverShowEnabled {
		return
	}
	a.closeTimer.Start()
}

func (a *Adorner) closeTimerFired() {
	a.closeTimer.Stop()
	a.FadeOut()
}

func (a *Adorner) setState(s VisibilityState) {
	if a.state == s {
		return
	}
	old := a.state
	a.state = s
	a.logger().Debug("adorner state",
		zap.Stringer("adorner", a.id),
		zap.String("name", a.name),
		zap.Stringer("from", old),
		zap.Stringer("to", s))
}

func (a *Adorner) logger() *zap.Logger {
	return a.scene.logger
}
