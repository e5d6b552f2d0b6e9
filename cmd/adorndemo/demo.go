package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/adorn"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

var (
	colorHost      = adorn.Color{R: 0.30, G: 0.45, B: 0.70, A: 1}
	colorHostHover = adorn.Color{R: 0.40, G: 0.58, B: 0.88, A: 1}
	colorTip       = adorn.Color{R: 0.95, G: 0.90, B: 0.55, A: 1}
	colorBadge     = adorn.Color{R: 0.90, G: 0.25, B: 0.25, A: 1}
	colorTool      = adorn.Color{R: 0.85, G: 0.85, B: 0.90, A: 1}
	colorBanner    = adorn.Color{R: 0.25, G: 0.70, B: 0.45, A: 1}
)

type demo struct {
	scene      *adorn.Scene
	highlights map[*adorn.Node]*adorn.TweenGroup
	watcher    *adorn.ConfigWatcher
	runner     *adorn.TestRunner
}

func buildDemo(scene *adorn.Scene) (*demo, error) {
	d := &demo{scene: scene, highlights: make(map[*adorn.Node]*adorn.TweenGroup)}
	root := scene.Root()

	// Tooltip below a button, fading in on hover.
	button := d.host("button", 100, 100, 160, 48)
	root.AddChild(button)
	font, err := adorn.DefaultFont(14)
	if err != nil {
		return nil, err
	}
	tip := adorn.NewText("tip", "Save the current document", font)
	tip.Color = colorTip
	tip.HAlign = adorn.HAlignCenter
	tip.VAlign = adorn.VAlignBottom
	cfg := adorn.DefaultConfig()
	cfg.VerticalPlacement = adorn.PlacementOutside
	cfg.OffsetY = 4
	cfg.CloseDelay = 0.5
	if err := d.adorner("tooltip", button, tip, cfg); err != nil {
		return nil, err
	}

	// Badge on a card's corner, toggled by clicking the card.
	card := d.host("card", 400, 100, 200, 140)
	root.AddChild(card)
	badge := adorn.NewRect("badge", 20, 20, colorBadge)
	badge.HAlign = adorn.HAlignRight
	badge.VAlign = adorn.VAlignTop
	cfg = adorn.DefaultConfig()
	cfg.HoverShowEnabled = false
	cfg.Visible = true
	cfg.OffsetX, cfg.OffsetY = 10, -10
	if err := d.adorner("badge", card, badge, cfg); err != nil {
		return nil, err
	}
	card.OnClick = func(adorn.ClickContext) {
		a := scene.Adorner("badge")
		cmd := adorn.CommandShow
		if a.IsVisible() {
			cmd = adorn.CommandHide
		}
		if err := a.Execute(cmd); err != nil {
			logger.Error("toggle badge", zap.Error(err))
		}
	}

	// Toolbar pinned to the right of a panel's header part. The canvas has no
	// size of its own; its tools extend it leftwards from the trailing edge.
	panel := adorn.NewContainer("panel")
	panel.SetPosition(100, 300)
	header := d.host("header", 0, 0, 300, 32)
	body := adorn.NewRect("body", 300, 120, adorn.Color{R: 0.2, G: 0.2, B: 0.25, A: 1})
	body.SetPosition(0, 32)
	panel.AddChild(header)
	panel.AddChild(body)
	root.AddChild(panel)
	toolbar := adorn.NewCanvas("toolbar")
	toolbar.HAlign = adorn.HAlignRight
	toolbar.VAlign = adorn.VAlignTop
	for i := range 3 {
		tool := adorn.NewRect(fmt.Sprintf("tool%d", i), 24, 24, colorTool)
		tool.SetPosition(float64(i*28), 0)
		toolbar.AddChild(tool)
	}
	cfg = adorn.DefaultConfig()
	cfg.AdornedPartName = "header"
	cfg.OffsetX, cfg.OffsetY = -4, 4
	if err := d.adorner("toolbar", panel, toolbar, cfg); err != nil {
		return nil, err
	}

	// Banner stretched across the top of a footer, outside.
	footer := d.host("footer", 100, 520, 600, 40)
	root.AddChild(footer)
	banner := adorn.NewRect("banner", 0, 6, colorBanner)
	banner.HAlign = adorn.HAlignStretch
	banner.VAlign = adorn.VAlignTop
	cfg = adorn.DefaultConfig()
	cfg.VerticalPlacement = adorn.PlacementOutside
	cfg.FadeInTime = 0.1
	cfg.FadeOutTime = 0.3
	if err := d.adorner("banner", footer, banner, cfg); err != nil {
		return nil, err
	}

	return d, nil
}

// host creates a rect that highlights while hovered.
func (d *demo) host(name string, x, y, w, h float64) *adorn.Node {
	n := adorn.NewRect(name, w, h, colorHost)
	n.SetPosition(x, y)
	n.Interactable = true
	n.OnPointerEnter = func(adorn.PointerContext) { d.highlight(n, colorHostHover) }
	n.OnPointerLeave = func(adorn.PointerContext) { d.highlight(n, colorHost) }
	return n
}

func (d *demo) highlight(n *adorn.Node, to adorn.Color) {
	if g := d.highlights[n]; g != nil {
		g.Cancel()
	}
	d.highlights[n] = adorn.TweenColor(n, to, 0.15, ease.OutQuad)
}

func (d *demo) adorner(name string, host, content *adorn.Node, cfg adorn.Config) error {
	a := adorn.NewAdorner(d.scene, host, cfg)
	a.SetName(name)
	a.FadeEase = ease.InOutQuad
	if err := a.SetContent(content); err != nil {
		return fmt.Errorf("adorner %s: %w", name, err)
	}
	return nil
}

func (d *demo) update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	for n, g := range d.highlights {
		g.Update(dt)
		if g.Done {
			delete(d.highlights, n)
		}
	}

	if d.watcher != nil {
		select {
		case f := <-d.watcher.Updates():
			if err := d.scene.ApplyConfigFile(f); err != nil {
				logger.Warn("config rejected", zap.Error(err))
			}
		case err := <-d.watcher.Errors():
			logger.Warn("config watch", zap.Error(err))
		default:
		}
	}

	if d.runner != nil && d.runner.Done() {
		if fs := d.runner.Failures(); len(fs) > 0 {
			for _, err := range fs {
				logger.Error("script", zap.Error(err))
			}
			return fmt.Errorf("script: %d step(s) failed", len(fs))
		}
		logger.Info("script passed")
		return ebiten.Termination
	}
	return nil
}
