// Package adorn overlays floating UI elements ("adorners") on top of host
// nodes in a retained-mode 2D scene graph for [Ebitengine].
//
// An adorner pairs a host [Node] with a content node. The content is placed
// relative to the host (inside or outside each edge, aligned, offset, or at
// an explicit position) and shown or hidden either explicitly or by pointer
// hover, with gween-driven opacity fades and a close delay.
//
// # Quick start
//
//	scene := adorn.NewScene()
//
//	button := adorn.NewRect("save", 120, 32, adorn.Color{R: 0.2, G: 0.4, B: 0.8, A: 1})
//	button.SetPosition(40, 40)
//	scene.Root().AddChild(button)
//
//	tip := adorn.NewRect("save-tip", 160, 24, adorn.Color{R: 1, G: 1, B: 0.8, A: 1})
//	tip.VAlign = adorn.VAlignBottom
//
//	cfg := adorn.DefaultConfig()
//	cfg.VerticalPlacement = adorn.PlacementOutside
//	a := adorn.NewAdorner(scene, button, cfg)
//	_ = a.SetContent(tip)
//
//	adorn.Run(scene, adorn.RunConfig{Title: "demo", Width: 640, Height: 480})
//
// Hovering the button fades the tip in; leaving both the button and the tip
// starts the close timer, after which the tip fades out and detaches.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
// Layout is deliberately small: a node has a desired size (explicit
// Width/Height, image bounds, or the extent of its children) and an arranged
// size assigned by whoever places it.
//
// # Adorner layers
//
// An [AdornerLayer] is the surface adorners are attached to. [NewScene]
// installs one on the root; [NewAdornerLayer] installs one on any other node
// so that its adorners share that node's coordinate space and draw above its
// subtree. [GetAdornerLayer] finds the nearest layer for a node.
//
// [Ebitengine]: https://ebitengine.org
package adorn
