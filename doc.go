// Package lumen is a retained-mode page scene for [Ebitengine]: a scrolling
// document of nodes with pointer, wheel and keyboard input, tweens, and the
// interaction primitives single-page sites are built from.
//
// # Quick start
//
//	scene := lumen.NewScene(lumen.Rect{Width: 1280, Height: 800})
//	scene.SetContentHeight(4000)
//	// ... add nodes to scene.Root() and scene.Overlay() ...
//	lumen.Run(scene, lumen.RunConfig{Title: "Site", Width: 1280, Height: 800})
//
// # Scene graph
//
// Every visual element is a [Node]: a container, a solid rectangle, text or
// an image. Nodes under [Scene.Root] scroll with the page camera; nodes under
// [Scene.Overlay] stay fixed to the screen and are drawn and hit-tested
// first. Children inherit their parent's transform, alpha and clip.
//
// # Primitives
//
// Three independent subscriptions cover scroll- and pointer-driven effects:
//
//   - [Scene.TrackScroll] reports normalized page scroll progress
//     ([ScrollProgress]).
//   - [Scene.ObserveVisibility] reports when a node's share of the viewport
//     crosses a threshold.
//   - [NewMagnetic] and [NewTilt] move or tilt a node relative to the pointer
//     ([MagneticOffset], [TiltRotation]).
//
// Each is acquired when created and released with Close. All callbacks run on
// the update goroutine; other goroutines hand work to the scene with
// [Scene.Post].
//
// [Ebitengine]: https://ebitengine.org
package lumen
