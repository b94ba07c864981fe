// Package cardstack is a swipeable card stack for [Ebitengine].
//
// A [Controller] shows the first few cards of a [Queue] as a fanned stack.
// The front card follows the pointer horizontally. Releasing it past the
// threshold sends it off screen, rotates the queue and brings the next card
// in; releasing short of the threshold springs it back. Two buttons below
// the stack dismiss the front card without dragging.
//
// # Quick start
//
//	scene := cardstack.NewScene()
//	ctrl := cardstack.NewController(scene, cards, cardstack.DefaultOptions())
//	ctrl.OnRotate = func(dir cardstack.Direction, front cardstack.Card) {
//		log.Println(dir, front.Title)
//	}
//	cardstack.Run(scene, cardstack.RunConfig{Title: "Seasons", Width: 960, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]; children inherit their parent's transform and alpha and are
// drawn in [Node.ZIndex] order. [NewRect] draws a solid rectangle,
// [NewSprite] an image and [NewText] a wrapped [TextBlock].
//
// # Input
//
// Mouse and touch input is hit-tested against interactable nodes. A press
// that moves less than [Scene.SetDragDeadZone] pixels is a click; beyond
// that it becomes a drag. [BindDrag] layers the card gesture on top:
// edge resistance, direction tracking and the accept/cancel decision.
//
// Tests drive the same path without a window through [Scene.InjectPress],
// [Scene.InjectMove], [Scene.InjectRelease] and [Scene.InjectDrag].
//
// # Animation
//
// [Tween] animates node fields using [gween] easings. The scene's
// [Animator] runs tweens, chains them with [Animator.Sequence] and kills all
// tweens on a node with [Animator.Kill].
//
// # Extras
//
// [Trail] drops fading images along the pointer path. [Loader] covers the
// scene with a progress overlay until background work is ready.
// [TestRunner] replays a JSON script of clicks, drags and screenshots.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package cardstack
