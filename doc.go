// Package spine turns posed Spine skeletons into GPU-ready triangle batches
// for [Ebitengine].
//
// The package does not load .skel, .json or .atlas files and does not
// evaluate animation timelines. It starts where those end: a [Skeleton] whose
// bones carry world transforms and whose slots hold attachments. A
// [Generator] walks the draw order and produces a [Frame]: interleaved
// vertices, batch-local indices and one [RenderBatch] per run of slots that
// share a texture page and blend mode.
//
// # Quick start
//
//	rt := spine.NewRuntime()
//	atlas := spine.NewAtlas(spine.NewAtlasPage("hero.png", img))
//	head := atlas.AddRegion(spine.RegionSpec{Name: "head", Width: 64, Height: 64})
//
//	data := &spine.SkeletonData{Name: "hero"}
//	root := spine.NewBoneData(0, "root", nil)
//	data.Bones = append(data.Bones, root)
//	data.Slots = append(data.Slots, spine.NewSlotData(0, "head", root))
//
//	sk := spine.NewSkeleton(data)
//	sk.Slots[0].SetAttachment(rt.NewRegionAttachment("head", head))
//	sk.UpdateWorldTransform()
//
//	gen := spine.NewGenerator(spine.GeneratorConfig{PremultipliedAlpha: true})
//	frame, err := gen.Generate(sk)
//
// Draw the frame with a [Renderer]:
//
//	r := spine.NewRenderer(spine.RendererConfig{View: spine.YUpView(320, 400)})
//	r.Draw(screen, frame)
//
// # Coordinates
//
// Skeleton space is y-up, as authored in Spine. Bone world matrices use
// Spine's naming: worldX = A*x + B*y + WorldX, worldY = C*x + D*y + WorldY.
// The renderer's view matrix (see [YUpView] and [Camera]) maps skeleton space
// to screen pixels.
//
// # Vertex layout
//
// Each vertex is x, y, r, g, b, a, u, v, followed by dark r, g, b when
// [GeneratorConfig.TwoColorTint] is set. UVs are normalized page
// coordinates. Colors are premultiplied when
// [GeneratorConfig.PremultipliedAlpha] is set.
//
// # Clipping
//
// A [ClippingAttachment] clips every following slot up to and including its
// end slot. The clip polygon is triangulated and split into convex parts;
// each triangle is clipped against every part and re-triangulated as a fan.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. Use one [Generator]
// per goroutine; skeletons and attachments must not be mutated while a
// Generate call reads them.
//
// Attachments live in [SkeletonData] skins and are shared by every skeleton
// built from it, and Generate writes to some of them: a region attachment
// with a dirty cache recomputes its offsets and UVs, and an attachment with
// a [Sequence] is assigned the region for the slot's sequence index. Skeletons
// sharing data must therefore be generated from one goroutine, or serialized,
// whenever those attachments are in use.
//
// [Ebitengine]: https://ebitengine.org
package spine
