package spine

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// AtlasPage is one texture of an atlas. The page pointer is the texture
// identity used for batching.
type AtlasPage struct {
	Name          string
	Width, Height int
	// Image is the page texture. May be nil when geometry is generated
	// without a renderer (tests, tools).
	Image *ebiten.Image
}

// NewAtlasPage creates a page for img, taking its dimensions from the image
// bounds.
func NewAtlasPage(name string, img *ebiten.Image) *AtlasPage {
	b := img.Bounds()
	return &AtlasPage{Name: name, Width: b.Dx(), Height: b.Dy(), Image: img}
}

// TextureRegion describes a sub-rectangle of an atlas page in normalized
// texture coordinates plus the trim information needed to place it.
type TextureRegion struct {
	Page *AtlasPage
	Name string

	U, V, U2, V2 float64

	Width, Height                 int // packed (trimmed) size, unrotated
	OriginalWidth, OriginalHeight int // untrimmed size as authored
	OffsetX, OffsetY              float64
	Degrees                       int // 0, 90, 180 or 270
}

// RegionSpec describes a region in page pixels for Atlas.AddRegion.
type RegionSpec struct {
	Name string
	Page int

	// X, Y, Width, Height locate the packed rect on the page. For rotated
	// regions Width and Height are the unrotated sizes; the rect on the page
	// is Height × Width.
	X, Y, Width, Height int

	// OriginalWidth and OriginalHeight default to Width and Height.
	OriginalWidth, OriginalHeight int
	OffsetX, OffsetY              int

	// Rotated marks a region stored 90 degrees clockwise on the page.
	Rotated bool
}

// Atlas holds pages and named regions. It performs no file parsing; regions
// are registered by the asset loader.
type Atlas struct {
	Pages   []*AtlasPage
	regions map[string]*TextureRegion
	order   []*TextureRegion

	// Debug enables warnings for missing region lookups.
	Debug bool
}

// NewAtlas creates an atlas over the given pages.
func NewAtlas(pages ...*AtlasPage) *Atlas {
	return &Atlas{Pages: pages, regions: make(map[string]*TextureRegion)}
}

// AddRegion registers a region and computes its texture coordinates from the
// page size. It panics if spec.Page is out of range.
func (a *Atlas) AddRegion(spec RegionSpec) *TextureRegion {
	if spec.Page < 0 || spec.Page >= len(a.Pages) {
		panic("spine: atlas region " + spec.Name + " references a missing page")
	}
	page := a.Pages[spec.Page]

	ow, oh := spec.OriginalWidth, spec.OriginalHeight
	if ow == 0 {
		ow = spec.Width
	}
	if oh == 0 {
		oh = spec.Height
	}

	// Packed rect on the page is swapped for rotated regions.
	pw, ph := spec.Width, spec.Height
	degrees := 0
	if spec.Rotated {
		pw, ph = spec.Height, spec.Width
		degrees = 90
	}

	r := &TextureRegion{
		Page:           page,
		Name:           spec.Name,
		Width:          spec.Width,
		Height:         spec.Height,
		OriginalWidth:  ow,
		OriginalHeight: oh,
		OffsetX:        float64(spec.OffsetX),
		OffsetY:        float64(spec.OffsetY),
		Degrees:        degrees,
	}
	if page.Width > 0 && page.Height > 0 {
		r.U = float64(spec.X) / float64(page.Width)
		r.V = float64(spec.Y) / float64(page.Height)
		r.U2 = float64(spec.X+pw) / float64(page.Width)
		r.V2 = float64(spec.Y+ph) / float64(page.Height)
	}

	if _, ok := a.regions[spec.Name]; !ok {
		a.order = append(a.order, r)
	} else {
		for i, old := range a.order {
			if old.Name == spec.Name {
				a.order[i] = r
			}
		}
	}
	a.regions[spec.Name] = r
	return r
}

// Region returns the region with the given name, or nil. In debug mode a
// missing name is logged.
func (a *Atlas) Region(name string) *TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if a.Debug {
		log.Printf("spine: atlas region %q not found", name)
	}
	return nil
}

// Regions returns all regions in registration order. The returned slice MUST
// NOT be mutated.
func (a *Atlas) Regions() []*TextureRegion {
	return a.order
}
