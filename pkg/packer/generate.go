package packer

import (
	"context"
	"errors"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chocolatl/cocos-texture-packer/pkg/crop"
	"github.com/chocolatl/cocos-texture-packer/pkg/encoder"
	errs "github.com/chocolatl/cocos-texture-packer/pkg/errors"
	"github.com/chocolatl/cocos-texture-packer/pkg/imagekit"
	"github.com/chocolatl/cocos-texture-packer/pkg/maxrects"
	"github.com/chocolatl/cocos-texture-packer/pkg/observability"
	"github.com/chocolatl/cocos-texture-packer/pkg/sprite"
)

// Generate decodes and crops new sprites, packs every registered sprite and
// composes the sheets. ov is merged onto [DefaultOptions].
//
// On failure the sheets of the previous successful call stay in place.
// A decode failure leaves every not yet decoded sprite Pending.
func (tp *TexturePacker) Generate(ctx context.Context, ov Overrides) (err error) {
	start := time.Now()
	opts := DefaultOptions().Merge(ov)
	if err := opts.Validate(); err != nil {
		return err
	}

	pending := tp.registry.InState(sprite.Pending)
	observability.Pack().OnGenerateStart(ctx, tp.registry.Len(), len(pending))
	defer func() {
		observability.Pack().OnGenerateComplete(ctx, len(tp.packages), time.Since(start), err)
	}()

	if err := tp.decode(ctx, pending); err != nil {
		return err
	}
	tp.cropDecoded()

	bins, err := tp.pack(opts)
	if err != nil {
		return err
	}
	packages, placements := tp.assemble(bins)

	tp.packages = packages
	tp.placements = placements
	for _, e := range tp.registry.Entries() {
		e.State = sprite.Packed
	}

	tp.logger.Info("generated sprite sheets",
		"sprites", tp.registry.Len(),
		"decoded", len(pending),
		"sheets", len(packages),
		"duration", time.Since(start))
	return nil
}

// decode reads every pending sprite concurrently. Images are committed to
// the registry only when all of them decoded.
func (tp *TexturePacker) decode(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	images := make([]*image.NRGBA, len(names))
	g, gctx := errgroup.WithContext(ctx)
	if tp.concurrency > 0 {
		g.SetLimit(tp.concurrency)
	}
	for i, name := range names {
		e, _ := tp.registry.Get(name)
		src := e.Source
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := decodeSource(src)
			if err != nil {
				return &errs.SpriteError{Name: name, Err: err}
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return errs.Wrap(errs.ErrCodeDecode, err, "decode sprites")
	}

	for i, name := range names {
		e, _ := tp.registry.Get(name)
		e.Image = images[i]
		e.State = sprite.Decoded
		b := images[i].Bounds()
		tp.logger.Debug("decoded sprite", "name", name, "width", b.Dx(), "height", b.Dy())
	}
	return nil
}

func decodeSource(src sprite.Source) (*image.NRGBA, error) {
	data, err := src.ReadAll()
	if err != nil {
		return nil, err
	}
	return imagekit.DecodeBytes(data)
}

// cropDecoded trims every Decoded sprite. The cropped copy replaces the
// decoded image.
func (tp *TexturePacker) cropDecoded() {
	for _, name := range tp.registry.InState(sprite.Decoded) {
		e, _ := tp.registry.Get(name)
		trim := crop.Analyze(e.Image)
		if !trim.Crop.IsZero() {
			e.Image = imagekit.Crop(e.Image, trim.Bounds())
		}
		e.Trim = trim
		e.State = sprite.Cropped
		tp.logger.Debug("cropped sprite", "name", name,
			"size", trim.Size, "source", trim.SourceSize, "offset", trim.Offset)
	}
}

// pack submits every registered sprite to the packing service.
func (tp *TexturePacker) pack(opts Options) ([]maxrects.Bin, error) {
	entries := tp.registry.Entries()
	rects := make([]maxrects.Rect, len(entries))
	for i, e := range entries {
		rects[i] = maxrects.Rect{
			ID:     e.Name,
			Group:  e.Group,
			Width:  e.Trim.Size[0],
			Height: e.Trim.Size[1],
		}
	}

	bins, err := tp.rects.Pack(rects, opts.packOptions())
	if err != nil {
		var oe *maxrects.OversizeError
		if errors.As(err, &oe) {
			err = &errs.SpriteError{Name: oe.ID, Err: err}
		}
		return nil, errs.Wrap(errs.ErrCodePacking, err, "pack %d sprites", len(rects))
	}
	return bins, nil
}

// assemble composes one image per bin and records the placements.
func (tp *TexturePacker) assemble(bins []maxrects.Bin) ([]Package, map[string]sprite.Placement) {
	packages := make([]Package, len(bins))
	placements := make(map[string]sprite.Placement, tp.registry.Len())

	for i, bin := range bins {
		canvas := imagekit.NewCanvas(bin.Width, bin.Height)
		pkg := Package{
			Index: i,
			Group: bin.Group,
			Sheet: encoder.SheetMeta{Size: [2]int{bin.Width, bin.Height}},
			Image: canvas,
		}

		for _, p := range bin.Placements {
			e, _ := tp.registry.Get(p.ID)
			var src image.Image = e.Image
			if p.Rotated {
				src = imagekit.RotateCW(e.Image)
			}
			imagekit.Composite(canvas, src, image.Pt(p.X, p.Y))

			pl := sprite.Placement{Sheet: i, Position: [2]int{p.X, p.Y}, Rotated: p.Rotated}
			placements[p.ID] = pl
			pkg.Names = append(pkg.Names, p.ID)
			pkg.members = append(pkg.members, member{name: p.ID, trim: e.Trim, placement: pl})
		}

		packages[i] = pkg
		tp.logger.Debug("assembled sheet", "index", i, "width", bin.Width, "height", bin.Height, "sprites", len(pkg.Names))
	}
	return packages, placements
}
