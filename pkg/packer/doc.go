// Package packer assembles sprites into sprite sheets.
//
// A [TexturePacker] owns a registry of named sprites. [TexturePacker.Generate]
// decodes every sprite that has not been seen before, crops its transparent
// border, packs all known sprites into one or more sheets and composes the
// sheet images. [TexturePacker.Write] and [TexturePacker.WriteMultiple] then
// serialize the sheets with an [encoder.Encoder] and persist them.
//
// # Usage
//
//	tp := packer.New(packer.WithLogger(logger))
//	if err := tp.AddFile("hero", "sprites/hero.png"); err != nil {
//	    return err
//	}
//	if err := tp.Generate(ctx, packer.Overrides{MaxWidth: packer.Int(1024)}); err != nil {
//	    return err
//	}
//	paths, err := tp.WriteMultiple(ctx, encoder.Cocos{}, "out", "atlas", nil, packer.WriteOptions{})
//
// # Cropping
//
// A pixel is transparent when its alpha is at most 5. The transparent border is
// removed so that the cropped size keeps the parity of the source size, which
// makes the recorded center offset an exact integer. Cropping happens once per
// sprite; repeated Generate calls reuse the result.
//
// # Re-generating
//
// Every Generate call repacks all sprites, so sprites packed before may move
// to another sheet or position. Sheets are replaced only when the whole call
// succeeds.
//
// # Concurrency
//
// A TexturePacker is not safe for concurrent use. Decoding inside Generate
// and file writes inside Write fan out to goroutines and are joined before
// the call returns.
package packer
