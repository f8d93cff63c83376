package packer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chocolatl/cocos-texture-packer/pkg/encoder"
	errs "github.com/chocolatl/cocos-texture-packer/pkg/errors"
	"github.com/chocolatl/cocos-texture-packer/pkg/imagekit"
	"github.com/chocolatl/cocos-texture-packer/pkg/observability"
	"github.com/chocolatl/cocos-texture-packer/pkg/output"
)

// FileNameFormat names the files of sheet index.
type FileNameFormat func(baseName string, index int) string

// IndexedName is the default FileNameFormat: "<base>-<index>".
func IndexedName(baseName string, index int) string {
	return fmt.Sprintf("%s-%d", baseName, index)
}

// file is one pending write.
type file struct {
	name string
	data []byte
	pkg  *Package // set for textures, encoded when written
}

// Write persists the first sheet and its descriptor to dir as
// dir/<baseName><ext> and dir/<baseName>.png. It returns the written paths,
// descriptor first.
func (tp *TexturePacker) Write(ctx context.Context, enc encoder.Encoder, dir, baseName string, w WriteOptions) ([]string, error) {
	return tp.WriteTo(ctx, enc, output.NewDirStore(dir), baseName, w)
}

// WriteTo is Write with an explicit store.
func (tp *TexturePacker) WriteTo(ctx context.Context, enc encoder.Encoder, store output.Store, baseName string, w WriteOptions) (paths []string, err error) {
	start := time.Now()
	defer func() {
		observability.Pack().OnWriteComplete(ctx, encoderName(enc), len(paths), time.Since(start), err)
	}()

	if len(tp.packages) == 0 {
		return nil, errs.New(errs.ErrCodeNotGenerated, "no sprite sheets to write; call Generate first")
	}
	pkg := &tp.packages[0]

	desc, ok, err := enc.Encode(pkg.Info(baseName, w))
	if err != nil {
		return nil, encodeError(err, baseName)
	}

	var files []file
	if ok {
		files = append(files, file{name: baseName + desc.Extension, data: desc.Data})
	}
	files = append(files, file{name: baseName + DefaultTextureExtension, pkg: pkg})
	return tp.persist(ctx, store, files)
}

// WriteMultiple persists every sheet. Sheet i is named format(baseName, i);
// a nil format uses [IndexedName]. The encoder is called once for all sheets.
// When it returns a single buffer, that descriptor is written as
// <baseName><ext>; when it returns one buffer per sheet each is written next
// to its texture. Any other count writes no descriptor.
func (tp *TexturePacker) WriteMultiple(ctx context.Context, enc encoder.Encoder, dir, baseName string, format FileNameFormat, w WriteOptions) ([]string, error) {
	return tp.WriteMultipleTo(ctx, enc, output.NewDirStore(dir), baseName, format, w)
}

// WriteMultipleTo is WriteMultiple with an explicit store.
func (tp *TexturePacker) WriteMultipleTo(ctx context.Context, enc encoder.Encoder, store output.Store, baseName string, format FileNameFormat, w WriteOptions) (paths []string, err error) {
	start := time.Now()
	defer func() {
		observability.Pack().OnWriteComplete(ctx, encoderName(enc), len(paths), time.Since(start), err)
	}()

	if len(tp.packages) == 0 {
		return nil, errs.New(errs.ErrCodeNotGenerated, "no sprite sheets to write; call Generate first")
	}
	if format == nil {
		format = IndexedName
	}

	names := make([]string, len(tp.packages))
	infos := make([]encoder.PackageInfo, len(tp.packages))
	for i := range tp.packages {
		names[i] = format(baseName, i)
		infos[i] = tp.packages[i].Info(names[i], w)
	}

	md, ok, err := enc.EncodeMultiple(infos)
	if err != nil {
		return nil, encodeError(err, baseName)
	}

	var files []file
	if ok {
		switch len(md.Buffers) {
		case len(infos):
			for i, buf := range md.Buffers {
				files = append(files, file{name: names[i] + md.Extension, data: buf})
			}
		case 1:
			files = append(files, file{name: baseName + md.Extension, data: md.Buffers[0]})
		default:
			tp.logger.Warn("encoder returned an unexpected number of descriptors, none written",
				"encoder", encoderName(enc), "descriptors", len(md.Buffers), "sheets", len(infos))
		}
	}
	for i := range tp.packages {
		files = append(files, file{name: names[i] + DefaultTextureExtension, pkg: &tp.packages[i]})
	}
	return tp.persist(ctx, store, files)
}

// persist writes all files concurrently. Paths are returned in the order of
// files; the first failure fails the call without removing files already
// written.
func (tp *TexturePacker) persist(ctx context.Context, store output.Store, files []file) ([]string, error) {
	paths := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if tp.concurrency > 0 {
		g.SetLimit(tp.concurrency)
	}
	for i, f := range files {
		g.Go(func() error {
			data := f.data
			if f.pkg != nil {
				var err error
				if data, err = imagekit.EncodePNG(f.pkg.Image); err != nil {
					return errs.Wrap(errs.ErrCodeEncode, err, "encode texture %s", f.name)
				}
			}
			path, err := store.WriteFile(gctx, f.name, data)
			if err != nil {
				return errs.Wrap(errs.ErrCodeWrite, err, "write %s", f.name)
			}
			paths[i] = path
			tp.logger.Debug("wrote file", "path", path, "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func encodeError(err error, baseName string) error {
	if errs.GetCode(err) != "" {
		return err
	}
	return errs.Wrap(errs.ErrCodeEncode, err, "encode descriptor for %s", baseName)
}

func encoderName(enc encoder.Encoder) string {
	return fmt.Sprintf("%T", enc)
}
