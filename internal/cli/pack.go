package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chocolatl/cocos-texture-packer/pkg/buildinfo"
	"github.com/chocolatl/cocos-texture-packer/pkg/cache"
	"github.com/chocolatl/cocos-texture-packer/pkg/encoder"
	"github.com/chocolatl/cocos-texture-packer/pkg/packer"
)

const (
	defaultOutput     = "."
	defaultName       = "atlas"
	defaultEncoder    = "cocos"
	defaultNameFormat = "{name}-{index}"
)

// packOpts holds the resolved settings of a pack run.
type packOpts struct {
	config     string
	inputs     []string
	output     string
	name       string
	encoder    string
	multiple   bool
	nameFormat string
	noCache    bool

	packing packer.Overrides
	write   packer.WriteOptions
}

// packFlags holds raw flag values; only flags the user set are applied.
type packFlags struct {
	output, name, encoder, nameFormat string
	multiple                          bool
	maxWidth, maxHeight               int
	padding, border                   int
	smart, pot, square, rotation, tag bool
	textureExt, pixelFormat           string
}

// packResult summarizes a finished run.
type packResult struct {
	Sprites int      `json:"sprites"`
	Sheets  int      `json:"sheets"`
	Paths   []string `json:"paths"`
	Cached  bool     `json:"-"`
}

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	var opts packOpts
	var f packFlags

	cmd := &cobra.Command{
		Use:   "pack [inputs...]",
		Short: "Pack images into sprite sheets",
		Long: `Pack images into one or more sprite sheets and write a descriptor for each.

Inputs may be image files, directories (searched recursively) or glob
patterns. Settings can also come from a TOML or YAML project file given with
--config; flags override the file.`,
		Example: `  texturepacker pack sprites/ -o build -n ui
  texturepacker pack --config atlas.toml --multiple
  texturepacker pack "icons/*.png" -e json --max-width 1024`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolve(cmd, args, f); err != nil {
				return err
			}
			s := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Packing sprites...")
			s.Start()
			res, err := runPack(cmd.Context(), opts)
			s.Stop()
			if err != nil {
				return err
			}
			printPackResult(res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "project file (.toml, .yaml)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always repack, ignoring the cache")
	addPackFlags(cmd, &f)

	return cmd
}

// addPackFlags registers the flags shared by pack and watch.
func addPackFlags(cmd *cobra.Command, f *packFlags) {
	def := packer.DefaultOptions()
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", defaultOutput, "output directory")
	fl.StringVarP(&f.name, "name", "n", defaultName, "base file name of the sheets")
	fl.StringVarP(&f.encoder, "encoder", "e", defaultEncoder, "descriptor format: "+strings.Join(encoder.Names(), ", "))
	fl.BoolVar(&f.multiple, "multiple", false, "write every sheet instead of only the first")
	fl.StringVar(&f.nameFormat, "name-format", defaultNameFormat, "sheet file names with --multiple ({name}, {index})")
	fl.IntVar(&f.maxWidth, "max-width", def.MaxWidth, "maximum sheet width")
	fl.IntVar(&f.maxHeight, "max-height", def.MaxHeight, "maximum sheet height")
	fl.IntVar(&f.padding, "padding", def.Padding, "pixels between sprites")
	fl.IntVar(&f.border, "border", def.Border, "pixels between sprites and sheet edges")
	fl.BoolVar(&f.smart, "smart", def.Smart, "shrink sheets to their content")
	fl.BoolVar(&f.pot, "pot", def.POT, "use power-of-two sheet sizes")
	fl.BoolVar(&f.square, "square", def.Square, "use square sheets")
	fl.BoolVar(&f.rotation, "rotation", def.AllowRotation, "allow rotating sprites by 90 degrees")
	fl.BoolVar(&f.tag, "tag", def.Tag, "keep sprites of different sub-directories on separate sheets")
	fl.StringVar(&f.textureExt, "texture-ext", "", "texture extension written into descriptors (default .png)")
	fl.StringVar(&f.pixelFormat, "pixel-format", "", "pixel format written into descriptors (default RGBA8888)")
	_ = cmd.RegisterFlagCompletionFunc("encoder", completeEncoders)
}

// resolve merges defaults, the project file and the flags the user set.
func (o *packOpts) resolve(cmd *cobra.Command, args []string, f packFlags) error {
	o.output, o.name, o.encoder, o.nameFormat = defaultOutput, defaultName, defaultEncoder, defaultNameFormat

	if o.config != "" {
		cfg, err := loadConfig(o.config)
		if err != nil {
			return err
		}
		o.inputs = cfg.Inputs
		setString(&o.output, cfg.Output)
		setString(&o.name, cfg.Name)
		setString(&o.encoder, cfg.Encoder)
		setString(&o.nameFormat, cfg.NameFormat)
		o.multiple = cfg.Multiple
		o.packing = cfg.Packing
		o.write = cfg.Write
	}
	if len(args) > 0 {
		o.inputs = args
	}
	if len(o.inputs) == 0 {
		return fmt.Errorf("no inputs given")
	}

	fl := cmd.Flags()
	if fl.Changed("output") {
		o.output = f.output
	}
	if fl.Changed("name") {
		o.name = f.name
	}
	if fl.Changed("encoder") {
		o.encoder = f.encoder
	}
	if fl.Changed("multiple") {
		o.multiple = f.multiple
	}
	if fl.Changed("name-format") {
		o.nameFormat = f.nameFormat
	}
	if fl.Changed("texture-ext") {
		o.write.TextureExtension = f.textureExt
	}
	if fl.Changed("pixel-format") {
		o.write.PixelFormat = f.pixelFormat
	}

	var ov packer.Overrides
	ints := []struct {
		flag string
		val  int
		dst  **int
	}{
		{"max-width", f.maxWidth, &ov.MaxWidth},
		{"max-height", f.maxHeight, &ov.MaxHeight},
		{"padding", f.padding, &ov.Padding},
		{"border", f.border, &ov.Border},
	}
	for _, i := range ints {
		if fl.Changed(i.flag) {
			*i.dst = packer.Int(i.val)
		}
	}
	bools := []struct {
		flag string
		val  bool
		dst  **bool
	}{
		{"smart", f.smart, &ov.Smart},
		{"pot", f.pot, &ov.POT},
		{"square", f.square, &ov.Square},
		{"rotation", f.rotation, &ov.AllowRotation},
		{"tag", f.tag, &ov.Tag},
	}
	for _, b := range bools {
		if fl.Changed(b.flag) {
			*b.dst = packer.Bool(b.val)
		}
	}
	o.packing = o.packing.Merge(ov)

	if _, err := encoder.ByName(o.encoder); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// nameFormatter turns a "{name}-{index}" template into a FileNameFormat.
func nameFormatter(tmpl string) packer.FileNameFormat {
	if tmpl == "" {
		return packer.IndexedName
	}
	return func(base string, index int) string {
		return strings.NewReplacer("{name}", base, "{index}", strconv.Itoa(index)).Replace(tmpl)
	}
}

// runPack executes one pack run. Unchanged inputs and settings whose outputs
// still exist are skipped.
func runPack(ctx context.Context, opts packOpts) (*packResult, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	filter, err := newOutputFilter(opts)
	if err != nil {
		return nil, err
	}
	files, err := collectInputs(opts.inputs, filter.Match)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images found in %s", strings.Join(opts.inputs, ", "))
	}

	// Read every input once: the bytes feed both the cache key and the packer.
	data := make(map[string][]byte, len(files))
	digests := make(map[string]string, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, err
		}
		data[f.Name] = b
		digests[f.Name] = cache.Hash(b)
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "dir:"+filter.dir+":")
	key := keyer.PackKey(cache.HashSet(digests), cache.PackKeyOpts{
		Options:    packer.DefaultOptions().Merge(opts.packing),
		Encoder:    opts.encoder,
		BaseName:   opts.name,
		Multiple:   opts.multiple,
		NameFormat: opts.nameFormat,
		TextureExt: opts.write.TextureExtension,
		Format:     opts.write.PixelFormat,
		Generator:  buildinfo.Generator(),
	})

	if res, ok := cachedResult(ctx, store, key); ok {
		logger.Debug("outputs up to date", "key", key)
		return res, nil
	}

	tp := packer.New(packer.WithLogger(logger))
	for _, f := range files {
		if err := tp.AddBytes(f.Name, data[f.Name], packer.InGroup(f.Group)); err != nil {
			return nil, err
		}
	}
	if err := tp.Generate(ctx, opts.packing); err != nil {
		return nil, err
	}

	enc, err := encoder.ByName(opts.encoder)
	if err != nil {
		return nil, err
	}

	var paths []string
	if opts.multiple {
		paths, err = tp.WriteMultiple(ctx, enc, opts.output, opts.name, nameFormatter(opts.nameFormat), opts.write)
	} else {
		if n := tp.SpriteSheetCount(); n > 1 {
			logger.Warn("sprites do not fit on one sheet, only the first is written; use --multiple",
				"sheets", n)
		}
		paths, err = tp.Write(ctx, enc, opts.output, opts.name, opts.write)
	}
	if err != nil {
		return nil, err
	}
	// Cached manifests are checked from any working directory.
	for i, p := range paths {
		if paths[i], err = filepath.Abs(p); err != nil {
			return nil, err
		}
	}

	res := &packResult{Sprites: len(files), Sheets: tp.SpriteSheetCount(), Paths: paths}
	if manifest, err := json.Marshal(res); err == nil {
		if err := store.Set(ctx, key, manifest, cache.TTLPack); err != nil {
			logger.Warn("failed to update cache", "error", err)
		}
	}
	prog.done(fmt.Sprintf("Packed %d sprites into %d sheet(s)", res.Sprites, res.Sheets))
	return res, nil
}

// cachedResult returns the manifest stored under key if every file it lists
// still exists.
func cachedResult(ctx context.Context, store cache.Cache, key string) (*packResult, bool) {
	data, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var res packResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	for _, p := range res.Paths {
		if !filepath.IsAbs(p) {
			return nil, false
		}
		if _, err := os.Stat(p); err != nil {
			return nil, false
		}
	}
	res.Cached = true
	return &res, true
}

func printPackResult(res *packResult) {
	if res.Cached {
		printSuccess("Up to date: %d sprites in %d sheet(s)", res.Sprites, res.Sheets)
	} else {
		printSuccess("Packed %d sprites into %d sheet(s)", res.Sprites, res.Sheets)
	}
	printStats(res.Sprites, res.Sheets, res.Cached)
	preview := ""
	for _, p := range res.Paths {
		printFile(p)
		if preview == "" && strings.HasSuffix(p, packer.DefaultTextureExtension) {
			preview = p
		}
	}
	if preview != "" {
		printNextStep("Preview", appName+" preview "+preview)
	}
}
