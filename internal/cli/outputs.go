package cli

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chocolatl/cocos-texture-packer/pkg/packer"
)

// outputFilter recognizes the textures a pack run writes, so that packing a
// directory into itself does not pick up the previous sheets as sprites.
type outputFilter struct {
	dir   string
	stems []*regexp.Regexp
}

// newOutputFilter matches <output>/<name>.png and every name the sheet name
// format can produce, e.g. <output>/<name>-<n>.png.
func newOutputFilter(opts packOpts) (*outputFilter, error) {
	dir, err := filepath.Abs(opts.output)
	if err != nil {
		return nil, err
	}
	f := &outputFilter{dir: dir}
	f.stems = append(f.stems, regexp.MustCompile("^"+regexp.QuoteMeta(opts.name)+"$"))

	tmpl := opts.nameFormat
	if tmpl == "" {
		tmpl = defaultNameFormat
	}
	expr := strings.NewReplacer(
		regexp.QuoteMeta("{name}"), regexp.QuoteMeta(opts.name),
		regexp.QuoteMeta("{index}"), `\d+`,
	).Replace(regexp.QuoteMeta(tmpl))
	re, err := regexp.Compile("^" + expr + "$")
	if err != nil {
		return nil, err
	}
	f.stems = append(f.stems, re)
	return f, nil
}

// Match reports whether path is a texture this run may write.
func (f *outputFilter) Match(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil || filepath.Dir(abs) != f.dir {
		return false
	}
	base := filepath.Base(abs)
	if !strings.EqualFold(filepath.Ext(base), packer.DefaultTextureExtension) {
		return false
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, re := range f.stems {
		if re.MatchString(stem) {
			return true
		}
	}
	return false
}
