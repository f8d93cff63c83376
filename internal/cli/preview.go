package cli

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/nfnt/resize"
	"github.com/spf13/cobra"

	"github.com/chocolatl/cocos-texture-packer/pkg/imagekit"
)

// errNoInlineImages is returned when the terminal cannot display images.
var errNoInlineImages = errors.New("terminal does not support inline images (kitty, iTerm2, WezTerm or sixel)")

type previewOpts struct {
	maxWidth  uint
	maxHeight uint
	colors    int
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{maxWidth: 512, maxHeight: 512, colors: 64}

	cmd := &cobra.Command{
		Use:   "preview <sheet>",
		Short: "Show a sprite sheet in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imagekit.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			b := img.Bounds()
			printInfo("%s", args[0])
			printKeyValue("size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
			err = printImage(os.Stdout, thumbnail(img, opts.maxWidth, opts.maxHeight), opts.colors)
			if errors.Is(err, errNoInlineImages) {
				printWarning("%v", err)
				return nil
			}
			return err
		},
	}

	cmd.Flags().UintVar(&opts.maxWidth, "max-width", opts.maxWidth, "scale the preview down to this width")
	cmd.Flags().UintVar(&opts.maxHeight, "max-height", opts.maxHeight, "scale the preview down to this height")
	cmd.Flags().IntVar(&opts.colors, "colors", opts.colors, "palette size for sixel terminals")

	return cmd
}

// thumbnail shrinks img to fit maxW x maxH, keeping the aspect ratio.
// Images that already fit are returned unchanged.
func thumbnail(img image.Image, maxW, maxH uint) image.Image {
	b := img.Bounds()
	if uint(b.Dx()) <= maxW && uint(b.Dy()) <= maxH {
		return img
	}
	return resize.Thumbnail(maxW, maxH, img, resize.Lanczos3)
}

// printImage writes img using the best protocol the terminal supports.
func printImage(w io.Writer, img image.Image, colors int) error {
	if rasterm.IsTermKitty() {
		if err := (rasterm.Settings{}).KittyWriteImage(w, img); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}
	if rasterm.IsTermItermWez() {
		if err := (rasterm.Settings{}).ItermWriteImage(w, img); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		if err := (rasterm.Settings{}).SixelWriteImage(w, quantize(img, colors)); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}
	return errNoInlineImages
}

// quantize reduces img to a palette of at most colors entries.
func quantize(img image.Image, colors int) *image.Paletted {
	paletted := image.NewPaletted(img.Bounds(), nil)
	q := gogif.MedianCutQuantizer{NumColor: colors}
	q.Quantize(paletted, img.Bounds(), img, image.Point{})
	return paletted
}
