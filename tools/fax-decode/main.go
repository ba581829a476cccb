// seehuhn.de/go/fax - decoding CCITT Group 3 and Group 4 fax data
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/fax"
	"seehuhn.de/go/fax/tools/internal/buildinfo"
	"seehuhn.de/go/fax/tools/internal/profile"
)

var (
	kArg       = flag.Int("k", -1, "coding scheme: -1 for Group 4, 0 for Group 3")
	widthArg   = flag.Int("w", 1728, "image width in pixels")
	rowsArg    = flag.Int("rows", 0, "maximum number of rows (0 = until the end marker)")
	formatArg  = flag.String("format", "png", "output format: png, bmp or tiff")
	outDirArg  = flag.String("o", "", "write output files to `dir` (default: next to the input)")
	linesArg   = flag.Bool("lines", false, "print the change positions of every line instead of writing an image")
	previewArg = flag.Bool("preview", false, "show a text preview of the image on the terminal")
	jobsArg    = flag.Int("j", 4, "number of files to decode in parallel")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "fax-decode \u2014 decode CCITT Group 3 and Group 4 fax data\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("fax-decode"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  fax-decode [options] <file>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  file   one or more files containing raw fax data\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fax-decode -w 2480 page.g4\n")
		fmt.Fprintf(os.Stderr, "  fax-decode -k 0 -format tiff -o out/ *.g3\n")
		fmt.Fprintf(os.Stderr, "  fax-decode -lines -w 64 small.g4\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	enc, ok := encoders[*formatArg]
	if !ok {
		return fmt.Errorf("unknown output format %q", *formatArg)
	}
	params := &fax.Params{
		K:       *kArg,
		Columns: *widthArg,
		MaxRows: *rowsArg,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	previewWidth := 0
	if *previewArg {
		previewWidth = terminalWidth()
	}

	files := flag.Args()
	reports := make([]bytes.Buffer, len(files))
	g := &errgroup.Group{}
	g.SetLimit(max(*jobsArg, 1))
	for i, fname := range files {
		g.Go(func() error {
			out := &reports[i]
			if *linesArg {
				return dumpLines(out, fname, params)
			}
			return convert(out, fname, params, enc, previewWidth)
		})
	}
	err = g.Wait()

	for i := range reports {
		os.Stdout.Write(reports[i].Bytes())
	}
	return err
}

type encoder struct {
	ext    string
	encode func(io.Writer, image.Image) error
}

var encoders = map[string]encoder{
	"png": {".png", png.Encode},
	"bmp": {".bmp", bmp.Encode},
	"tiff": {".tif", func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}},
}

// convert decodes one input file and writes it as an image file.
func convert(out io.Writer, fname string, params *fax.Params, enc encoder, previewWidth int) error {
	fd, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fd.Close()

	img, decodeErr := fax.Decode(fd, params)
	if img == nil {
		return fmt.Errorf("%s: %w", fname, decodeErr)
	}
	if decodeErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", fname, decodeErr)
	}
	if img.Bounds().Empty() {
		return fmt.Errorf("%s: no image data", fname)
	}

	outName := outputName(fname, enc.ext)
	o, err := renameio.TempFile("", outName)
	if err != nil {
		return err
	}
	defer o.Cleanup()
	if err := enc.encode(o, img); err != nil {
		return err
	}
	if err := o.CloseAtomicallyReplace(); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	b := img.Bounds()
	p.Fprintf(out, "%s: %d×%d pixels, %d black, written to %s\n",
		fname, b.Dx(), b.Dy(), countBlack(img), outName)
	if previewWidth > 0 {
		writePreview(out, img, previewWidth)
	}
	return nil
}

// dumpLines prints the change positions of every line of one input file.
func dumpLines(out io.Writer, fname string, params *fax.Params) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# %s\n", fname)
	row := 0
	printLine := func(line []int) {
		fmt.Fprintf(out, "%d: %v\n", row, line)
		row++
	}

	r := bytes.NewReader(data)
	if params.K < 0 {
		err = fax.DecodeG4(r, params.Columns, params.MaxRows, printLine)
	} else {
		err = fax.DecodeG3(r, printLine)
	}
	if err != nil {
		return fmt.Errorf("%s: line %d: %w", fname, row, err)
	}
	return nil
}

func outputName(fname, ext string) string {
	base := strings.TrimSuffix(fname, filepath.Ext(fname)) + ext
	if *outDirArg != "" {
		base = filepath.Join(*outDirArg, filepath.Base(base))
	}
	return base
}

func countBlack(img *image.Paletted) int {
	n := 0
	for _, c := range img.Pix {
		if fax.Color(c) == fax.Black {
			n++
		}
	}
	return n
}

// terminalWidth returns the number of columns available for the preview,
// or 0 if standard output is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 2 {
		return 80
	}
	return width - 1
}

// writePreview draws the image using one character for every block of
// pixels.  Character cells are about twice as high as wide.
func writePreview(w io.Writer, img *image.Paletted, cols int) {
	b := img.Bounds()
	scale := (b.Dx() + cols - 1) / cols
	scale = max(scale, 1)

	var sb strings.Builder
	for y0 := b.Min.Y; y0 < b.Max.Y; y0 += 2 * scale {
		for x0 := b.Min.X; x0 < b.Max.X; x0 += scale {
			block := image.Rect(x0, y0, x0+scale, y0+2*scale).Intersect(b)
			sb.WriteByte(previewChar(img, block))
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

func previewChar(img *image.Paletted, block image.Rectangle) byte {
	black := 0
	for y := block.Min.Y; y < block.Max.Y; y++ {
		for x := block.Min.X; x < block.Max.X; x++ {
			if fax.Color(img.ColorIndexAt(x, y)) == fax.Black {
				black++
			}
		}
	}
	total := block.Dx() * block.Dy()
	switch {
	case black == 0:
		return ' '
	case 4*black < total:
		return '.'
	case 4*black < 3*total:
		return '+'
	default:
		return '#'
	}
}
