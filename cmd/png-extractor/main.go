package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rywk/dualgrid/pkg/autotile"
	"github.com/rywk/dualgrid/pkg/constants"
	"github.com/rywk/dualgrid/pkg/sprite"
	"golang.org/x/image/draw"
)

// Splits a transition sheet into one PNG per pattern, for checking art.
func main() {
	scale := flag.Int("scale", 1, "nearest neighbor upscale factor")
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: png-extractor [-scale N] <sheet.png> <out-dir>")
		os.Exit(1)
	}
	if err := run(flag.Arg(0), flag.Arg(1), max(1, *scale)); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}
}

func run(sheetPath, outDir string, scale int) error {
	f, err := os.Open(sheetPath)
	if err != nil {
		return err
	}
	sheet, err := png.Decode(f)
	f.Close()
	if err != nil {
		return err
	}
	if got, want := sheet.Bounds().Size(), sprite.SheetSize(constants.TileSize); got != want {
		return fmt.Errorf("%s is %v, want %v", sheetPath, got, want)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	cells := map[string]autotile.Cell{
		"interior_primary":   autotile.PrimaryInterior,
		"interior_secondary": autotile.SecondaryInterior,
	}
	for p := autotile.PatternNone; p <= autotile.PatternFull; p++ {
		cells["pattern_"+p.String()] = autotile.CellFor(p)
	}
	for name, c := range cells {
		if err := writeCell(filepath.Join(outDir, name+".png"), sheet, c.Source(constants.TileSize).Add(sheet.Bounds().Min), scale); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %d cells to %s\n", len(cells), outDir)
	return nil
}

func writeCell(path string, sheet image.Image, src image.Rectangle, scale int) error {
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()*scale, src.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), sheet, src, draw.Src, nil)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
