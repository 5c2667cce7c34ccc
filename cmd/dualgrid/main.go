package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rywk/dualgrid/pkg/autotile"
	"github.com/rywk/dualgrid/pkg/config"
	"github.com/rywk/dualgrid/pkg/constants"
	"github.com/rywk/dualgrid/pkg/ground"
	"github.com/rywk/dualgrid/pkg/logger"
	"github.com/rywk/dualgrid/pkg/mapfile"
	"github.com/rywk/dualgrid/pkg/maps"
	"github.com/rywk/dualgrid/pkg/terrain"
	"github.com/rywk/dualgrid/pkg/typ"
)

// legend maps the ASCII map characters to terrains.
var legend = map[rune]terrain.Type{
	'~': terrain.Sea,
	'h': terrain.HotSpringWater,
	's': terrain.Beach,
	'q': terrain.Quarry,
	'd': terrain.Dirt,
	'r': terrain.DirtRoad,
	'a': terrain.Asphalt,
	'.': terrain.Grass,
	't': terrain.Tundra,
	'A': terrain.Alpine,
	'F': terrain.Forest,
	'x': terrain.Tilled,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "encode":
		err = runEncode(args)
	case "gen":
		err = runGen(args)
	case "dump":
		err = runDump(args, os.Stdout)
	case "coverage":
		err = runCoverage(args, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: dualgrid <command> [flags] <args>

Commands:
  encode   [-default T] <rows.txt> <out.map>        Encode an ASCII map
  gen      [-seed N -w W -h H] <out.map>            Generate an island
  dump     [-config f] <map-file> [x0 y0 x1 y1]     Print resolved layers
  coverage [-config f] <map-file>                   List transitions with no art

Legend:`)
	keys := make([]rune, 0, len(legend))
	for r := range legend {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, r := range keys {
		fmt.Fprintf(os.Stderr, "  %c  %s\n", r, legend[r])
	}
}

func readRows(r io.Reader) ([]string, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, line)
	}
	return rows, sc.Err()
}

// encodeRows builds a map as wide as the longest row. Short rows are
// padded with def.
func encodeRows(rows []string, def terrain.Type) (*mapfile.Map, error) {
	s, err := ground.FromRows(rows, legend, def)
	if err != nil {
		return nil, err
	}
	w := 0
	for _, row := range rows {
		w = max(w, len([]rune(row)))
	}
	return mapfile.FromSource(s, w, len(rows), def), nil
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	def := fs.String("default", string(terrain.Grass), "terrain outside the map")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: dualgrid encode [-default T] <rows.txt> <out.map>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	rows, err := readRows(f)
	f.Close()
	if err != nil {
		return err
	}
	m, err := encodeRows(rows, terrain.Type(*def))
	if err != nil {
		return err
	}
	if err := mapfile.Save(fs.Arg(1), m); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %dx%d, %d terrains\n", fs.Arg(1), m.Width, m.Height, len(m.Palette))
	return nil
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	seed := fs.Uint64("seed", 1, "noise seed")
	w := fs.Int("w", constants.WorldX, "width in tiles")
	h := fs.Int("h", constants.WorldY, "height in tiles")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: dualgrid gen [-seed N -w W -h H] <out.map>")
	}
	g, err := maps.Island(maps.Params{Seed: *seed, Width: *w, Height: *h})
	if err != nil {
		return err
	}
	m := mapfile.FromSource(g, *w, *h, g.Default())
	if err := mapfile.Save(fs.Arg(0), m); err != nil {
		return err
	}
	fmt.Printf("wrote %s: %dx%d, %d terrains\n", fs.Arg(0), m.Width, m.Height, len(m.Palette))
	return nil
}

// loadConfig also starts logging. The caller closes the returned closer.
func loadConfig(path string) (*config.Config, *autotile.Resolver, io.Closer, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, nil, err
	}
	closer, err := logger.Initialize(cfg.Logging)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, w := range cfg.Tiles.Validate() {
		logger.Warning("tiles config", "warning", w)
	}
	res, err := cfg.Tiles.Resolver()
	if err != nil {
		closer.Close()
		return nil, nil, nil, err
	}
	return cfg, res, closer, nil
}

func parseRect(args []string, m *mapfile.Map) (typ.Rect, error) {
	if len(args) == 0 {
		return typ.R(0, 0, m.Width, m.Height), nil
	}
	if len(args) != 4 {
		return typ.Rect{}, fmt.Errorf("region needs x0 y0 x1 y1, got %d values", len(args))
	}
	var v [4]int
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return typ.Rect{}, fmt.Errorf("region: %w", err)
		}
		v[i] = n
	}
	return typ.R(v[0], v[1], v[2], v[3]), nil
}

func runDump(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	cfgPath := fs.String("config", "client.yaml", "config file")
	fs.Parse(args)
	if fs.NArg() != 1 && fs.NArg() != 5 {
		return fmt.Errorf("usage: dualgrid dump [-config f] <map-file> [x0 y0 x1 y1]")
	}
	cfg, res, closer, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	defer closer.Close()
	m, err := mapfile.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	rect, err := parseRect(fs.Args()[1:], m)
	if err != nil {
		return err
	}
	return dump(out, res, m, rect, cfg.Render.Workers)
}

func dump(out io.Writer, res *autotile.Resolver, src ground.Source, rect typ.Rect, workers int) error {
	placed, err := res.ResolveRegion(context.Background(), rect.Image(), src, workers)
	if err != nil {
		return err
	}
	for _, p := range placed {
		fmt.Fprintf(out, "%d,%d\n", p.X, p.Y)
		for _, l := range p.Layers {
			fmt.Fprintf(out, "  %s/%s %s pattern=%s cell=%d,%d", l.Primary, l.Secondary, l.Tileset.Name, l.Pattern, l.Cell.Row, l.Cell.Col)
			if l.Reversed {
				fmt.Fprint(out, " reversed")
			}
			if l.FlipH {
				fmt.Fprint(out, " flipH")
			}
			if l.Clipped() {
				clip := make([]string, len(l.Clip))
				for i, c := range l.Clip {
					clip[i] = c.String()
				}
				fmt.Fprintf(out, " clip=%s", strings.Join(clip, ","))
			}
			fmt.Fprintln(out)
		}
	}
	fmt.Fprintf(out, "%d cells with layers\n", len(placed))
	return nil
}

func runCoverage(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("coverage", flag.ExitOnError)
	cfgPath := fs.String("config", "client.yaml", "config file")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: dualgrid coverage [-config f] <map-file>")
	}
	_, res, closer, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	defer closer.Close()
	m, err := mapfile.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	missing := coverage(res, m, typ.R(-1, -1, m.Width, m.Height))
	if len(missing) == 0 {
		fmt.Fprintln(out, "every transition has art")
		return nil
	}
	for _, mc := range missing {
		fmt.Fprintf(out, "%-24s %d cells\n", mc.pair, mc.cells)
	}
	return nil
}

type missingPair struct {
	pair  autotile.Pair
	cells int
}

// coverage counts, per adjacent terrain pair with no registered sheet,
// the cells in rect that would need it. Pairs are keyed higher first.
func coverage(res *autotile.Resolver, src ground.Source, rect typ.Rect) []missingPair {
	table := res.Table()
	counts := make(map[autotile.Pair]int)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			seen := make(map[terrain.Type]bool, 4)
			var types []terrain.Type
			for _, p := range []typ.P{{X: x, Y: y}, {X: x + 1, Y: y}, {X: x, Y: y + 1}, {X: x + 1, Y: y + 1}} {
				t := table.Canonical(src.TerrainAt(p.X, p.Y))
				if !seen[t] {
					seen[t] = true
					types = append(types, t)
				}
			}
			table.Sort(types)
			for i := 0; i+1 < len(types); i++ {
				if _, _, ok := res.Registry().Lookup(types[i+1], types[i]); !ok {
					counts[autotile.Pair{Primary: types[i+1], Secondary: types[i]}]++
				}
			}
		}
	}
	out := make([]missingPair, 0, len(counts))
	for p, n := range counts {
		out = append(out, missingPair{pair: p, cells: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].cells != out[j].cells {
			return out[i].cells > out[j].cells
		}
		return out[i].pair.String() < out[j].pair.String()
	})
	return out
}
