package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"autoborder/internal/border"
	"autoborder/internal/catalog"
	"autoborder/internal/editor"
	"autoborder/internal/maps"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	size := flag.String("size", "64x40", "layout size as WxH")
	name := flag.String("name", "Wilderness", "layout name")
	ruins := flag.Int("ruins", 3, "number of walled ruins to try placing")
	out := flag.String("out", "", "output file (default: stdout)")
	check := flag.Bool("check", false, "border the result twice and report any difference")
	flag.Parse()

	w, h, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	fmt.Fprintf(os.Stderr, "Generating %dx%d layout %q (seed %d)...\n", w, h, *name, *seed)

	l := Generate(Options{Name: *name, Width: w, Height: h, Seed: *seed, Ruins: *ruins})

	data, err := l.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(data)
		os.Stdout.WriteString("\n")
	} else {
		if err := os.WriteFile(*out, append(data, '\n'), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", *out, len(data))
	}

	// Print cell distribution summary
	counts := Distribution(l)
	total := w * h
	fmt.Fprintf(os.Stderr, "\nCell distribution:\n")
	if c := counts[hole]; c > 0 {
		fmt.Fprintf(os.Stderr, "  %-22s %5d (%5.1f%%)\n", "hole", c, float64(c)/float64(total)*100)
	}
	for i, layer := range l.Legend {
		if c, ok := counts[i]; ok {
			fmt.Fprintf(os.Stderr, "  %-22s %5d (%5.1f%%)\n", layerName(layer), c, float64(c)/float64(total)*100)
		}
	}

	if *check {
		if err := soak(l, *seed); err != nil {
			fmt.Fprintf(os.Stderr, "\nFAIL: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "\nBorders are stable")
	}
}

func layerName(l maps.Layer) string {
	parts := []string{l.Ground}
	for _, s := range []string{l.Wall, l.Carpet, l.Table} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	name := strings.Join(parts, "+")
	if l.Optional {
		name += " (optional)"
	}
	return name
}

// soak builds l, borders every tile a second time and reports the first
// tile whose stack changed.
func soak(l *maps.Layout, seed int64) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, "engine: ", 0)
	eng := border.NewEngine(cat.Registry, nil, rand.New(rand.NewSource(seed)), logger)
	doc, err := editor.Build(l, eng, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	before := doc.Map().Clone()
	doc.BorderAll()

	var diff error
	before.Each(func(t *maps.Tile) {
		if diff != nil {
			return
		}
		p := t.Position()
		a, b := t.ItemIDs(), doc.Map().Tile(p.X, p.Y, p.Z).ItemIDs()
		if fmt.Sprint(a) != fmt.Sprint(b) {
			diff = fmt.Errorf("tile (%d,%d) changed on second pass: %v -> %v", p.X, p.Y, a, b)
		}
	})
	return diff
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 10 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 10)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 10 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 10)", parts[1])
	}
	return w, h, nil
}
