package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"autoborder/internal/border"
	"autoborder/internal/brush"
	"autoborder/internal/catalog"
	"autoborder/internal/editor"
	"autoborder/internal/maps"
	"autoborder/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	cat := catalog.MustDefault()

	run := func(usage string, fn func(io.Writer, *catalog.Catalog, string) error) {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools "+usage)
			os.Exit(1)
		}
		if err := fn(os.Stdout, cat, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools validate <layouts-dir>")
			os.Exit(1)
		}
		os.Exit(runValidate(os.Stdout, cat, args[0]))
	case "viz":
		run("viz <layout-file>", runViz)
	case "stats":
		run("stats <layout-file>", runStats)
	case "borders":
		run("borders <layout-file>", runBorders)
	case "all":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools all <layouts-dir>")
			os.Exit(1)
		}
		os.Exit(runAll(os.Stdout, cat, args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: maptools <command> <path>

Commands:
  validate <layouts-dir>   Check every layout's legend against the brush catalog
  viz      <layout-file>   Border a layout and draw it in 24-bit color
  stats    <layout-file>   Show layer distribution and emitted items by kind
  borders  <layout-file>   List the border run of every bordered tile
  all      <layouts-dir>   Run validate + viz + stats for all layouts`)
}

// build paints and borders l with a fixed seed so output is reproducible.
func build(cat *catalog.Catalog, l *maps.Layout) (*editor.Document, error) {
	eng := border.NewEngine(cat.Registry, nil, rand.New(rand.NewSource(1)), nil)
	return editor.Build(l, eng, rand.New(rand.NewSource(1)))
}

// --- validate ---

// validateLayout returns every legend problem of l: unknown brush names,
// names used in the wrong layer, and optional flags without ground.
func validateLayout(cat *catalog.Catalog, l *maps.Layout) []string {
	var problems []string
	check := func(i int, layer, name string, ok func(brush.BrushID) bool) {
		if name == "" {
			return
		}
		id, err := cat.Registry.Lookup(name)
		if err != nil {
			problems = append(problems, fmt.Sprintf("legend %d: %s %q: %v", i, layer, name, err))
			return
		}
		if !ok(id) {
			problems = append(problems, fmt.Sprintf("legend %d: %q is not a %s brush", i, name, layer))
		}
	}
	reg := cat.Registry
	for i, layer := range l.Legend {
		check(i, "ground", layer.Ground, func(id brush.BrushID) bool { return reg.Ground(id) != nil })
		check(i, "wall", layer.Wall, func(id brush.BrushID) bool { return reg.Wall(id) != nil })
		check(i, "carpet", layer.Carpet, func(id brush.BrushID) bool { return reg.Carpet(id) != nil })
		check(i, "table", layer.Table, func(id brush.BrushID) bool { return reg.Table(id) != nil })
		if layer.Optional && layer.Ground == "" {
			problems = append(problems, fmt.Sprintf("legend %d: optional border without ground", i))
		}
	}
	return problems
}

func runValidate(w io.Writer, cat *catalog.Catalog, dir string) int {
	all, err := maps.LoadLayouts(dir)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	errors := 0
	for _, name := range names {
		l := all[name]
		fmt.Fprintf(w, "Validating %q...\n", name)
		problems := validateLayout(cat, l)
		for _, p := range problems {
			fmt.Fprintf(w, "  ERROR: %s\n", p)
		}
		errors += len(problems)
		if len(problems) == 0 {
			fmt.Fprintf(w, "  OK (%dx%d, %d legend entries)\n", l.Width, l.Height, len(l.Legend))
		}
	}

	if errors > 0 {
		fmt.Fprintf(w, "\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Fprintf(w, "\nAll %d layouts valid\n", len(all))
	return 0
}

// --- viz ---

func runViz(w io.Writer, cat *catalog.Catalog, path string) error {
	l, err := maps.LoadLayout(path)
	if err != nil {
		return err
	}
	doc, err := build(cat, l)
	if err != nil {
		return err
	}
	m := doc.Map()

	fmt.Fprintf(w, "%s (%dx%d)\n", m.Name, m.Width, m.Height)
	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		sb.Reset()
		for x := 0; x < m.Width; x++ {
			for _, c := range render.TileCells(cat, m.Tile(x, y, 0)) {
				render.WriteCellSGR(&sb, c)
			}
		}
		sb.WriteString(render.Reset)
		fmt.Fprintln(w, sb.String())
	}
	return nil
}

// --- stats ---

func runStats(w io.Writer, cat *catalog.Catalog, path string) error {
	l, err := maps.LoadLayout(path)
	if err != nil {
		return err
	}
	doc, err := build(cat, l)
	if err != nil {
		return err
	}

	total := l.Width * l.Height
	fmt.Fprintf(w, "%s (%dx%d = %d cells)\n\nLayers:\n", l.Name, l.Width, l.Height, total)

	counts := make(map[string]int)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			layer, ok := l.LayerAt(x, y)
			if !ok {
				counts["(empty)"]++
				continue
			}
			counts[layerName(layer)]++
		}
	}
	printCounts(w, counts, total)

	items := make(map[string]int)
	bordered := 0
	doc.Map().Each(func(t *maps.Tile) {
		hasBorder := false
		for _, it := range t.Items() {
			typ, ok := cat.Registry.ItemType(it.ID)
			if !ok {
				items["unknown"]++
				continue
			}
			items[typ.Kind.String()]++
			hasBorder = hasBorder || typ.IsBorder()
		}
		if hasBorder {
			bordered++
		}
	})
	fmt.Fprintf(w, "\nItems:\n")
	printCounts(w, items, 0)
	fmt.Fprintf(w, "\nBordered tiles: %d/%d (%.1f%%)\n", bordered, total, pct(bordered, total))
	return nil
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
		name += "*"
	}
	return name
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// printCounts prints counts sorted by count descending. A zero total
// skips the percentage bar.
func printCounts(w io.Writer, counts map[string]int, total int) {
	type entry struct {
		name  string
		count int
	}
	sorted := make([]entry, 0, len(counts))
	for name, count := range counts {
		sorted = append(sorted, entry{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	for _, e := range sorted {
		if total == 0 {
			fmt.Fprintf(w, "  %-24s %5d\n", e.name, e.count)
			continue
		}
		p := pct(e.count, total)
		bar := strings.Repeat("█", int(p/2))
		fmt.Fprintf(w, "  %-24s %5d (%5.1f%%) %s\n", e.name, e.count, p, bar)
	}
}

// --- borders ---

func runBorders(w io.Writer, cat *catalog.Catalog, path string) error {
	l, err := maps.LoadLayout(path)
	if err != nil {
		return err
	}
	doc, err := build(cat, l)
	if err != nil {
		return err
	}
	doc.Map().Each(func(t *maps.Tile) {
		var run []string
		for _, it := range t.Items() {
			typ, ok := cat.Registry.ItemType(it.ID)
			if !ok || !typ.IsBorder() {
				break
			}
			run = append(run, fmt.Sprintf("%d %s", it.ID, typ.Name))
		}
		if len(run) == 0 {
			return
		}
		p := t.Position()
		fmt.Fprintf(w, "(%d,%d) %s: %s\n", p.X, p.Y, render.DescribeTile(cat, t), strings.Join(run, ", "))
	})
	return nil
}

// --- all ---

func runAll(w io.Writer, cat *catalog.Catalog, dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(w, "Error reading directory: %v\n", err)
		return 1
	}

	// Run validate first
	fmt.Fprintln(w, "=== VALIDATE ===")
	if code := runValidate(w, cat, dir); code != 0 {
		return code
	}

	// Then viz + stats for each layout
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fmt.Fprintf(w, "\n=== VIZ: %s ===\n", entry.Name())
		if err := runViz(w, cat, path); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(w, "\n=== STATS: %s ===\n", entry.Name())
		if err := runStats(w, cat, path); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	return 0
}
