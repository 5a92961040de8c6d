package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"autoborder/internal/border"
	"autoborder/internal/catalog"
	"autoborder/internal/editor"
	"autoborder/internal/maps"
)

func main() {
	layoutPath := flag.String("layout", "", "layout file (default: built-in layout)")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	logPath := flag.String("log", "", "write the edit log to this file")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "", log.Ltime|log.Lshortfile)
	}

	layout := maps.DefaultLayout()
	if *layoutPath != "" {
		l, err := maps.LoadLayout(*layoutPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		layout = l
	}

	cat, err := catalog.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	eng := border.NewEngine(cat.Registry, nil, rand.New(rand.NewSource(*seed)), logger)
	doc, err := editor.Build(layout, eng, rand.New(rand.NewSource(*seed+1)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	loop := editor.NewLoop(doc, cat, logger)
	go loop.Run()
	defer loop.Stop()

	name := os.Getenv("USER")
	if name == "" {
		name = "local"
	}
	id, renderCh := loop.AddSession(name)
	defer loop.RemoveSession(id)

	run(screen, cat, loop.EditChan(), id, renderCh)
}

// run pumps key events into the edit loop and draws every snapshot until
// the user quits.
func run(screen tcell.Screen, cat *catalog.Catalog, editCh chan<- editor.Edit, id string, renderCh editor.RenderChan) {
	eventCh := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventCh <- ev
		}
	}()

	var last editor.State
	var lastVersion uint64
	redraw := true
	for {
		select {
		case ev := <-eventCh:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				action, key := keyAction(ev.Key(), ev.Rune())
				switch action {
				case editor.ActionQuit:
					return
				case editor.ActionNone:
				default:
					editCh <- editor.Edit{SessionID: id, Action: action, Key: key}
				}
			case *tcell.EventResize:
				screen.Sync()
				redraw = true
			}

		case st, ok := <-renderCh:
			if !ok {
				return
			}
			// Cursor moves do not bump the version, so compare sessions too.
			if redraw || st.Version != lastVersion || cursorMoved(last, st, id) {
				draw(screen, cat, st, id)
				screen.Show()
				redraw = false
			}
			last, lastVersion = st, st.Version
		}
	}
}

func cursorMoved(prev, cur editor.State, id string) bool {
	find := func(st editor.State) (editor.SessionSnapshot, bool) {
		for _, s := range st.Sessions {
			if s.ID == id {
				return s, true
			}
		}
		return editor.SessionSnapshot{}, false
	}
	a, okA := find(prev)
	b, okB := find(cur)
	return okA != okB || a != b
}
