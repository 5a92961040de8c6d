package editor

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"autoborder/internal/catalog"
	"autoborder/internal/maps"
)

const (
	TickRate     = 20 // ticks per second
	EditChanSize = 256
)

// State is a snapshot sent to each session for rendering. Map is a
// private copy shared by every receiver and must not be modified.
type State struct {
	Sessions []SessionSnapshot
	Map      *maps.Map
	Tick     uint64
	Version  uint64
}

// RenderChan is the per-session channel that receives state snapshots.
type RenderChan chan State

// Loop is the single writer of a document.
type Loop struct {
	doc       *Document
	cat       *catalog.Catalog
	editCh    chan Edit
	logger    *log.Logger
	tickCount uint64
	version   uint64
	published *maps.Map
	nextColor int

	mu          sync.RWMutex
	sessions    map[string]*Session
	renderChans map[string]RenderChan

	stopCh chan struct{}
}

// NewLoop creates an edit loop over doc. A nil logger discards output.
func NewLoop(doc *Document, cat *catalog.Catalog, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Loop{
		doc:         doc,
		cat:         cat,
		editCh:      make(chan Edit, EditChanSize),
		logger:      logger,
		published:   doc.Map().Clone(),
		sessions:    make(map[string]*Session),
		renderChans: make(map[string]RenderChan),
		stopCh:      make(chan struct{}),
	}
}

// EditChan returns the shared channel sessions send edits on.
func (l *Loop) EditChan() chan<- Edit {
	return l.editCh
}

// AddSession registers an editing session and returns its id and render
// channel. The cursor starts in the middle of the map with the first
// palette brush.
func (l *Loop) AddSession(name string) (string, RenderChan) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.NewString()
	s := &Session{
		ID:    id,
		Name:  name,
		X:     l.published.Width / 2,
		Y:     l.published.Height / 2,
		Color: l.nextColor % numCursorColors,
	}
	l.nextColor++
	if len(l.cat.Palette) > 0 {
		s.Brush = l.cat.Palette[0]
	}
	l.sessions[id] = s
	ch := make(RenderChan, 2)
	l.renderChans[id] = ch
	l.logger.Printf("session %s (%s) joined", name, id)
	return id, ch
}

// Watch registers a read-only observer that receives snapshots but has no
// cursor.
func (l *Loop) Watch() (string, RenderChan) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.NewString()
	ch := make(RenderChan, 2)
	l.renderChans[id] = ch
	return id, ch
}

// RemoveSession unregisters a session or observer and closes its channel.
func (l *Loop) RemoveSession(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.sessions[id]; ok {
		l.logger.Printf("session %s (%s) left", s.Name, id)
		delete(l.sessions, id)
	}
	if ch, ok := l.renderChans[id]; ok {
		close(ch)
		delete(l.renderChans, id)
	}
}

// Run starts the loop. Blocks until Stop is called.
func (l *Loop) Run() {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.tick()
		}
	}
}

// Stop shuts down the loop.
func (l *Loop) Stop() {
	close(l.stopCh)
}

func (l *Loop) tick() {
	dirty := mapset.New[maps.Position]()
	refresh := false

	// Drain all pending edits
drain:
	for {
		select {
		case ev := <-l.editCh:
			if l.apply(ev, dirty) {
				refresh = true
			}
		default:
			break drain
		}
	}

	switch {
	case refresh:
		n := l.doc.BorderAll()
		l.logger.Printf("refreshed %d tiles of %q", n, l.doc.Map().Name)
		l.version++
	case dirty.Size() > 0:
		l.doc.Reborder(dirty)
		l.version++
	}
	if refresh || dirty.Size() > 0 {
		l.published = l.doc.Map().Clone()
	}
	l.tickCount++

	l.mu.RLock()
	state := State{
		Sessions: make([]SessionSnapshot, 0, len(l.sessions)),
		Map:      l.published,
		Tick:     l.tickCount,
		Version:  l.version,
	}
	for _, s := range l.sessions {
		state.Sessions = append(state.Sessions, s.Snapshot())
	}

	// Non-blocking send to each render channel
	for _, ch := range l.renderChans {
		select {
		case ch <- state:
		default:
			// Drop frame for slow client
		}
	}
	l.mu.RUnlock()
}

// apply performs one edit, adding every tile it changed and their
// neighbours to dirty. It reports whether a full refresh was requested.
func (l *Loop) apply(ev Edit, dirty mapset.Set[maps.Position]) bool {
	l.mu.RLock()
	s, ok := l.sessions[ev.SessionID]
	l.mu.RUnlock()
	if !ok {
		return false
	}

	m := l.doc.Map()
	pos := maps.Position{X: s.X, Y: s.Y}
	changed := false
	switch ev.Action {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		x, y := s.X, s.Y
		switch ev.Action {
		case ActionUp:
			y--
		case ActionDown:
			y++
		case ActionLeft:
			x--
		case ActionRight:
			x++
		}
		if m.InBounds(x, y, 0) {
			s.X, s.Y = x, y
		}
	case ActionSelect:
		if e, ok := l.cat.Entry(ev.Key); ok {
			s.Brush = e
		}
	case ActionPaint:
		changed = l.doc.Paint(pos, s.Brush.Brush)
	case ActionErase:
		changed = l.doc.Erase(pos)
	case ActionToggleOptional:
		changed = l.doc.ToggleOptional(pos)
	case ActionRefresh:
		return true
	}
	if changed {
		for _, p := range Around(pos) {
			dirty.Put(p)
		}
	}
	return false
}
