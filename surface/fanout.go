package surface

import "sync"

// Fanout forwards encoder updates to every attached bank. Banks can be
// attached and detached from any goroutine; a new bank is brought up to
// date with the last mode and position of every encoder.
type Fanout struct {
	mu    sync.Mutex
	banks map[string]Encoders
	modes [ParameterCount + 1]modeState
	pos   [ParameterCount + 1]float32
}

type modeState struct {
	set   bool
	mode  EncoderMode
	steps int
}

func NewFanout() *Fanout {
	return &Fanout{banks: make(map[string]Encoders)}
}

// Attach adds a bank under key, replacing any bank already there.
func (f *Fanout) Attach(key string, enc Encoders) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banks[key] = enc
	for id, m := range f.modes {
		if !m.set {
			continue
		}
		enc.SetMode(id, m.mode, m.steps)
		enc.SetPosition(id, f.pos[id])
	}
}

func (f *Fanout) Detach(key string) {
	f.mu.Lock()
	delete(f.banks, key)
	f.mu.Unlock()
}

func (f *Fanout) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.banks)
}

func (f *Fanout) SetMode(id int, mode EncoderMode, steps int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id >= 0 && id < len(f.modes) {
		f.modes[id] = modeState{set: true, mode: mode, steps: steps}
	}
	for _, enc := range f.banks {
		enc.SetMode(id, mode, steps)
	}
}

func (f *Fanout) SetPosition(id int, pos float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id >= 0 && id < len(f.pos) {
		f.pos[id] = pos
	}
	for _, enc := range f.banks {
		enc.SetPosition(id, pos)
	}
}
