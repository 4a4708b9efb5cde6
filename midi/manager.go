package midi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-surface/debug"
)

// DeviceEvent is emitted when a port pair connects or disconnects
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// Match selects ports by case-insensitive substring. An empty Knobs
// disables the knob box.
type Match struct {
	Host  string
	Knobs string
	Map   KnobMap
}

// DeviceManager handles hot-plug detection of the host link and knob box
type DeviceManager struct {
	match       Match
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
}

// NewDeviceManager creates a device manager polling every pollRate
func NewDeviceManager(match Match, pollRate time.Duration) *DeviceManager {
	if pollRate <= 0 {
		pollRate = time.Second
	}
	return &DeviceManager{
		match:       match,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    pollRate,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Host returns the connected host link (or nil)
func (dm *DeviceManager) Host() *HostPort {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, c := range dm.controllers {
		if hp, ok := c.(*HostPort); ok {
			return hp
		}
	}
	return nil
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return nil
		case <-ticker.C:
			dm.scan()
		}
	}
}

// Ports lists the names of all MIDI inputs and outputs.
func Ports() (ins, outs []string) {
	for _, p := range gomidi.GetInPorts() {
		ins = append(ins, p.String())
	}
	for _, p := range gomidi.GetOutPorts() {
		outs = append(outs, p.String())
	}
	return ins, outs
}

// OpenHost opens the first port pair matching pattern as a host link,
// without hot-plug tracking.
func OpenHost(pattern string) (*HostPort, error) {
	ins, outs := gomidi.GetInPorts(), gomidi.GetOutPorts()
	in := findPort(ins, pattern)
	if in < 0 {
		return nil, fmt.Errorf("no midi input matches %q", pattern)
	}
	var out drivers.Out
	if i := findPort(outs, pattern); i >= 0 {
		out = outs[i]
	}
	return NewHostPort(ControllerHost.String()+":"+ins[in].String(), ins[in], out)
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	var result portsResult
	select {
	case result = <-ch:
	case <-time.After(3 * time.Second):
		debug.Warn("midi", "port scan timed out")
		return
	}

	seenIDs := make(map[string]bool)
	dm.attach(result.inPorts, result.outPorts, dm.match.Host, ControllerHost, seenIDs)
	if dm.match.Knobs != "" {
		dm.attach(result.inPorts, result.outPorts, dm.match.Knobs, ControllerKnobs, seenIDs)
	}

	// Check for disconnects
	dm.mu.Lock()
	var removed []string
	for id, c := range dm.controllers {
		if !seenIDs[id] {
			c.Close()
			delete(dm.controllers, id)
			removed = append(removed, id)
		}
	}
	dm.mu.Unlock()

	for _, id := range removed {
		debug.Log("midi", "disconnected %s", id)
		dm.events <- DeviceEvent{Type: DeviceDisconnected, ID: id}
	}
}

// attach opens the first input matching pattern together with its output.
func (dm *DeviceManager) attach(inPorts []drivers.In, outPorts []drivers.Out, pattern string, kind ControllerType, seen map[string]bool) {
	in := findPort(inPorts, pattern)
	if in < 0 {
		return
	}
	id := kind.String() + ":" + inPorts[in].String()
	seen[id] = true

	dm.mu.RLock()
	_, exists := dm.controllers[id]
	dm.mu.RUnlock()
	if exists {
		return
	}

	var outPort drivers.Out
	if out := findPort(outPorts, pattern); out >= 0 {
		outPort = outPorts[out]
	}

	var c Controller
	var err error
	switch kind {
	case ControllerHost:
		c, err = NewHostPort(id, inPorts[in], outPort)
	case ControllerKnobs:
		c, err = NewKnobBox(id, inPorts[in], outPort, dm.match.Map)
	}
	if err != nil {
		debug.Warn("midi", "open %s: %v", id, err)
		delete(seen, id)
		return
	}

	dm.mu.Lock()
	dm.controllers[id] = c
	dm.mu.Unlock()

	debug.Log("midi", "connected %s", id)
	dm.events <- DeviceEvent{Type: DeviceConnected, Controller: c, ID: id}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

type named interface{ String() string }

func findPort[P named](ports []P, pattern string) int {
	if pattern == "" {
		return -1
	}
	for i, p := range ports {
		if matchPort(p.String(), pattern) {
			return i
		}
	}
	return -1
}

func matchPort(name, pattern string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}
