package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-surface/protocol"
)

func TestReconcileMatrix(t *testing.T) {
	cases := []struct {
		name        string
		typ         SlotType
		origin      protocol.Origin
		wantValue   float32
		wantDisplay string
		refresh     bool
	}{
		{"continuous echo discarded", Continuous, protocol.OriginEcho, 0.2, "20 %", false},
		{"continuous external applied", Continuous, protocol.OriginHost, 0.5, "50 %", true},
		{"binary echo applied", Binary, protocol.OriginEcho, 1, "On", false},
		{"binary external applied", Binary, protocol.OriginHost, 1, "On", true},
		{"enumerated echo applied", Enumerated, protocol.OriginEcho, 1, "On", false},
		{"enumerated external applied", Enumerated, protocol.OriginHost, 1, "On", true},
		{"local reflection ignored", Binary, protocol.OriginLocal, 0.2, "20 %", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Slot{Type: tc.typ, Value: 0.2, DisplayText: "20 %", Exists: true, Phase: PhaseBound}
			if tc.typ == Enumerated {
				s.OptionNames = []string{"Off", "Half", "On"}
			}
			value, display := float32(0.5), "50 %"
			if tc.typ != Continuous {
				value, display = 1, "On"
			}
			got := reconcile(&s, confirmation{Value: value, Display: display, HasDisplay: true, Origin: tc.origin})
			assert.Equal(t, tc.refresh, got)
			assert.Equal(t, tc.wantValue, s.Value)
			assert.Equal(t, tc.wantDisplay, s.DisplayText)
		})
	}
}

func TestReconcileRequantizesOptionIndex(t *testing.T) {
	s := Slot{Type: Enumerated, OptionNames: []string{"LP", "BP", "HP"}, Exists: true}
	reconcile(&s, confirmation{Value: 0.5, Display: "BP", HasDisplay: true, Origin: protocol.OriginHost})
	assert.Equal(t, 1, s.OptionIndex)
	assert.Equal(t, "BP", s.Option())
	assert.Equal(t, PhaseDirtyRemote, s.Phase)
}

func TestEchoClearsDirtyLocal(t *testing.T) {
	s := Slot{Type: Continuous, Value: 0.4, Phase: PhaseDirtyLocal}
	reconcile(&s, confirmation{Value: 0.4, Origin: protocol.OriginEcho})
	assert.Equal(t, PhaseBound, s.Phase)
	assert.Zero(t, s.ValueApplies)
}

func TestConfirmationTouchesOnlyItsSlot(t *testing.T) {
	origins := []protocol.Origin{protocol.OriginHost, protocol.OriginEcho, protocol.OriginLocal}
	for _, origin := range origins {
		for target := 0; target < 4; target++ {
			g := newRig()
			g.host(mixedPage())
			before := g.s.Slots

			g.s.Handle(&protocol.RemoteControlValueState{Index: uint8(target), Value: 1, Display: "max"}, origin)

			for i := range g.s.Slots {
				if i == target {
					continue
				}
				require.Equal(t, before[i], g.s.Slots[i], "origin %s target %d slot %d", origin, target, i)
			}
		}
	}
}

func TestExternalChangeRepositionsEncoder(t *testing.T) {
	g := newRig()
	g.host(mixedPage())
	g.enc.calls = nil

	g.host(&protocol.RemoteControlValueState{Index: 1, Value: 0.75, Display: "75 %"})

	assert.Equal(t, []string{"pos 1 0.750"}, g.enc.calls)
	assert.Equal(t, float32(0.75), g.s.Slots[1].Value)
	assert.Equal(t, "75 %", g.r.params[1].DisplayText)
}

func TestExternalListChangeRebindsQuantization(t *testing.T) {
	g := newRig()
	g.host(mixedPage())
	g.enc.calls = nil

	g.host(&protocol.RemoteControlValueState{Index: 3, Value: 1, Display: "HP"})

	assert.Equal(t, []string{"mode 3 stepped 3", "pos 3 1.000"}, g.enc.calls)
	assert.Equal(t, 2, g.s.Slots[3].OptionIndex)
}
