package surface

// EncoderMode is how an encoder reports movement.
type EncoderMode uint8

const (
	ModeContinuous EncoderMode = iota
	ModeStepped
)

func (m EncoderMode) String() string {
	if m == ModeStepped {
		return "stepped"
	}
	return "continuous"
}

// Encoders is the physical (or simulated) encoder bank.
type Encoders interface {
	SetMode(id int, mode EncoderMode, steps int)
	SetPosition(id int, pos float32)
}

// Binding maps slot indices to encoders. A slot without a binding is
// inert: its encoder's turns are ignored until the next metadata message
// binds it again.
type Binding struct {
	enc   Encoders
	ids   [ParameterCount + 1]int
	bound [ParameterCount + 1]bool
}

// NewBinding binds slot i to encoder i; the last clicked parameter uses
// encoder ParameterCount.
func NewBinding(enc Encoders) *Binding {
	b := &Binding{enc: enc}
	for i := range b.ids {
		b.ids[i] = i
	}
	return b
}

// Bind configures the slot's encoder for the slot type, mode first, then
// position.
func (b *Binding) Bind(slot int, s *Slot) {
	if slot < 0 || slot >= len(b.ids) {
		return
	}
	if !s.Exists || s.Loading {
		b.bound[slot] = false
		return
	}
	b.bound[slot] = true
	if b.enc == nil {
		return
	}
	id := b.ids[slot]
	if steps := s.Steps(); steps >= 2 {
		b.enc.SetMode(id, ModeStepped, steps)
		b.enc.SetPosition(id, float32(s.OptionIndex)/float32(steps-1))
		return
	}
	b.enc.SetMode(id, ModeContinuous, 0)
	b.enc.SetPosition(id, s.Value)
}

// Reposition moves a bound encoder without touching its mode.
func (b *Binding) Reposition(slot int, pos float32) {
	if !b.Bound(slot) || b.enc == nil {
		return
	}
	b.enc.SetPosition(b.ids[slot], pos)
}

func (b *Binding) Unbind(slot int) {
	if slot >= 0 && slot < len(b.bound) {
		b.bound[slot] = false
	}
}

func (b *Binding) UnbindAll() {
	b.bound = [ParameterCount + 1]bool{}
}

func (b *Binding) Bound(slot int) bool {
	return slot >= 0 && slot < len(b.bound) && b.bound[slot]
}
