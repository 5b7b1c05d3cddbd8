package marionette

// paramKind tags the currently held type of a parameter slot.
type paramKind uint8

const (
	paramNone paramKind = iota
	paramBool
	paramFloat
	paramInt
	paramTrigger
)

// paramSlot is one named parameter. Slots are append-only: once a name is
// interned its index never changes, so resolved references stay valid even
// when a later write changes the slot's type.
type paramSlot struct {
	kind paramKind
	b    bool
	f    float64
	i    int64
}

// Parameters is the named value bank read by transition conditions and blend
// trees and written by game logic. Values are typed Bool/Float/Int/Trigger;
// the last write wins, including across types, and reading a name with the
// wrong accessor reports ok=false rather than failing.
//
// Triggers are one-shot: set externally, readable for the remainder of the
// current controller tick, and cleared by the controller after each Update.
//
// Names intern to stable slot indices on first use. Conditions and blend
// trees resolve a name once and then index directly, keeping string hashing
// out of the per-tick path. Like the rest of a controller, a Parameters bank
// is single-threaded; external writers and Update must not race.
type Parameters struct {
	index map[string]int
	slots []paramSlot
}

// NewParameters returns an empty parameter bank.
func NewParameters() *Parameters {
	return &Parameters{index: make(map[string]int)}
}

// intern returns the stable slot index for name, creating a slot on first use.
func (p *Parameters) intern(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	i := len(p.slots)
	p.slots = append(p.slots, paramSlot{})
	p.index[name] = i
	return i
}

// lookup returns the slot index for name without creating one.
func (p *Parameters) lookup(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// SetBool sets the named parameter to a bool value.
func (p *Parameters) SetBool(name string, value bool) {
	p.slots[p.intern(name)] = paramSlot{kind: paramBool, b: value}
}

// SetFloat sets the named parameter to a float value.
func (p *Parameters) SetFloat(name string, value float64) {
	p.slots[p.intern(name)] = paramSlot{kind: paramFloat, f: value}
}

// SetInt sets the named parameter to an integer value.
func (p *Parameters) SetInt(name string, value int64) {
	p.slots[p.intern(name)] = paramSlot{kind: paramInt, i: value}
}

// SetTrigger raises the named trigger. It stays raised until the end of the
// next controller Update (or until overwritten by another Set call).
func (p *Parameters) SetTrigger(name string) {
	p.slots[p.intern(name)] = paramSlot{kind: paramTrigger, b: true}
}

// GetBool returns the named bool parameter. ok is false when the name is
// unknown or currently holds a different type.
func (p *Parameters) GetBool(name string) (value, ok bool) {
	if i, found := p.lookup(name); found && p.slots[i].kind == paramBool {
		return p.slots[i].b, true
	}
	return false, false
}

// GetFloat returns the named float parameter. ok is false when the name is
// unknown or currently holds a different type.
func (p *Parameters) GetFloat(name string) (float64, bool) {
	if i, found := p.lookup(name); found && p.slots[i].kind == paramFloat {
		return p.slots[i].f, true
	}
	return 0, false
}

// GetInt returns the named int parameter. ok is false when the name is
// unknown or currently holds a different type.
func (p *Parameters) GetInt(name string) (int64, bool) {
	if i, found := p.lookup(name); found && p.slots[i].kind == paramInt {
		return p.slots[i].i, true
	}
	return 0, false
}

// GetTrigger reports whether the named trigger is currently raised, without
// consuming it. Unknown names and non-trigger slots read false.
func (p *Parameters) GetTrigger(name string) bool {
	if i, found := p.lookup(name); found && p.slots[i].kind == paramTrigger {
		return p.slots[i].b
	}
	return false
}

// consumeTriggers lowers every raised trigger. The controller calls this once
// at the end of each Update so a trigger is observable for at most one tick,
// by every layer within that tick.
func (p *Parameters) consumeTriggers() {
	for i := range p.slots {
		if p.slots[i].kind == paramTrigger {
			p.slots[i].b = false
		}
	}
}

// paramRef is a lazily resolved reference to a named parameter. The slot
// index is cached after the first successful lookup; slot indices are stable
// for the lifetime of the bank.
type paramRef struct {
	name string
	slot int // -1 until resolved
}

func newParamRef(name string) paramRef {
	return paramRef{name: name, slot: -1}
}

// resolve returns the slot for the reference, caching the index. ok is false
// while the name has never been set on the bank; callers treat that as a
// false condition or an absent weight source, never as an error.
func (r *paramRef) resolve(p *Parameters) (*paramSlot, bool) {
	if r.slot < 0 {
		i, found := p.lookup(r.name)
		if !found {
			return nil, false
		}
		r.slot = i
	}
	return &p.slots[r.slot], true
}

// float returns the referenced parameter as a float, ok=false when missing
// or not currently a float.
func (r *paramRef) float(p *Parameters) (float64, bool) {
	s, ok := r.resolve(p)
	if !ok || s.kind != paramFloat {
		return 0, false
	}
	return s.f, true
}
