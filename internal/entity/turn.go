package entity

// Slot is the positional identity of a participant: 0 joined first, 1 second.
type Slot int

const (
	SlotA Slot = iota
	SlotB
)

// Mark returns the symbol the slot plays with.
func (that Slot) Mark() Mark {
	if that == SlotA {
		return MarkX
	}
	return MarkO
}

// Number is the 1-based player number shown to participants.
func (that Slot) Number() int {
	return int(that) + 1
}

// Other returns the opposing slot.
func (that Slot) Other() Slot {
	if that == SlotA {
		return SlotB
	}
	return SlotA
}

// Turn tracks whose move it is. The zero value starts with SlotA.
type Turn struct {
	current Slot
}

func (that *Turn) Current() Slot {
	return that.current
}

func (that *Turn) IsTurnOf(slot Slot) bool {
	return that.current == slot
}

// Advance hands the move to the other slot.
func (that *Turn) Advance() {
	that.current = that.current.Other()
}

// Reset gives the first move back to SlotA.
func (that *Turn) Reset() {
	that.current = SlotA
}
