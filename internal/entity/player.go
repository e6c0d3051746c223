package entity

type Player struct {
	ID   string `json:"id"`
	Slot Slot   `json:"slot"`
	Mark string `json:"mark,omitempty"`
}

func NewPlayer(id string, slot Slot) *Player {
	return &Player{
		ID:   id,
		Slot: slot,
		Mark: slot.Mark().String(),
	}
}
