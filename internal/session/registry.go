package session

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-tcp/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-tcp/internal/entity"
)

// Capacity is the number of participants a game holds.
const Capacity = 2

// Conn is a participant's connection as seen by the game.
type Conn interface {
	ID() string
	Send(message string) error
	Close() error
}

// Registry keeps connected participants in join order. A participant's slot is
// its index, so slots stay contiguous from 0.
type Registry struct {
	conns []Conn
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make([]Conn, 0, Capacity),
	}
}

// Join appends conn and returns its slot.
func (that *Registry) Join(conn Conn) (entity.Slot, error) {
	if len(that.conns) >= Capacity {
		return 0, fmt.Errorf("%w: %d players", apperror.ErrGameFull, len(that.conns))
	}

	that.conns = append(that.conns, conn)

	return entity.Slot(len(that.conns) - 1), nil
}

// Leave removes conn and shifts later participants down one slot.
func (that *Registry) Leave(conn Conn) (entity.Slot, error) {
	slot, ok := that.SlotOf(conn)
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperror.ErrNotFound, conn.ID())
	}

	that.conns = append(that.conns[:slot], that.conns[slot+1:]...)

	return slot, nil
}

// SlotOf reports the current slot of conn.
func (that *Registry) SlotOf(conn Conn) (entity.Slot, bool) {
	for i, registered := range that.conns {
		if registered == conn {
			return entity.Slot(i), true
		}
	}

	return 0, false
}

// Conn returns the connection in slot, if any.
func (that *Registry) Conn(slot entity.Slot) (Conn, bool) {
	if slot < 0 || int(slot) >= len(that.conns) {
		return nil, false
	}

	return that.conns[slot], true
}

// Broadcast sends message to every participant. A failed send does not stop
// delivery to the others; all failures are returned joined.
func (that *Registry) Broadcast(message string) error {
	var errs []error

	for _, conn := range that.conns {
		if err := conn.Send(message); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", conn.ID(), err))
		}
	}

	return errors.Join(errs...)
}

func (that *Registry) Count() int {
	return len(that.conns)
}

func (that *Registry) IsFull() bool {
	return len(that.conns) >= Capacity
}

// Clear forgets every participant and returns them in slot order.
func (that *Registry) Clear() []Conn {
	conns := that.conns
	that.conns = make([]Conn, 0, Capacity)

	return conns
}
