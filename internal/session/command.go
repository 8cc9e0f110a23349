package session

import (
	"context"
	"errors"
	"fmt"
)

// Command is a card operation triggered from the page or the keyboard.
// Deck selection carries an argument and goes through SelectDeck instead.
type Command string

const (
	CmdFlip      Command = "flip"
	CmdNext      Command = "next"
	CmdPrev      Command = "prev"
	CmdShuffle   Command = "shuffle"
	CmdStudyMode Command = "study-mode"
)

var ErrUnknownCommand = errors.New("unknown command")

var commands = map[Command]struct{}{
	CmdFlip:      {},
	CmdNext:      {},
	CmdPrev:      {},
	CmdShuffle:   {},
	CmdStudyMode: {},
}

// ParseCommand validates a command name.
func ParseCommand(s string) (Command, error) {
	c := Command(s)
	if _, ok := commands[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
	}
	return c, nil
}

// keyBindings follows KeyboardEvent.key names.
var keyBindings = map[string]Command{
	" ":          CmdFlip,
	"Space":      CmdFlip,
	"ArrowRight": CmdNext,
	"ArrowLeft":  CmdPrev,
}

// CommandForKey maps a keyboard shortcut to its command.
func CommandForKey(key string) (Command, bool) {
	c, ok := keyBindings[key]
	return c, ok
}

// Apply runs cmd. The ticket is only meaningful when scheduled is true,
// which happens when a flip in study mode needs a deferred reveal.
func (m *Manager) Apply(ctx context.Context, cmd Command) (ticket RevealTicket, scheduled bool, err error) {
	switch cmd {
	case CmdFlip:
		ticket, scheduled = m.Flip(ctx)
	case CmdNext:
		m.Advance(ctx)
	case CmdPrev:
		m.Retreat(ctx)
	case CmdShuffle:
		m.Shuffle(ctx)
	case CmdStudyMode:
		m.ToggleStudyMode(ctx)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, string(cmd))
	}
	return ticket, scheduled, err
}
