package adorn

import (
	"fmt"
	"strings"
)

// Command is a named adorner action that UI elements (buttons, menu items,
// scripted test steps) can trigger without a reference to the method.
type Command uint8

const (
	CommandShow Command = iota
	CommandHide
	CommandFadeIn
	CommandFadeOut
)

var commandNames = [...]string{
	CommandShow:    "show",
	CommandHide:    "hide",
	CommandFadeIn:  "fadeIn",
	CommandFadeOut: "fadeOut",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", c)
}

// ParseCommand parses a command name. Matching ignores case and dashes, so
// "fadeIn", "fade-in" and "FADEIN" are equivalent.
func ParseCommand(s string) (Command, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for i, name := range commandNames {
		if strings.ToLower(name) == key {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("adorn: %w: %q", ErrUnknownCommand, s)
}
