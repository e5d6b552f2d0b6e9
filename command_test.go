package adorn

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"show", CommandShow},
		{"Hide", CommandHide},
		{"fadeIn", CommandFadeIn},
		{"fade-in", CommandFadeIn},
		{"FADEOUT", CommandFadeOut},
		{" fade-out ", CommandFadeOut},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseCommand(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseCommandUnknown(t *testing.T) {
	for _, in := range []string{"", "toggle", "fade"} {
		if _, err := ParseCommand(in); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("ParseCommand(%q) err = %v, want ErrUnknownCommand", in, err)
		}
	}
}

func TestCommandString(t *testing.T) {
	for _, c := range []Command{CommandShow, CommandHide, CommandFadeIn, CommandFadeOut} {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v; want %v", c.String(), got, err, c)
		}
	}
	if got := Command(42).String(); got != "Command(42)" {
		t.Errorf("String = %q, want Command(42)", got)
	}
}
