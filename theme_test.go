package main

import (
	"testing"

	"github.com/carlmjohnson/be"
	"github.com/charmbracelet/lipgloss"
)

func TestNewThemeDefaults(t *testing.T) {
	theme := newTheme(Colors{})

	be.Equal(t, lipgloss.Color("#ffd644"), theme.Primary)
	be.Equal(t, lipgloss.Color("#ff0000"), theme.Error)
	be.Equal(t, lipgloss.Color("#00ff00"), theme.Income)
	be.Equal(t, lipgloss.Color("#ff0000"), theme.Expense)
}

func TestNewThemeOverrides(t *testing.T) {
	theme := newTheme(Colors{
		Primary: "#123456",
		Income:  "42",
	})

	be.Equal(t, lipgloss.Color("#123456"), theme.Primary)
	be.Equal(t, lipgloss.Color("42"), theme.Income)
	// untouched colors keep their defaults
	be.Equal(t, lipgloss.Color("#ff0000"), theme.Expense)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		expected lipgloss.Color
	}{
		{name: "empty falls back", input: "", fallback: "#ffffff", expected: lipgloss.Color("#ffffff")},
		{name: "hex passes through", input: "#abcdef", fallback: "#ffffff", expected: lipgloss.Color("#abcdef")},
		{name: "ansi passes through", input: "99", fallback: "#ffffff", expected: lipgloss.Color("99")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.expected, parseColor(tt.input, tt.fallback))
		})
	}
}
