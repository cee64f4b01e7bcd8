package main

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestNewLoadingState(t *testing.T) {
	ls := newLoadingState("accounts", "transactions", "tags")

	be.Equal(t, 3, len(ls))
	for _, key := range []string{"accounts", "transactions", "tags"} {
		value, exists := ls[key]
		be.True(t, exists)
		be.False(t, value)
	}
}

func TestLoadingStateSetAndUnset(t *testing.T) {
	ls := newLoadingState("accounts", "tags")

	ls.set("accounts")
	be.True(t, ls["accounts"])
	be.False(t, ls["tags"])

	ls.unset("accounts")
	be.False(t, ls["accounts"])
}

func TestLoadingStateAllLoaded(t *testing.T) {
	tests := []struct {
		name         string
		setKeys      []string
		expectLoaded bool
	}{
		{name: "none loaded", setKeys: nil, expectLoaded: false},
		{name: "partially loaded", setKeys: []string{"accounts", "tags"}, expectLoaded: false},
		{name: "all loaded", setKeys: []string{"accounts", "transactions", "tags"}, expectLoaded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := newLoadingState("accounts", "transactions", "tags")
			for _, key := range tt.setKeys {
				ls.set(key)
			}

			loaded, notLoaded := ls.allLoaded()
			be.Equal(t, tt.expectLoaded, loaded)

			if tt.expectLoaded {
				be.Equal(t, "", notLoaded)
			} else {
				be.Nonzero(t, notLoaded)
				be.False(t, ls[notLoaded])
			}
		})
	}
}

func TestLoadingStateEmptyIsLoaded(t *testing.T) {
	ls := newLoadingState()
	loaded, _ := ls.allLoaded()
	be.True(t, loaded)
}
