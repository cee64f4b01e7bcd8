package main

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestValidateName(t *testing.T) {
	be.Nonzero(t, validateName(""))
	be.NilErr(t, validateName("Groceries"))
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "empty", input: "", expectErr: true},
		{name: "not a number", input: "abc", expectErr: true},
		{name: "zero", input: "0", expectErr: true},
		{name: "negative", input: "-5", expectErr: true},
		{name: "valid", input: "12.50", expectErr: false},
		{name: "at ceiling", input: "1000000", expectErr: false},
		{name: "over ceiling", input: "1000000.01", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAmount(tt.input)
			if tt.expectErr {
				be.Nonzero(t, err)
			} else {
				be.NilErr(t, err)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "empty", input: "", expectErr: true},
		{name: "iso format rejected", input: "2025-06-01", expectErr: true},
		{name: "day month year", input: "01.06.2025", expectErr: false},
		{name: "nonsense", input: "99.99.9999", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDate(tt.input)
			if tt.expectErr {
				be.Nonzero(t, err)
			} else {
				be.NilErr(t, err)
			}
		})
	}
}
