package main

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/cli"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"cli error", &cli.CLIError{Message: "x", ExitCode: 3}, 3},
		{"cli error without code", &cli.CLIError{Message: "x"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode = %d, want %d", got, tt.want)
			}
		})
	}
}
