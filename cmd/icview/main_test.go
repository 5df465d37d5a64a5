package main

import (
	"context"
	"fmt"
	"io"
	"testing"

	icerrors "github.com/matzehuels/icview/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", fmt.Errorf("load: %w", context.Canceled), 130},
		{"failure", icerrors.New(icerrors.ErrCodeInvalidInput, "bad layer"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestVerboseFlag(t *testing.T) {
	root := newRootCommand()
	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Fatal("root command has no --verbose flag")
	}
	root.SetArgs([]string{"-v", "completion", "bash"})
	root.SetOut(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
}
