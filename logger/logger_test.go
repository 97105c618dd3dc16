package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLFallsBackToNop(t *testing.T) {
	if L(context.Background()) == nil {
		t.Fatal("L returned nil")
	}
	L(context.Background()).Info("dropped")
}

func TestNewContextRoundTrip(t *testing.T) {
	l := zap.NewExample()
	ctx := NewContext(context.Background(), l)
	if L(ctx) != l {
		t.Error("L did not return the stored logger")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixgrid.log")
	l, err := New(false, path)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("exported", zap.String("format", "Plain"))
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"format":"Plain"`) {
		t.Errorf("log file = %q", data)
	}
}
