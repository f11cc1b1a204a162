package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func TestStatusMemory(t *testing.T) {
	body, ok := NewService(nil).Status(context.Background())
	if !ok || body["database"] != "memory" {
		t.Fatalf("unexpected status: %v %v", body, ok)
	}
}

func TestStatusDatabase(t *testing.T) {
	body, ok := NewService(fakePinger{}).Status(context.Background())
	if !ok || body["database"] != "up" {
		t.Fatalf("unexpected status: %v %v", body, ok)
	}
	body, ok = NewService(fakePinger{err: errors.New("refused")}).Status(context.Background())
	if ok || body["ok"] != false || body["database"] != "down" {
		t.Fatalf("unexpected status: %v %v", body, ok)
	}
}
