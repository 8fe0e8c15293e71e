package manager

import (
	"context"
	"testing"

	"sdx/internal/sdcli"
	"sdx/internal/sderr"
	"sdx/pkg/types"
)

func TestEventPublisher_GenerationLifecycle(t *testing.T) {
	ex := &fakeExec{}
	m, _ := newTestManager(t, ex, testRegistry("", "m"))
	pub := NewMemoryPublisher()
	m.SetEventPublisher(pub)
	if _, err := m.Generate(context.Background(), types.GenerationRequest{Prompt: "x"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	ex.run = func(sdcli.Args) error { return sderr.ProcessFailed(2, "bad") }
	_, _ = m.Generate(context.Background(), types.GenerationRequest{Prompt: "x"})

	got := pub.Names()
	want := []string{EventGenerationStart, EventGenerationEnd, EventGenerationStart, EventGenerationFailed}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	evts := pub.Events()
	if evts[3].Model != "m" || evts[3].Fields["outcome"] != "process_failed" {
		t.Fatalf("unexpected failure event: %+v", evts[3])
	}
}

func TestSetEventPublisher_NilRestoresNoop(t *testing.T) {
	m, _ := newTestManager(t, &fakeExec{}, testRegistry("", "m"))
	m.SetEventPublisher(nil)
	if _, err := m.Generate(context.Background(), types.GenerationRequest{Prompt: "x"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
}
