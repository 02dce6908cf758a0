package driver

import "testing"

func TestReadbackPoolReportsPendingFenceOnReuse(t *testing.T) {
	var p pboPool

	s0, pending := p.slotFor()
	if pending != 0 {
		t.Fatalf("fresh slot %d carries fence %#x", s0, pending)
	}
	p.fences[s0] = 0x10

	s1, pending := p.slotFor()
	if s1 == s0 {
		t.Fatalf("round-robin repeated slot %d", s0)
	}
	if pending != 0 {
		t.Fatalf("fresh slot %d carries fence %#x", s1, pending)
	}
	p.fences[s1] = 0x20

	// Both buffers are in flight; the third readback wraps to the
	// first slot and must see its outstanding fence.
	s2, pending := p.slotFor()
	if s2 != s0 {
		t.Fatalf("third slot = %d, want %d", s2, s0)
	}
	if pending != 0x10 {
		t.Fatalf("pending fence = %#x, want 0x10", pending)
	}
}

func TestReadbackPoolReleaseClearsOwnFenceOnly(t *testing.T) {
	var p pboPool
	p.fences[0] = 0x10

	// A stale token whose slot was already recycled must not clear
	// the newer readback's fence.
	p.release(0, 0x99)
	if p.fences[0] != 0x10 {
		t.Fatalf("release cleared a foreign fence, got %#x", p.fences[0])
	}

	p.release(0, 0x10)
	if p.fences[0] != 0 {
		t.Fatalf("release left fence %#x", p.fences[0])
	}
}
