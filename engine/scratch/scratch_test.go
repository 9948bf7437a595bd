package scratch

import "testing"

func TestBuilderChain(t *testing.T) {
	b := New(0)
	if b.Cap() != 1024 {
		t.Errorf("default cap = %d", b.Cap())
	}

	m := b.Mark()
	b.S("epoch ").U(42).C(' ').I(-7).S(" ").F(3.14159, 2).C(' ').Bool(true).Pad(2, '.')
	if got, want := b.StringFrom(m), "epoch 42 -7 3.14 true.."; got != want {
		t.Errorf("StringFrom = %q, want %q", got, want)
	}

	m2 := b.Mark()
	b.S("next")
	if got := b.ViewFrom(m2); got != "next" {
		t.Errorf("ViewFrom = %q", got)
	}
	if got := b.ViewFrom(b.Mark()); got != "" {
		t.Errorf("empty ViewFrom = %q", got)
	}
}

func TestResetKeepsCapacity(t *testing.T) {
	b := New(8)
	b.S("a much longer string than eight bytes")
	c := b.Cap()
	b.Reset()
	if b.Len() != 0 || b.Cap() != c {
		t.Errorf("after Reset len=%d cap=%d, want 0 and %d", b.Len(), b.Cap(), c)
	}
}
