package dnsresolver

import "testing"

func TestRandomLabel_Unique(t *testing.T) {
	a := randomLabel()
	b := randomLabel()
	if a == b {
		t.Error("expected two random labels to differ")
	}
	if len(a) == 0 {
		t.Error("expected a non-empty label")
	}
}
