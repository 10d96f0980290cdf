package main

import "testing"

func TestHubConnectionLimits(t *testing.T) {
	h := NewHub(nil, nil)

	for i := 0; i < maxConnsPerIP; i++ {
		if !h.CanAccept("1.2.3.4") {
			t.Fatalf("connection %d should be accepted", i)
		}
		h.TrackConnect("1.2.3.4")
	}
	if h.CanAccept("1.2.3.4") {
		t.Error("per-IP limit should reject the next connection")
	}
	if !h.CanAccept("5.6.7.8") {
		t.Error("other addresses should still be accepted")
	}

	h.TrackDisconnect("1.2.3.4")
	if !h.CanAccept("1.2.3.4") {
		t.Error("a freed slot should accept again")
	}
	if h.TotalConns() != maxConnsPerIP-1 {
		t.Errorf("total = %d, want %d", h.TotalConns(), maxConnsPerIP-1)
	}
}
