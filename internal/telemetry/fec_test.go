package telemetry

import "testing"

func TestProtectorRoundTrip(t *testing.T) {
	p, err := NewProtector()
	if err != nil {
		t.Fatal(err)
	}
	s := sampleSnapshot()
	framed, err := s.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	protected, err := p.Encode(framed)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := p.Decode(protected)
	if err != nil {
		t.Fatal(err)
	}

	var got Snapshot
	if err := got.UnmarshalBinary(recovered); err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Errorf("got %+v, want %+v", got, s)
	}
}

func TestProtectorDetectsShardCorruption(t *testing.T) {
	p, err := NewProtector()
	if err != nil {
		t.Fatal(err)
	}
	s := sampleSnapshot()
	framed, err := s.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	protected, err := p.Encode(framed)
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt a byte without marking its shard as erased: Reed-Solomon
	// Verify should catch the parity mismatch and Decode should fail
	// rather than silently returning corrupted data.
	protected[0] ^= 0xFF

	if _, err := p.Decode(protected); err == nil {
		t.Error("expected Decode to fail on undetected shard corruption")
	}
}
