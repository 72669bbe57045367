package fec

import (
	"testing"
)

func TestCRC32_Basic(t *testing.T) {
	data := []byte("Hello, World!")
	checksum := CRC32(data)

	if checksum == 0 {
		t.Error("CRC32 should not be 0 for non-empty data")
	}

	// Same data should produce same CRC
	checksum2 := CRC32(data)
	if checksum != checksum2 {
		t.Errorf("CRC32 not deterministic: %x != %x", checksum, checksum2)
	}

	// Different data should produce different CRC
	data2 := []byte("Hello, World?")
	checksum3 := CRC32(data2)
	if checksum == checksum3 {
		t.Error("Different data produced same CRC32")
	}
}

func TestCRC32_AppendVerify(t *testing.T) {
	data := []byte("Test data for CRC verification")

	withCRC := AppendCRC32(data)
	if len(withCRC) != len(data)+4 {
		t.Fatalf("Expected length %d, got %d", len(data)+4, len(withCRC))
	}

	recovered, valid := VerifyCRC32(withCRC)
	if !valid {
		t.Error("CRC verification failed for valid data")
	}

	if string(recovered) != string(data) {
		t.Error("Recovered data mismatch")
	}

	// Corrupt data and verify detection
	withCRC[5] ^= 0xFF
	_, valid = VerifyCRC32(withCRC)
	if valid {
		t.Error("CRC verification should fail for corrupted data")
	}
}

// telemetryDataShards/telemetryParityShards mirror the profile
// internal/telemetry/fec.go actually builds its Protector with: small
// shard counts sized for a ~26-byte snapshot, not a file-transfer block.
const (
	telemetryDataShards   = 18
	telemetryParityShards = 6
)

func TestRSEncoder_EncodeDecode(t *testing.T) {
	rs, err := NewRSEncoderCustom(telemetryDataShards, telemetryParityShards)
	if err != nil {
		t.Fatalf("Failed to create RS encoder: %v", err)
	}

	data := []byte("telemetry snapshot payload bytes")

	encoded, err := rs.Encode(data)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	totalShards := telemetryDataShards + telemetryParityShards
	shardSize := (len(data) + telemetryDataShards - 1) / telemetryDataShards
	if len(encoded) != totalShards*shardSize {
		t.Errorf("encoded length = %d, want %d", len(encoded), totalShards*shardSize)
	}

	decoded, err := rs.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}

	for i := range data {
		if decoded[i] != data[i] {
			t.Errorf("Byte %d mismatch: 0x%02x != 0x%02x", i, data[i], decoded[i])
		}
	}
}

func TestRSEncoder_DetectsCorruption(t *testing.T) {
	rs, err := NewRSEncoderCustom(10, 4) // smaller profile, easier to hand-verify
	if err != nil {
		t.Fatalf("Failed to create RS encoder: %v", err)
	}

	data := []byte("Hello RS!!") // exactly 10 bytes, one per data shard

	encoded, err := rs.Encode(data)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	// Corrupt (not erase) a couple of shard bytes; Decode should detect
	// the parity mismatch and fail rather than silently returning the
	// wrong data.
	corrupted := make([]byte, len(encoded))
	copy(corrupted, encoded)
	corrupted[2] ^= 0xFF
	corrupted[5] ^= 0xFF

	if _, err := rs.Decode(corrupted); err == nil {
		t.Error("expected Decode to fail on undetected shard corruption")
	}
}

func TestRSEncoder_DataShardsAndParityShards(t *testing.T) {
	rs, err := NewRSEncoderCustom(telemetryDataShards, telemetryParityShards)
	if err != nil {
		t.Fatal(err)
	}
	if got := rs.DataShards(); got != telemetryDataShards {
		t.Errorf("DataShards() = %d, want %d", got, telemetryDataShards)
	}
	if got := rs.ParityShards(); got != telemetryParityShards {
		t.Errorf("ParityShards() = %d, want %d", got, telemetryParityShards)
	}
}
