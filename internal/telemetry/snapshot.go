// Package telemetry frames per-subframe channel-quality metrics for
// transport off the receiver: a compact binary encoding protected by a
// CRC-32 and, optionally, Reed-Solomon forward error correction, plus a
// JSON view for the HTTP/WebSocket surface.
package telemetry

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/jeongseonghan/lte-chest-dl/internal/fec"
)

// wireVersion identifies the binary layout below, so a future format
// change can be detected by a receiver still expecting the old one.
const wireVersion = 1

// Snapshot is one subframe's worth of signal-quality metrics, as
// produced by an estimation.Estimator after processing a subframe.
type Snapshot struct {
	SubframeIdx int
	RSRP        float32
	RSSI        float32
	RSRQ        float32
	Noise       float32
	SNR         float32
}

// wireLen is the fixed encoded length of a Snapshot: version(1) +
// subframe index(1) + 5 float32 fields(4 each).
const wireLen = 1 + 1 + 5*4

// MarshalBinary encodes the snapshot into its fixed-length wire format
// (no length prefix) followed by a 4-byte CRC-32.
func (s Snapshot) MarshalBinary() ([]byte, error) {
	if s.SubframeIdx < 0 || s.SubframeIdx > 255 {
		return nil, fmt.Errorf("telemetry: subframe index %d out of byte range", s.SubframeIdx)
	}
	buf := make([]byte, wireLen)
	buf[0] = wireVersion
	buf[1] = byte(s.SubframeIdx)
	binary.BigEndian.PutUint32(buf[2:6], math.Float32bits(s.RSRP))
	binary.BigEndian.PutUint32(buf[6:10], math.Float32bits(s.RSSI))
	binary.BigEndian.PutUint32(buf[10:14], math.Float32bits(s.RSRQ))
	binary.BigEndian.PutUint32(buf[14:18], math.Float32bits(s.Noise))
	binary.BigEndian.PutUint32(buf[18:22], math.Float32bits(s.SNR))
	return fec.AppendCRC32(buf), nil
}

// UnmarshalBinary decodes a Snapshot previously produced by
// MarshalBinary, verifying its CRC-32.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	payload, ok := fec.VerifyCRC32(data)
	if !ok {
		return fmt.Errorf("telemetry: snapshot checksum mismatch")
	}
	if len(payload) != wireLen {
		return fmt.Errorf("telemetry: snapshot length %d, want %d", len(payload), wireLen)
	}
	if payload[0] != wireVersion {
		return fmt.Errorf("telemetry: unsupported snapshot version %d", payload[0])
	}
	s.SubframeIdx = int(payload[1])
	s.RSRP = math.Float32frombits(binary.BigEndian.Uint32(payload[2:6]))
	s.RSSI = math.Float32frombits(binary.BigEndian.Uint32(payload[6:10]))
	s.RSRQ = math.Float32frombits(binary.BigEndian.Uint32(payload[10:14]))
	s.Noise = math.Float32frombits(binary.BigEndian.Uint32(payload[14:18]))
	s.SNR = math.Float32frombits(binary.BigEndian.Uint32(payload[18:22]))
	return nil
}
