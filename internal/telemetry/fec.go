package telemetry

import (
	"fmt"

	"github.com/jeongseonghan/lte-chest-dl/internal/fec"
)

// Telemetry snapshots are tiny (26 bytes) compared to the file-transfer
// payloads this encoder was built for, so the shard profile shrinks
// to match: 18 data and 6 parity shards instead of a 223/32 split
// meant for much larger blocks.
const (
	DataShards   = 18
	ParityShards = 6
)

// Protector wraps Reed-Solomon FEC around telemetry snapshots, for
// transports where a WebSocket's own retransmission isn't available
// (e.g. a lossy serial backhaul relaying metrics off the receiver).
type Protector struct {
	rs *fec.RSEncoder
}

// NewProtector builds a Protector using the telemetry shard profile.
func NewProtector() (*Protector, error) {
	rs, err := fec.NewRSEncoderCustom(DataShards, ParityShards)
	if err != nil {
		return nil, err
	}
	return &Protector{rs: rs}, nil
}

// Encode FEC-protects an already CRC-32-framed snapshot (the output of
// Snapshot.MarshalBinary).
func (p *Protector) Encode(framed []byte) ([]byte, error) {
	return p.rs.Encode(framed)
}

// Decode recovers a CRC-32-framed snapshot from FEC-protected bytes.
// It checks the parity but does not repair corrupted shards: any
// corrupted byte makes Decode return an error.
func (p *Protector) Decode(protected []byte) ([]byte, error) {
	data, err := p.rs.Decode(protected)
	if err != nil {
		return nil, err
	}
	// The data shards carry zero padding after the framed snapshot.
	framedLen := wireLen + 4
	if len(data) < framedLen {
		return nil, fmt.Errorf("telemetry: decoded %d bytes, want at least %d", len(data), framedLen)
	}
	return data[:framedLen], nil
}
