// Command chestsim drives the LTE downlink channel estimator against
// synthetic resource grids: it builds a cell, generates CRS-bearing
// subframes through a multipath-plus-noise channel, runs the
// estimator over them, and reports the resulting signal-quality
// metrics — optionally serving them live over HTTP/WebSocket.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeongseonghan/lte-chest-dl/internal/estimation"
	"github.com/jeongseonghan/lte-chest-dl/internal/lte"
	"github.com/jeongseonghan/lte-chest-dl/internal/refsignal"
	"github.com/jeongseonghan/lte-chest-dl/internal/server"
	"github.com/jeongseonghan/lte-chest-dl/internal/simulate"
	"github.com/jeongseonghan/lte-chest-dl/internal/telemetry"
)

func main() {
	nofPRB := flag.Int("nof-prb", 25, "Number of physical resource blocks (6..100)")
	nofPorts := flag.Int("nof-ports", 1, "Number of CRS antenna ports (1, 2, or 4)")
	cpFlag := flag.String("cp", "normal", "Cyclic prefix: normal or extended")
	cellID := flag.Int("cell-id", 0, "Physical cell identity")
	subframes := flag.Int("subframes", 20, "Number of subframes to simulate")
	noiseStd := flag.Float64("noise-std", 0.05, "Additive noise standard deviation")
	noisePolicy := flag.String("noise-policy", "residual", "Noise estimation policy: residual or guard")
	seed := flag.Int64("seed", 1, "Random seed for the synthetic channel")
	serve := flag.Bool("serve", false, "Serve live telemetry over HTTP/WebSocket")
	addr := flag.String("addr", "0.0.0.0:8080", "Telemetry server address")
	flag.Parse()

	cp := lte.CPNormal
	if *cpFlag == "extended" {
		cp = lte.CPExtended
	}

	cell := lte.Cell{NofPRB: *nofPRB, NofPorts: *nofPorts, CP: cp, ID: *cellID}
	if err := cell.Validate(); err != nil {
		log.Fatalf("Invalid cell configuration: %v", err)
	}

	est, err := estimation.New(cell)
	if err != nil {
		log.Fatalf("Failed to create estimator: %v", err)
	}
	defer est.Close()
	switch *noisePolicy {
	case "guard":
		est.SetNoisePolicy(estimation.NoiseGuardSubcarrier)
	case "residual":
		est.SetNoisePolicy(estimation.NoiseResidual)
	default:
		log.Fatalf("Unknown noise policy %q", *noisePolicy)
	}

	var handlers *server.Handlers
	if *serve {
		handlers = server.NewHandlers()
		srv := server.NewServer(*addr, handlers)
		go func() {
			if err := srv.Start(); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	stop := make(chan struct{})
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		close(stop)
	}()

	rng := rand.New(rand.NewSource(*seed))
	table := refsignal.Generate(cell)
	channels := make([]simulate.PortChannel, cell.NofPorts)
	for p := range channels {
		channels[p] = simulate.PortChannel{
			Port: p,
			Taps: randomMultipath(rng),
		}
	}

	outCE := make([]complex64, cell.GridLen())

	for i := 0; i < *subframes; i++ {
		select {
		case <-stop:
			return
		default:
		}

		subframeIdx := i % 10
		sf := simulate.GenerateSubframe(cell, table, subframeIdx, channels, float32(*noiseStd), rng)

		for port := 0; port < cell.NofPorts; port++ {
			if err := est.EstimatePort(sf.Received, outCE, subframeIdx, port); err != nil {
				log.Fatalf("Estimation failed on subframe %d port %d: %v", subframeIdx, port, err)
			}
		}

		snap := telemetry.Snapshot{
			SubframeIdx: subframeIdx,
			RSRP:        est.RSRP(),
			RSSI:        est.RSSI(),
			RSRQ:        est.RSRQ(),
			Noise:       est.Noise(),
			SNR:         est.SNR(),
		}
		log.Printf("sf=%d rsrp=%.4f rssi=%.4f rsrq=%.4f noise=%.6f snr=%.2f",
			snap.SubframeIdx, snap.RSRP, snap.RSSI, snap.RSRQ, snap.Noise, snap.SNR)

		if handlers != nil {
			handlers.Publish(snap)
		}

		time.Sleep(10 * time.Millisecond)
	}
}

// randomMultipath builds a short, decaying-power tap-delay profile
// with random phase per tap, a reasonable stand-in for an urban
// multipath channel.
func randomMultipath(rng *rand.Rand) []complex128 {
	const taps = 4
	out := make([]complex128, taps)
	for i := range out {
		mag := 1.0 / float64(i+1)
		phase := rng.Float64() * 2 * math.Pi
		out[i] = cmplx.Rect(mag, phase)
	}
	return out
}
