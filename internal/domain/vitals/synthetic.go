package vitals

import (
	"fmt"
	"math/rand"
)

// SyntheticSample is one fabricated vitals reading pushed over the live feed.
// It is demo output, not derived from stored observations. Temperature and
// FiO2 are fixed-decimal strings to match the wire format the chart frontend
// has always consumed.
type SyntheticSample struct {
	HeartRate            int                  `json:"heartRate"`
	BloodPressure        string               `json:"bloodPressure"`
	Temperature          string               `json:"temperature"`
	SpO2                 int                  `json:"spo2"`
	RespiratoryRate      int                  `json:"respiratoryRate"`
	UrineOutput          int                  `json:"urineOutput"`
	GCS                  int                  `json:"gcs"`
	VentilatorParameters SyntheticVentilator  `json:"ventilatorParameters"`
}

// SyntheticVentilator carries the fabricated ventilator block. Mode is always
// "SIMV".
type SyntheticVentilator struct {
	Mode            string `json:"mode"`
	FiO2            string `json:"fio2"`
	PEEP            int    `json:"peep"`
	TidalVolume     int    `json:"tidalVolume"`
	RR              int    `json:"rr"`
	PeakPressure    int    `json:"peakPressure"`
	PlateauPressure int    `json:"plateauPressure"`
	MeanPressure    int    `json:"meanPressure"`
}

// SampleGenerator fabricates vitals samples with uniformly-random values in
// fixed clinical-looking ranges.
type SampleGenerator struct {
	rng *rand.Rand
}

// NewSampleGenerator creates a generator seeded from src. Each websocket
// session owns its own generator, so no locking is needed.
func NewSampleGenerator(src rand.Source) *SampleGenerator {
	return &SampleGenerator{rng: rand.New(src)}
}

// Next produces one synthetic sample.
func (g *SampleGenerator) Next() SyntheticSample {
	return SyntheticSample{
		HeartRate:       g.intBetween(60, 100),
		BloodPressure:   fmt.Sprintf("%d/%d", g.intBetween(110, 120), g.intBetween(70, 80)),
		Temperature:     fmt.Sprintf("%.1f", g.floatBetween(36.5, 37.5)),
		SpO2:            g.intBetween(95, 100),
		RespiratoryRate: g.intBetween(12, 20),
		UrineOutput:     g.intBetween(50, 100),
		GCS:             g.intBetween(3, 15),
		VentilatorParameters: SyntheticVentilator{
			Mode:            "SIMV",
			FiO2:            fmt.Sprintf("%.2f", g.floatBetween(0.21, 0.8)),
			PEEP:            g.intBetween(5, 10),
			TidalVolume:     g.intBetween(300, 500),
			RR:              g.intBetween(10, 25),
			PeakPressure:    g.intBetween(15, 30),
			PlateauPressure: g.intBetween(10, 25),
			MeanPressure:    g.intBetween(5, 15),
		},
	}
}

// intBetween returns a uniform integer in [lo, hi].
func (g *SampleGenerator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// floatBetween returns a uniform float in [lo, hi).
func (g *SampleGenerator) floatBetween(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
