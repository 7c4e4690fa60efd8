package pocsag

import "math"

// 2-FSK modulation: bitstream to complex IQ samples.

// ModulatorConfig controls FSK deviation, inversion, and sample timing.
type ModulatorConfig struct {
	BaudRate     float64
	SampleRateHz float64
	DeviationHz  float64
	Invert       bool
}

// Modulate synthesizes one complex64 sample stream for bits, using a
// Bresenham-style fractional samples-per-bit accumulator so rounding
// error never accumulates into drift over a long transmission. Phase is
// integrated continuously across bit boundaries.
func Modulate(bits []bool, cfg ModulatorConfig) []complex64 {
	spbFloat := cfg.SampleRateHz / cfg.BaudRate
	spbBase := int(spbFloat)
	spbErr := spbFloat - float64(spbBase)

	total := int(math.Round(spbFloat * float64(len(bits))))
	samples := make([]complex64, 0, total)

	phase := 0.0
	twoPiOverSr := 2.0 * math.Pi / cfg.SampleRateHz
	acc := 0.0

	for _, bit := range bits {
		freq := -cfg.DeviationHz
		if bit {
			freq = cfg.DeviationHz
		}
		if cfg.Invert {
			freq = -freq
		}

		n := spbBase
		acc += spbErr
		if acc >= 1.0 {
			n++
			acc -= 1.0
		}

		phaseIncrement := twoPiOverSr * freq
		for i := 0; i < n; i++ {
			phase += phaseIncrement
			samples = append(samples, complex64(complex(math.Cos(phase), math.Sin(phase))))
		}
	}

	// Rounding can leave the running total one sample short or long of
	// the expected count; trim rather than pad so len(samples) never
	// exceeds total.
	if len(samples) > total {
		samples = samples[:total]
	}

	return samples
}

// WordsToBits unpacks 32-bit codewords MSB-first into a flat bit slice,
// the order codewords are actually transmitted over the air.
func WordsToBits(words []uint32) []bool {
	bits := make([]bool, 0, len(words)*32)
	for _, w := range words {
		for i := 31; i >= 0; i-- {
			bits = append(bits, w&(1<<uint(i)) != 0)
		}
	}
	return bits
}
