package pocsag

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Burst diagnostics: an optional spectrogram of a transmitted burst's IQ
// samples, for bench debugging. Never part of the encode/transmit path.

// WaterfallConfig holds configuration for waterfall generation.
type WaterfallConfig struct {
	Width      int     // Width of output image (time axis)
	Height     int     // Height of output image (frequency axis)
	FFTSize    int     // FFT window size
	Overlap    float64 // Overlap between FFT windows (0.0 to 1.0)
	MinFreq    float64 // Minimum frequency to display (Hz)
	MaxFreq    float64 // Maximum frequency to display (Hz)
	SampleRate float64 // IQ sample rate (Hz)
}

// DefaultWaterfallConfig returns a 2400x256 image, a 256-point FFT with
// 75% overlap and a -3..+3 kHz display window at sampleRate. Only
// SampleRate depends on the argument; when one FFT bin (sampleRate/256) is
// wider than 3 kHz the window holds no bins and the image stays blank.
func DefaultWaterfallConfig(sampleRate float64) WaterfallConfig {
	return WaterfallConfig{
		Width:      2400,
		Height:     256,
		FFTSize:    256,
		Overlap:    0.75,
		MinFreq:    -3000,
		MaxFreq:    3000,
		SampleRate: sampleRate,
	}
}

// GenerateWaterfall renders a spectrogram of the complex IQ samples in
// config's time/frequency window.
func GenerateWaterfall(samples []complex64, config WaterfallConfig) (image.Image, error) {
	iq := make([]complex128, len(samples))
	for i, s := range samples {
		iq[i] = complex128(s)
	}

	stepSize := int(float64(config.FFTSize) * (1.0 - config.Overlap))
	numWindows := (len(iq) - config.FFTSize) / stepSize
	if numWindows <= 0 {
		numWindows = 1
	}

	fft := fourier.NewCmplxFFT(config.FFTSize)

	freqBinSize := config.SampleRate / float64(config.FFTSize)
	minBin := int(config.MinFreq / freqBinSize)
	maxBin := int(config.MaxFreq / freqBinSize)
	if maxBin > config.FFTSize/2 {
		maxBin = config.FFTSize / 2
	}
	numBins := maxBin - minBin

	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))

	const minDB = -80.0
	const maxDB = -10.0
	const dbRange = maxDB - minDB

	for windowIdx := 0; windowIdx < numWindows; windowIdx++ {
		startIdx := windowIdx * stepSize
		endIdx := startIdx + config.FFTSize
		if endIdx > len(iq) {
			break
		}

		window := make([]complex128, config.FFTSize)
		for i := 0; i < config.FFTSize; i++ {
			hannWeight := 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(config.FFTSize-1)))
			window[i] = iq[startIdx+i] * complex(hannWeight, 0)
		}

		coeffs := fft.Coefficients(nil, window)

		x := windowIdx * config.Width / numWindows
		if x >= config.Width {
			x = config.Width - 1
		}

		for i := 0; i < numBins; i++ {
			binIdx := minBin + i
			if binIdx < 0 {
				binIdx += config.FFTSize
			}

			mag := cmplx.Abs(coeffs[binIdx])
			powerDB := 10.0 * math.Log10(mag*mag+1e-10)

			normalized := (powerDB - minDB) / dbRange
			if normalized < 0 {
				normalized = 0
			}
			if normalized > 1 {
				normalized = 1
			}

			y := config.Height - 1 - (i * config.Height / numBins)
			if y < 0 {
				y = 0
			}
			if y >= config.Height {
				y = config.Height - 1
			}

			img.Set(x, y, waterfallColor(normalized))
		}
	}

	return img, nil
}

// waterfallColor maps an intensity in [0,1] through dark blue -> blue ->
// cyan -> green -> yellow -> red -> white.
func waterfallColor(intensity float64) color.Color {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}

	var r, g, b float64

	switch {
	case intensity < 0.2:
		t := intensity / 0.2
		b = 0.1 + 0.4*t
	case intensity < 0.4:
		t := (intensity - 0.2) / 0.2
		g = 0.5 * t
		b = 0.5 + 0.5*t
	case intensity < 0.6:
		t := (intensity - 0.4) / 0.2
		g = 0.5 + 0.5*t
		b = 1.0 - 0.5*t
	case intensity < 0.8:
		t := (intensity - 0.6) / 0.2
		r = t
		g = 1.0
		b = 0.5 - 0.5*t
	case intensity < 0.9:
		t := (intensity - 0.8) / 0.1
		r = 1.0
		g = 1.0 - 0.5*t
	default:
		t := (intensity - 0.9) / 0.1
		r = 1.0
		g = 0.5 + 0.5*t
		b = t
	}

	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

// WriteWaterfallPNG writes a waterfall spectrogram of samples as PNG to w.
func WriteWaterfallPNG(w io.Writer, samples []complex64, config WaterfallConfig) error {
	img, err := GenerateWaterfall(samples, config)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
