package timeline

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"

	"github.com/matzehuels/newsreel/pkg/errors"
)

// Effect names one of the synthetic transition sounds.
type Effect string

const (
	// EffectClick is a short mechanical keyboard click.
	EffectClick Effect = "click"
	// EffectSwoosh is a softer fading transition tone.
	EffectSwoosh Effect = "swoosh"
)

// ParseEffect validates a transition effect name.
func ParseEffect(s string) (Effect, error) {
	switch Effect(s) {
	case EffectClick, EffectSwoosh:
		return Effect(s), nil
	case "":
		return EffectClick, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"invalid transition effect: %q (must be one of: click, swoosh)", s)
}

// Effects holds the on-disk paths of the generated transition sounds.
type Effects struct {
	Click  string
	Swoosh string
}

// Path returns the file for the named effect.
func (e Effects) Path(effect Effect) string {
	if effect == EffectSwoosh {
		return e.Swoosh
	}
	return e.Click
}

// Synthesis parameters shared by both effects.
const (
	sampleRate = 44100

	clickDuration  = 0.15
	swooshDuration = 0.2
)

// EnsureEffects generates the transition sound files under dir if they are
// not already present and returns their paths. Existing files are reused
// untouched, so repeated renders share one generation.
func EnsureEffects(dir string) (Effects, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Effects{}, errors.Wrap(errors.ErrCodeTransitionAsset, err, "create audio directory")
	}

	fx := Effects{
		Click:  filepath.Join(dir, "keyboard_click.wav"),
		Swoosh: filepath.Join(dir, "transition.wav"),
	}
	if _, err := os.Stat(fx.Click); err != nil {
		if err := writeWAV(fx.Click, clickSamples()); err != nil {
			return Effects{}, err
		}
	}
	if _, err := os.Stat(fx.Swoosh); err != nil {
		if err := writeWAV(fx.Swoosh, swooshSamples()); err != nil {
			return Effects{}, err
		}
	}
	return fx, nil
}

// clickSamples synthesizes the keyboard click: an 800 Hz fundamental with
// overtones at 1600 and 2400 Hz under a sharp exponential decay.
func clickSamples() []int16 {
	n := int(sampleRate * clickDuration)
	samples := make([]float64, n)
	for i := range samples {
		t := float64(i) / sampleRate
		s := math.Sin(2*math.Pi*800*t) +
			0.5*math.Sin(2*math.Pi*1600*t) +
			0.3*math.Sin(2*math.Pi*2400*t)
		samples[i] = s * math.Exp(-8*t)
	}
	return quantize(samples, 0.3)
}

// swooshSamples synthesizes the softer transition: 600 and 900 Hz tones with
// a 10% linear fade-in and 30% fade-out.
func swooshSamples() []int16 {
	n := int(sampleRate * swooshDuration)
	samples := make([]float64, n)
	fadeIn := n / 10
	fadeOut := n * 3 / 10
	for i := range samples {
		t := float64(i) / sampleRate
		s := math.Sin(2*math.Pi*600*t) + 0.4*math.Sin(2*math.Pi*900*t)

		env := 1.0
		if i < fadeIn {
			env = float64(i) / float64(fadeIn)
		} else if i >= n-fadeOut {
			env = float64(n-i) / float64(fadeOut)
		}
		samples[i] = s * env
	}
	return quantize(samples, 0.2)
}

// quantize normalizes samples to full scale, applies the gain, and converts
// to 16-bit PCM.
func quantize(samples []float64, gain float64) []int16 {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		peak = 1
	}
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = int16(s / peak * gain * 32767)
	}
	return out
}

// writeWAV writes mono 16-bit PCM at the shared sample rate as a minimal
// RIFF/WAVE file.
func writeWAV(path string, samples []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTransitionAsset, err, "create %s", path)
	}
	defer f.Close()

	dataSize := uint32(len(samples) * 2)
	const (
		channels      = 1
		bitsPerSample = 16
	)

	var header struct {
		RIFF      [4]byte
		ChunkSize uint32
		WAVE      [4]byte

		Fmt           [4]byte
		FmtSize       uint32
		AudioFormat   uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16

		Data     [4]byte
		DataSize uint32
	}
	copy(header.RIFF[:], "RIFF")
	copy(header.WAVE[:], "WAVE")
	copy(header.Fmt[:], "fmt ")
	copy(header.Data[:], "data")
	header.ChunkSize = 36 + dataSize
	header.FmtSize = 16
	header.AudioFormat = 1 // PCM
	header.Channels = channels
	header.SampleRate = sampleRate
	header.ByteRate = sampleRate * channels * bitsPerSample / 8
	header.BlockAlign = channels * bitsPerSample / 8
	header.BitsPerSample = bitsPerSample
	header.DataSize = dataSize

	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return errors.Wrap(errors.ErrCodeTransitionAsset, err, "write %s", path)
	}
	if err := binary.Write(f, binary.LittleEndian, samples); err != nil {
		return errors.Wrap(errors.ErrCodeTransitionAsset, err, "write %s", path)
	}
	return nil
}
