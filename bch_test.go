package pocsag

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// gf2Mod divides word by BCHGenerator as a polynomial over GF(2) and
// returns the remainder, used only to check BCH-cleanliness in tests.
func gf2Mod(word uint32, width int) uint32 {
	generator := uint32(BCHGenerator) << (width - ParityBits - 1)
	mask := uint32(1) << (width - 1)
	for i := 0; i < width-ParityBits; i++ {
		if word&mask != 0 {
			word ^= generator
		}
		generator >>= 1
		mask >>= 1
	}
	return word
}

func TestBCHParityMatchesWorkedExample(t *testing.T) {
	// RIC 1234567 -> address 154320, function 3, data21 0x12D686,
	// parity 0x224, codeword 0x4B5A1A25.
	data21 := uint32(0x12D686)
	assert.Equal(t, uint32(0x224), bchParity(data21))
	assert.Equal(t, uint32(0x4B5A1A25), EncodeAddress(1234567))
}

func TestIdleCodewordIsCleanAndEven(t *testing.T) {
	assert.Equal(t, 0, bits.OnesCount32(uint32(IdleCodeword))%2)
	assert.Equal(t, uint32(0), gf2Mod(uint32(IdleCodeword)>>1, 31))
}

func TestAddressCodewordsAreEvenAndBCHClean(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rapid.Uint32Range(0, (1<<21)-1).Draw(t, "ric")
		cw := EncodeAddress(r)
		assert.Equal(t, 0, bits.OnesCount32(cw)%2, "codeword popcount must be even")
		assert.Equal(t, uint32(0), gf2Mod(cw>>1, 31), "31 high bits must be BCH-clean")
	})
}

func TestMessageCodewordsAreEvenAndFlagged(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := rapid.Uint32Range(0, (1<<20)-1).Draw(t, "block")
		cw := assembleCodeword((b << 1) | MessageFlag)
		assert.Equal(t, 0, bits.OnesCount32(cw)%2)
		assert.Equal(t, uint32(0), gf2Mod(cw>>1, 31))
		assert.Equal(t, uint32(1), (cw>>10)&1, "message flag bit must be set")
	})
}
