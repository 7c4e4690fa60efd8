package pocsag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiBatchSpansWithoutRepeatingAddress(t *testing.T) {
	ric := uint32(42)
	address := EncodeAddress(ric)

	// More message codewords than fit after the address in one batch.
	message := make([]uint32, 20)
	for i := range message {
		message[i] = assembleCodeword((uint32(i) << 1) | MessageFlag)
	}

	batches := AssembleBatches(ric, address, message)
	require.Len(t, batches, 2)

	slot := int((ric & 0x7) * 2)
	assert.Equal(t, address, batches[0][slot])
	assert.Equal(t, message[0], batches[0][slot+1])

	// Second batch fills from slot 0, address not repeated.
	assert.NotEqual(t, address, batches[1][0])
	assert.Equal(t, message[11], batches[1][0])
	for _, cw := range batches[1] {
		assert.NotEqual(t, address, cw)
	}
}

func TestAssembleBatchesEmptyMessageYieldsOneBatch(t *testing.T) {
	// An empty message still produces one batch with the address placed
	// and everything else idle.
	ric := uint32(7)
	address := EncodeAddress(ric)
	batches := AssembleBatches(ric, address, nil)
	require.Len(t, batches, 1)
	slot := int((ric & 0x7) * 2)
	for i, cw := range batches[0] {
		if i == slot {
			assert.Equal(t, address, cw)
		} else {
			assert.Equal(t, uint32(IdleCodeword), cw)
		}
	}
}

func TestTransmissionStartsWithPreambleAndSync(t *testing.T) {
	ric := uint32(1234567)
	batches := AssembleBatches(ric, EncodeAddress(ric), EncodeAlphanumeric("TEST"))
	words := Transmission(batches)

	for i := 0; i < PreambleWords; i++ {
		assert.Equal(t, uint32(Preamble), words[i])
	}
	assert.Equal(t, uint32(SyncWord), words[PreambleWords])
}
