package pocsag

// Preamble, sync, and batch framing.

const (
	// Preamble is the alternating bit pattern that precedes the first
	// batch of a transmission.
	Preamble = 0xAAAAAAAA
	// PreambleWords is the number of Preamble words sent once, up front.
	PreambleWords = 18
	// SyncWord opens every batch.
	SyncWord = 0x7CD215D8
	// IdleCodeword fills slots not carrying an address or message word.
	IdleCodeword = 0x7A89C197

	// SlotsPerBatch is 8 frames of 2 slots each.
	SlotsPerBatch = 16
)

// Batch is one 16-slot POCSAG frame group, preceded by a sync word.
type Batch [SlotsPerBatch]uint32

// AssembleBatches lays out the address codeword for ric and the message
// codewords into one or more batches. The address occupies slot
// (ric&0x7)*2 of the first batch only; later batches start filling
// message payload from slot 0. At least one batch is always produced,
// even for an empty message.
func AssembleBatches(ric uint32, address uint32, message []uint32) []Batch {
	var batches []Batch
	remaining := message

	for first := true; first || len(remaining) > 0; first = false {
		var batch Batch
		for i := range batch {
			batch[i] = IdleCodeword
		}

		start := 0
		if first {
			slot := int((ric & 0x7) * 2)
			batch[slot] = address
			start = slot + 1
		}

		for i := start; i < SlotsPerBatch && len(remaining) > 0; i++ {
			batch[i] = remaining[0]
			remaining = remaining[1:]
		}

		batches = append(batches, batch)
		if len(remaining) == 0 {
			break
		}
	}

	return batches
}

// Transmission renders a preamble followed by one or more batches into the
// flat codeword sequence a caller would serialize bit by bit.
func Transmission(batches []Batch) []uint32 {
	words := make([]uint32, 0, PreambleWords+len(batches)*(1+SlotsPerBatch))
	for i := 0; i < PreambleWords; i++ {
		words = append(words, Preamble)
	}
	for _, b := range batches {
		words = append(words, SyncWord)
		words = append(words, b[:]...)
	}
	return words
}
