package pocsag

// Codeword construction: address words and alphanumeric/numeric message
// words, per ITU-R M.584.

const (
	// AddressFlag marks a codeword as an address word (data bit 0 = 0).
	AddressFlag = 0
	// MessageFlag marks a codeword as a message word (data bit 0 = 1).
	MessageFlag = 1

	// blockBits is the width of one packed information block.
	blockBits = 20
)

// bcdNibble maps the numeric charset to its 4-bit code.
var bcdNibble = map[byte]uint32{
	'0': 0x0, '1': 0x1, '2': 0x2, '3': 0x3, '4': 0x4,
	'5': 0x5, '6': 0x6, '7': 0x7, '8': 0x8, '9': 0x9,
	'U': 0xA, ' ': 0xB, '-': 0xC, '[': 0xD, ']': 0xE,
}

// EncodeAddress builds the address codeword for RIC r: bits 3-20 of r form
// the 18-bit address field and the two low bits select the function code.
// The frame (r&0x7) is not encoded here; AssembleBatches places the word.
func EncodeAddress(r uint32) uint32 {
	address := (r >> 3) & 0x3FFFF
	function := r & 0x3
	data21 := (address << 3) | (function << 1) | AddressFlag
	return assembleCodeword(data21)
}

// bitBuffer accumulates bits LSB-first within each emitted unit and packs
// them MSB-first into 20-bit blocks, matching POCSAG's two coexisting bit
// orders: characters transmitted LSB-first, blocks transmitted MSB-first.
type bitBuffer struct {
	bits []bool
}

func (b *bitBuffer) pushLSB(value uint32, width int) {
	for i := 0; i < width; i++ {
		b.bits = append(b.bits, value&(1<<uint(i)) != 0)
	}
}

// padTo appends pad's low width bits, LSB-first, repeatedly until the
// buffer length is a multiple of blockBits, stopping as soon as the
// boundary is crossed even if that happens mid-character.
func (b *bitBuffer) padTo(pad uint32, width int) {
	for len(b.bits)%blockBits != 0 {
		remaining := blockBits - len(b.bits)%blockBits
		n := width
		if remaining < n {
			n = remaining
		}
		for i := 0; i < n; i++ {
			b.bits = append(b.bits, pad&(1<<uint(i)) != 0)
		}
	}
}

// blocks packs the accumulated bits into 20-bit values, MSB-first within
// each block. Caller must have already padded to a multiple of blockBits.
func (b *bitBuffer) blocks() []uint32 {
	out := make([]uint32, len(b.bits)/blockBits)
	for i := range out {
		var block uint32
		for j := 0; j < blockBits; j++ {
			block <<= 1
			if b.bits[i*blockBits+j] {
				block |= 1
			}
		}
		out[i] = block
	}
	return out
}

// EncodeAlphanumeric turns printable ASCII text into message codewords:
// each character's low 7 bits go in LSB-first, padded with LSB-first
// space (0x20) bits to the next 20-bit boundary, then packed MSB-first
// into 20-bit blocks and assembled with the message flag set.
func EncodeAlphanumeric(text string) []uint32 {
	var buf bitBuffer
	for i := 0; i < len(text); i++ {
		buf.pushLSB(uint32(text[i])&0x7F, 7)
	}
	buf.padTo(0x20, 7)
	return blocksToCodewords(buf.blocks())
}

// EncodeNumeric turns a numeric-charset string (digits, U, space, -, [, ])
// into message codewords, BCD nibbles emitted LSB-first and padded with
// LSB-first space (0xB) nibbles to the next 20-bit boundary.
func EncodeNumeric(text string) []uint32 {
	var buf bitBuffer
	for i := 0; i < len(text); i++ {
		buf.pushLSB(bcdNibble[text[i]], 4)
	}
	buf.padTo(0xB, 4)
	return blocksToCodewords(buf.blocks())
}

func blocksToCodewords(blocks []uint32) []uint32 {
	out := make([]uint32, len(blocks))
	for i, b := range blocks {
		data21 := (b << 1) | MessageFlag
		out[i] = assembleCodeword(data21)
	}
	return out
}
