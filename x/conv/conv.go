// Package conv formats numbers without fmt or strconv so MCU builds stay small.
package conv

// AppendUint appends the base-10 form of n to dst.
func AppendUint(dst []byte, n uint64) []byte {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(dst, tmp[i:]...)
}

// AppendPadded appends n right-aligned in width digits, zero-filled. Wider
// values are appended in full.
func AppendPadded(dst []byte, n uint64, width int) []byte {
	var tmp [20]byte
	d := AppendUint(tmp[:0], n)
	for i := len(d); i < width; i++ {
		dst = append(dst, '0')
	}
	return append(dst, d...)
}
