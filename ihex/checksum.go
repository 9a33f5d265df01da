package ihex

// Sum returns the 8-bit sum of all bytes.
func Sum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Checksum computes the record checksum over data.
// Uses basic summation with 2's complement.
func Checksum(data []byte) byte {
	return ^Sum(data) + 1
}
