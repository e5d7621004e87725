package edunet

// onesComplementChecksum is the Internet checksum of RFC 1071.
// from: https://github.com/google/gopacket/blob/master/layers/ip4.go#L158
func onesComplementChecksum(b []byte) uint16 {
	var csum uint32
	for i := 0; i+1 < len(b); i += 2 {
		csum += uint32(b[i]) << 8
		csum += uint32(b[i+1])
	}

	// odd length, pad with zero
	if len(b)%2 == 1 {
		csum += uint32(b[len(b)-1]) << 8
	}

	for csum > 0xffff {
		// Add carry to the sum
		csum = (csum >> 16) + uint32(uint16(csum))
	}
	// Flip all the bits
	return ^uint16(csum)
}
