package decoder

import "strings"

func trimOWS(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && (b[start] == ' ' || b[start] == '\t') {
		start++
	}
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t') {
		end--
	}
	return b[start:end]
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }

func hasSuffixFold(value, suffix string) bool {
	last := value
	if i := strings.LastIndexByte(value, ','); i >= 0 {
		last = value[i+1:]
	}
	return strings.EqualFold(strings.TrimSpace(last), suffix)
}

func parseUint(s string) (int64, error) {
	if s == "" {
		return 0, errKind(BadFraming, 0, "empty Content-Length")
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errKind(BadFraming, i, "non-digit in Content-Length")
		}
		n = n*10 + int64(c-'0')
		if n < 0 {
			return 0, errKind(BadFraming, i, "Content-Length overflow")
		}
	}
	return n, nil
}

// parseChunkSize parses "hex-size [; extensions]" (spec §4.E: chunk
// extensions are ignored on input).
func parseChunkSize(line []byte) (int64, error) {
	if i := indexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = trimOWS(line)
	if len(line) == 0 {
		return 0, errKind(BadFraming, 0, "empty chunk size")
	}
	var n int64
	for _, b := range line {
		n <<= 4
		switch {
		case b >= '0' && b <= '9':
			n |= int64(b - '0')
		case b >= 'a' && b <= 'f':
			n |= int64(b-'a') + 10
		case b >= 'A' && b <= 'F':
			n |= int64(b-'A') + 10
		default:
			return 0, errKind(BadFraming, 0, "invalid hex chunk size")
		}
		if n < 0 {
			return 0, errKind(BadFraming, 0, "chunk size overflow")
		}
	}
	return n, nil
}
