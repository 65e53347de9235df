package field

import "strconv"

// IntValue converts a decimal integer field (e.g. Content-Length).
type IntValue struct{}

func (IntValue) AsFieldValue(v int64) string { return strconv.FormatInt(v, 10) }

func (IntValue) FromFieldValue(text string) (int64, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, parseErr(0, "not a decimal integer")
	}
	return n, nil
}
