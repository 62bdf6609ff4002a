package decoder

import (
	"strings"

	"aztecscan"
	"aztecscan/charset"
)

// Encoding-mode tables per ISO/IEC 24778:2008. CTRL_ entries are
// table-change commands: CTRL_XY with X the table initial
// (U/L/M/D/P/B) and Y either S (shift) or L (latch).

const (
	tableUpper = iota
	tableLower
	tableMixed
	tableDigit
	tablePunct
	tableBinary
)

var upperTable = [32]string{
	"CTRL_PS", " ", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P",
	"Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z", "CTRL_LL", "CTRL_ML", "CTRL_DL", "CTRL_BS",
}

var lowerTable = [32]string{
	"CTRL_PS", " ", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p",
	"q", "r", "s", "t", "u", "v", "w", "x", "y", "z", "CTRL_US", "CTRL_ML", "CTRL_DL", "CTRL_BS",
}

var mixedTable = [32]string{
	"CTRL_PS", " ", "\x01", "\x02", "\x03", "\x04", "\x05", "\x06", "\x07", "\b", "\t", "\n",
	"\x0b", "\f", "\r", "\x1b", "\x1c", "\x1d", "\x1e", "\x1f", "@", "\\", "^", "_",
	"`", "|", "~", "\x7f", "CTRL_LL", "CTRL_UL", "CTRL_PL", "CTRL_BS",
}

var punctTable = [32]string{
	"FLG(n)", "\r", "\r\n", ". ", ", ", ": ", "!", "\"", "#", "$", "%", "&", "'", "(", ")",
	"*", "+", ",", "-", ".", "/", ":", ";", "<", "=", ">", "?", "[", "]", "{", "}", "CTRL_UL",
}

var digitTable = [16]string{
	"CTRL_PS", " ", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ",", ".", "CTRL_UL", "CTRL_US",
}

// tableForInitial returns the table constant for a table initial.
func tableForInitial(t byte) int {
	switch t {
	case 'L':
		return tableLower
	case 'P':
		return tablePunct
	case 'M':
		return tableMixed
	case 'D':
		return tableDigit
	case 'B':
		return tableBinary
	default: // 'U'
		return tableUpper
	}
}

// tableEntry returns the string entry for the given table and code.
func tableEntry(table, code int) string {
	switch table {
	case tableUpper:
		return upperTable[code]
	case tableLower:
		return lowerTable[code]
	case tableMixed:
		return mixedTable[code]
	case tablePunct:
		return punctTable[code]
	case tableDigit:
		return digitTable[code]
	default:
		return ""
	}
}

// decodeBitStream decodes the corrected data-bit stream into text using
// the Aztec five-mode encoding scheme, and collects the raw bytes of
// each binary-shift run as a byte segment.
func decodeBitStream(bits []bool) (string, [][]byte, error) {
	endIndex := len(bits)
	latchTable := tableUpper // table most recently latched to
	shiftTable := tableUpper // table to use for the next read

	var result strings.Builder
	var segments [][]byte

	// Decoded bytes accumulate here and are flushed to the result
	// whenever the character encoding changes (ECI) or input ends.
	var decodedBytes []byte
	var eci *charset.ECI // nil means ISO-8859-1 (default)

	index := 0
	for index < endIndex {
		if shiftTable == tableBinary {
			if endIndex-index < 5 {
				break
			}
			length := readCode(bits, index, 5)
			index += 5
			if length == 0 {
				if endIndex-index < 11 {
					break
				}
				length = readCode(bits, index, 11) + 31
				index += 11
			}
			var segment []byte
			for charCount := 0; charCount < length; charCount++ {
				if endIndex-index < 8 {
					index = endIndex // force the outer loop to exit
					break
				}
				code := readCode(bits, index, 8)
				decodedBytes = append(decodedBytes, byte(code))
				segment = append(segment, byte(code))
				index += 8
			}
			if len(segment) > 0 {
				segments = append(segments, segment)
			}
			// Go back to whatever mode we had been in.
			shiftTable = latchTable
			continue
		}

		size := 5
		if shiftTable == tableDigit {
			size = 4
		}
		if endIndex-index < size {
			break
		}
		code := readCode(bits, index, size)
		index += size
		str := tableEntry(shiftTable, code)
		switch {
		case str == "FLG(n)":
			if endIndex-index < 3 {
				index = endIndex
				break
			}
			n := readCode(bits, index, 3)
			index += 3
			// FLG changes the character encoding; flush what we have.
			result.WriteString(flushBytes(decodedBytes, eci))
			decodedBytes = decodedBytes[:0]
			switch n {
			case 0:
				result.WriteByte(29) // FNC1 as ASCII 29
			case 7:
				return "", nil, aztecscan.ErrFormat // FLG(7) is reserved
			default:
				// ECI is a decimal integer of n digits in digit mode.
				if endIndex-index < 4*n {
					index = endIndex
					break
				}
				value := 0
				for ; n > 0; n-- {
					digit := readCode(bits, index, 4)
					index += 4
					if digit < 2 || digit > 11 {
						return "", nil, aztecscan.ErrFormat // not a decimal digit
					}
					value = value*10 + (digit - 2)
				}
				next, err := charset.ByValue(value)
				if err != nil || next == nil {
					return "", nil, aztecscan.ErrFormat
				}
				eci = next
			}
			shiftTable = latchTable
		case strings.HasPrefix(str, "CTRL_"):
			// Table change. ISO/IEC 24778:2008 prescribes ending a shift
			// sequence in the mode from which it was invoked, including
			// when that mode is itself a shift.
			latchTable = shiftTable
			shiftTable = tableForInitial(str[5])
			if str[6] == 'L' {
				latchTable = shiftTable
			}
		default:
			// Table entries represent 1 or 2 raw bytes.
			decodedBytes = append(decodedBytes, str...)
			shiftTable = latchTable
		}
	}
	result.WriteString(flushBytes(decodedBytes, eci))

	return result.String(), segments, nil
}

// flushBytes converts accumulated bytes to a string using the active
// ECI. Without an ECI the default is ISO-8859-1: each byte value is its
// Unicode code point.
func flushBytes(data []byte, eci *charset.ECI) string {
	if len(data) == 0 {
		return ""
	}
	if eci == nil {
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return string(runes)
	}
	return eci.Decode(data)
}

// readCode reads a length-bit code at startIndex, MSB first.
func readCode(bits []bool, startIndex, length int) int {
	res := 0
	for i := startIndex; i < startIndex+length; i++ {
		res <<= 1
		if bits[i] {
			res |= 1
		}
	}
	return res
}
