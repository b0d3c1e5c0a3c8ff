package parser

import "strings"

// builtinDateFormats are the built-in number format ids that display a date
// or time.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// IsDateFormat reports whether a number format renders its value as a date
// or time. numFmt is the format id and custom the format code for ids that
// are not built in.
func IsDateFormat(numFmt int, custom string) bool {
	if builtinDateFormats[numFmt] {
		return true
	}
	if custom == "" {
		return false
	}
	return isDateFormatCode(custom)
}

// isDateFormatCode inspects the first section of a format code for date or
// time tokens, ignoring quoted literals, escaped characters and bracketed
// colour/locale/elapsed-time directives.
func isDateFormatCode(code string) bool {
	if strings.EqualFold(code, "General") {
		return false
	}
	inQuote := false
	inBracket := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == ';':
			return false
		default:
			switch ch | 0x20 {
			case 'd', 'm', 'h', 'y', 's':
				return true
			}
		}
	}
	return false
}
