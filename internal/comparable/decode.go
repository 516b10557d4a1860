package comparable

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// stringParts splits a string token into its lowercased prefix and body
// (the text between the quotes).
func stringParts(text string) (prefix, body string, ok bool) {
	i := strings.IndexAny(text, `'"`)
	if i < 0 {
		return "", "", false
	}
	prefix = strings.ToLower(text[:i])
	rest := text[i:]
	quote := rest[:1]
	if triple := strings.Repeat(quote, 3); len(rest) >= 6 && strings.HasPrefix(rest, triple) {
		quote = triple
	}
	if len(rest) < 2*len(quote) || !strings.HasSuffix(rest, quote) {
		return "", "", false
	}
	return prefix, rest[len(quote) : len(rest)-len(quote)], true
}

// hasReplacementField reports whether an f-string token has a {field}.
// Doubled braces are literal.
func hasReplacementField(text string) bool {
	prefix, body, ok := stringParts(text)
	if !ok || !strings.Contains(prefix, "f") {
		return false
	}
	for i := 0; i < len(body); i++ {
		if body[i] != '{' {
			continue
		}
		if i+1 < len(body) && body[i+1] == '{' {
			i++
			continue
		}
		return true
	}
	return false
}

// decodeString returns the value of one string or bytes token. ok is false
// when the value cannot be decoded statically (\N{name} escapes, lone
// surrogates, malformed escapes); callers then key by source text.
func decodeString(text string) (value string, isBytes, ok bool) {
	prefix, body, ok := stringParts(text)
	if !ok {
		return "", false, false
	}
	isBytes = strings.Contains(prefix, "b")
	raw := strings.Contains(prefix, "r")
	if strings.Contains(prefix, "f") {
		body = strings.NewReplacer("{{", "{", "}}", "}").Replace(body)
	}
	if raw {
		return body, isBytes, true
	}
	value, ok = unescape(body, isBytes)
	return value, isBytes, ok
}

func unescape(body string, isBytes bool) (string, bool) {
	if !strings.Contains(body, `\`) {
		return body, true
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			i++
			continue
		}
		n := body[i+1]
		i += 2
		switch n {
		case '\n':
			// продолжение строки
		case '\\', '\'', '"':
			b.WriteByte(n)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i - 1
			for j < len(body) && j < i+2 && body[j] >= '0' && body[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(body[i-1:j], 8, 32)
			i = j
			if !writeCode(&b, v, isBytes) {
				return "", false
			}
		case 'x':
			v, next, ok := hexDigits(body, i, 2)
			if !ok || !writeCode(&b, v, isBytes) {
				return "", false
			}
			i = next
		case 'u', 'U', 'N':
			if isBytes {
				b.WriteByte('\\')
				b.WriteByte(n)
				continue
			}
			if n == 'N' {
				return "", false
			}
			width := 4
			if n == 'U' {
				width = 8
			}
			v, next, ok := hexDigits(body, i, width)
			if !ok || !writeCode(&b, v, false) {
				return "", false
			}
			i = next
		default:
			// неизвестные escape-последовательности остаются как есть
			b.WriteByte('\\')
			b.WriteByte(n)
		}
	}
	return b.String(), true
}

func hexDigits(s string, at, width int) (uint64, int, bool) {
	if at+width > len(s) {
		return 0, at, false
	}
	v, err := strconv.ParseUint(s[at:at+width], 16, 32)
	if err != nil {
		return 0, at, false
	}
	return v, at + width, true
}

// writeCode appends a code point (str) or a byte value (bytes).
func writeCode(b *strings.Builder, v uint64, isBytes bool) bool {
	if isBytes {
		if v > 0xff {
			return false
		}
		b.WriteByte(byte(v))
		return true
	}
	r := rune(v)
	if v > utf8.MaxRune || !utf8.ValidRune(r) {
		return false
	}
	b.WriteRune(r)
	return true
}

// decodeInt returns the decimal value of an int literal.
func decodeInt(text string) (string, bool) {
	s := strings.ToLower(strings.ReplaceAll(text, "_", ""))
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0o"):
		base, s = 8, s[2:]
	case strings.HasPrefix(s, "0b"):
		base, s = 2, s[2:]
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// decodeFloat returns the IEEE-754 bits of a float literal. Out-of-range
// literals round to +Inf or 0, as in Python.
func decodeFloat(text string) (uint64, bool) {
	s := strings.ReplaceAll(text, "_", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return math.Float64bits(f), true
}
