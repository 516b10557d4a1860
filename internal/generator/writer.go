package generator

// writer accumulates generated text.
type writer struct {
	buf []byte
}

func (w *writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

func (w *writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// Space writes a single space unless the output is empty or already ends
// with one.
func (w *writer) Space() {
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] == ' ' {
		return
	}
	w.buf = append(w.buf, ' ')
}

func (w *writer) String() string {
	return string(w.buf)
}

func (w *writer) Reset() {
	w.buf = w.buf[:0]
}
