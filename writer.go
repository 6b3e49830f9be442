package ryu

// boundedWriter counts every byte of a rendering but stores only what fits.
// The destination ends up holding a truncated prefix while count reports the
// full untruncated length, matching snprintf.
type boundedWriter struct {
	dst   []byte
	count int
}

func (w *boundedWriter) writeByte(b byte) {
	if w.count < len(w.dst) {
		w.dst[w.count] = b
	}
	w.count++
}

func (w *boundedWriter) write(p []byte) {
	for i := 0; i < len(p); i++ {
		w.writeByte(p[i])
	}
}

// terminate places a closing NUL whenever the destination has any room:
// directly after the content if it fit, else over the final byte. The NUL is
// never part of count.
func (w *boundedWriter) terminate() {
	if w.count < len(w.dst) {
		w.dst[w.count] = 0
	} else if len(w.dst) > 0 {
		w.dst[len(w.dst)-1] = 0
	}
}
