package components

// DefaultMaxOutputLines bounds the output log when no size is configured
const DefaultMaxOutputLines = 5000

// OutputLog is a bounded FIFO of display lines. When full, appending a
// line evicts the oldest one.
type OutputLog struct {
	lines []string
	start int
	count int
}

func NewOutputLog(capacity int) *OutputLog {
	if capacity <= 0 {
		capacity = DefaultMaxOutputLines
	}
	return &OutputLog{lines: make([]string, capacity)}
}

// Append adds a line at the end, evicting the oldest when full
func (l *OutputLog) Append(line string) {
	if l.count < len(l.lines) {
		l.lines[(l.start+l.count)%len(l.lines)] = line
		l.count++
		return
	}
	l.lines[l.start] = line
	l.start = (l.start + 1) % len(l.lines)
}

// Len returns the number of lines held
func (l *OutputLog) Len() int {
	return l.count
}

// Cap returns the maximum number of lines held
func (l *OutputLog) Cap() int {
	return len(l.lines)
}

// At returns the i-th line, oldest first. It panics when i is out of range.
func (l *OutputLog) At(i int) string {
	if i < 0 || i >= l.count {
		panic("outputlog: index out of range")
	}
	return l.lines[(l.start+i)%len(l.lines)]
}

// Lines returns a copy of lines [from, to), clamped to the held range
func (l *OutputLog) Lines(from, to int) []string {
	from = max(from, 0)
	to = min(to, l.count)
	if from >= to {
		return nil
	}
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, l.At(i))
	}
	return out
}

func (l *OutputLog) Clear() {
	clear(l.lines)
	l.start = 0
	l.count = 0
}
