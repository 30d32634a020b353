package log

// Windows consoles are not guaranteed to understand ANSI escape sequences.

func colorSupported() bool {
	return false
}

func (s Severity) color() string {
	return ""
}

func endColor() string {
	return ""
}
