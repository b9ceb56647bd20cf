package pin

// Source records how the digits that completed a code were entered.
type Source string

const (
	SourceTyped  Source = "typed"
	SourcePasted Source = "pasted"
	SourceKeypad Source = "keypad"
)

func (s Source) Valid() bool {
	switch s {
	case SourceTyped, SourcePasted, SourceKeypad:
		return true
	}
	return false
}
