package calc

// Memory is the single-value memory register. The zero value is an empty
// register holding 0.
type Memory struct {
	value float64
}

// Clear resets the register to 0.
func (m *Memory) Clear() {
	m.value = 0
}

// Recall returns the stored value.
func (m Memory) Recall() float64 {
	return m.value
}

// Add accumulates x into the register.
func (m *Memory) Add(x float64) {
	m.value += x
}

// Subtract removes x from the register.
func (m *Memory) Subtract(x float64) {
	m.value -= x
}

// IsSet reports whether the memory indicator should be lit.
func (m Memory) IsSet() bool {
	return m.value != 0
}
