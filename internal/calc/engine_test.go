package calc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// press feeds command ids to the engine and fails the test on any error.
func press(t *testing.T, e *Engine, ids ...string) Snapshot {
	t.Helper()
	var snap Snapshot
	for _, id := range ids {
		cmd, err := ParseCommand(id)
		require.NoError(t, err, "parse %q", id)
		snap, err = e.Dispatch(cmd)
		require.NoError(t, err, "dispatch %q", id)
	}
	return snap
}

func TestEngine_InitialState(t *testing.T) {
	snap := New().Snapshot()
	assert.Equal(t, "0", snap.Display)
	assert.True(t, snap.EntryMode)
	assert.Equal(t, OpNone, snap.PendingOperator)
	assert.False(t, snap.MemorySet)
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.LastCalculation)
	assert.Empty(t, snap.Expression)
}

func TestEngine_DigitEntry(t *testing.T) {
	e := New()
	snap := press(t, e, "num-0", "num-0", "num-4", "num-2")
	assert.Equal(t, "42", snap.Display)
	assert.False(t, snap.EntryMode)
}

func TestEngine_DigitEntryIsBounded(t *testing.T) {
	e := New()
	for i := 0; i < 20; i++ {
		press(t, e, "num-9")
	}
	assert.Equal(t, "999999999999", e.Display())
	assert.Len(t, e.Display(), MaxDisplayLen)
}

func TestEngine_Decimal(t *testing.T) {
	e := New()
	snap := press(t, e, "decimal", "num-5", "decimal", "num-2")
	assert.Equal(t, "0.52", snap.Display)

	e = New()
	snap = press(t, e, "num-3", "decimal")
	assert.Equal(t, "3.", snap.Display)
}

func TestEngine_DecimalRespectsLength(t *testing.T) {
	e := New()
	for i := 0; i < MaxDisplayLen; i++ {
		press(t, e, "num-1")
	}
	press(t, e, "decimal")
	assert.Equal(t, "111111111111", e.Display())
}

func TestEngine_ChainedOperatorsResolveLeftToRight(t *testing.T) {
	e := New()
	snap := press(t, e, "num-2", "add", "num-3", "multiply", "num-4", "equals")

	assert.Equal(t, "20", snap.Display)
	want := []string{"5 × 4 = 20", "2 + 3 = 5"}
	if diff := cmp.Diff(want, snap.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "5 × 4 =", snap.LastCalculation)
	assert.Equal(t, OpNone, snap.PendingOperator)
	assert.True(t, snap.EntryMode)
}

func TestEngine_OperatorShowsIntermediateResult(t *testing.T) {
	e := New()
	snap := press(t, e, "num-2", "add", "num-3", "multiply")
	assert.Equal(t, "5", snap.Display)
	assert.Equal(t, "2 + 3 =", snap.LastCalculation)
	assert.Equal(t, OpMultiply, snap.PendingOperator)
}

func TestEngine_FloatNoiseIsFormatted(t *testing.T) {
	e := New()
	snap := press(t, e, "decimal", "num-1", "add", "decimal", "num-2", "equals")
	assert.Equal(t, "3.00000e-1", snap.Display)
	assert.Equal(t, []string{"0.1 + 0.2 = 0.30000000000000004"}, snap.History)
}

func TestEngine_EqualsIsNotSticky(t *testing.T) {
	e := New()
	press(t, e, "num-6", "subtract", "num-1", "equals")
	snap := press(t, e, "equals", "equals")
	assert.Equal(t, "5", snap.Display)
	assert.Len(t, snap.History, 1)
}

func TestEngine_EqualsWithoutOperatorIsNoop(t *testing.T) {
	e := New()
	snap := press(t, e, "num-8", "equals")
	assert.Equal(t, "8", snap.Display)
	assert.Empty(t, snap.History)
}

func TestEngine_DivideByZero(t *testing.T) {
	e := New()
	snap := press(t, e, "num-5", "divide", "num-0", "equals")
	assert.Equal(t, ErrorMarker, snap.Display)
	assert.True(t, snap.EntryMode)
	assert.Equal(t, []string{"5 ÷ 0 = Error"}, snap.History)

	snap = press(t, e, "num-7")
	assert.Equal(t, "7", snap.Display)
}

func TestEngine_SquareRootOfNegative(t *testing.T) {
	e := New()
	press(t, e, "num-4", "sign")
	assert.Equal(t, "-4", e.Display())

	snap := press(t, e, "sqrt")
	assert.Equal(t, ErrorMarker, snap.Display)
	assert.True(t, snap.EntryMode)

	snap = press(t, e, "num-5")
	assert.Equal(t, "5", snap.Display)
}

func TestEngine_SquareRoot(t *testing.T) {
	e := New()
	snap := press(t, e, "num-8", "num-1", "sqrt")
	assert.Equal(t, "9", snap.Display)
	assert.True(t, snap.EntryMode)
}

func TestEngine_ReciprocalOfZeroIsNoop(t *testing.T) {
	e := New()
	before := e.Snapshot()
	snap := press(t, e, "fraction")
	assert.Equal(t, before, snap)
	assert.Empty(t, snap.History)
}

func TestEngine_Reciprocal(t *testing.T) {
	e := New()
	snap := press(t, e, "num-4", "fraction")
	assert.Equal(t, "0.25", snap.Display)
	assert.True(t, snap.EntryMode)
}

func TestEngine_Square(t *testing.T) {
	e := New()
	press(t, e, "num-2", "add", "num-3", "equals")
	snap := press(t, e, "square")
	assert.Equal(t, "25", snap.Display)
	assert.Empty(t, snap.LastCalculation)
}

func TestEngine_Pi(t *testing.T) {
	snap := press(t, New(), "pi")
	assert.Equal(t, "3.14159e+0", snap.Display)
	assert.True(t, snap.EntryMode)
}

func TestEngine_SignToggleKeepsEntryMode(t *testing.T) {
	e := New()
	press(t, e, "num-1", "num-2", "sign")
	assert.Equal(t, "-12", e.Display())
	snap := press(t, e, "num-3")
	assert.Equal(t, "-123", snap.Display)
}

func TestEngine_Backspace(t *testing.T) {
	e := New()
	press(t, e, "num-4", "num-2")

	snap := press(t, e, "backspace")
	assert.Equal(t, "4", snap.Display)
	assert.False(t, snap.EntryMode)

	snap = press(t, e, "backspace")
	assert.Equal(t, "0", snap.Display)
	assert.True(t, snap.EntryMode)
}

func TestEngine_BackspaceOverErrorAndSign(t *testing.T) {
	e := New()
	press(t, e, "num-1", "divide", "num-0", "equals", "backspace")
	assert.Equal(t, "0", e.Display())

	e = New()
	press(t, e, "num-5", "sign", "backspace")
	assert.Equal(t, "0", e.Display())
	assert.True(t, e.Snapshot().EntryMode)
}

func TestEngine_PercentUnchained(t *testing.T) {
	e := New()
	snap := press(t, e, "num-5", "num-0", "percent")
	assert.Equal(t, "0.5", snap.Display)
	assert.True(t, snap.EntryMode)
}

func TestEngine_PercentChainedIsPreviewOnly(t *testing.T) {
	e := New()
	snap := press(t, e, "num-2", "num-0", "num-0", "add", "num-1", "num-0", "percent")
	assert.Equal(t, "20", snap.Display)
	assert.Equal(t, OpAdd, snap.PendingOperator)

	// The preview becomes the second operand; the pending operand is still 200.
	snap = press(t, e, "equals")
	assert.Equal(t, "220", snap.Display)
	assert.Equal(t, "200 + 20 = 220", snap.History[0])
}

func TestEngine_Clear(t *testing.T) {
	e := New()
	press(t, e, "num-9", "m+", "num-2", "add", "num-3", "clear")
	snap := e.Snapshot()
	assert.Equal(t, "0", snap.Display)
	assert.Equal(t, OpNone, snap.PendingOperator)
	assert.True(t, snap.EntryMode)
	assert.Empty(t, snap.Expression)
	assert.True(t, snap.MemorySet, "clear keeps memory")

	// No operand survives the clear.
	snap = press(t, e, "num-4", "equals")
	assert.Equal(t, "4", snap.Display)
}

func TestEngine_MemoryRecallZeroIsNoop(t *testing.T) {
	e := New()
	press(t, e, "num-3", "num-1")
	snap := press(t, e, "mr")
	assert.Equal(t, "31", snap.Display)
	assert.False(t, snap.EntryMode)
}

func TestEngine_MemoryRecall(t *testing.T) {
	e := New()
	press(t, e, "num-7", "m+", "clear", "num-1", "num-2")
	snap := press(t, e, "mr")
	assert.Equal(t, "7", snap.Display)
	assert.True(t, snap.EntryMode)
	assert.True(t, snap.MemorySet)
	assert.Equal(t, float64(7), snap.Memory)
}

func TestEngine_MemoryArithmetic(t *testing.T) {
	e := New()
	press(t, e, "num-1", "num-0", "m+", "clear", "num-4", "m-")
	assert.Equal(t, float64(6), e.Snapshot().Memory)

	snap := press(t, e, "mc")
	assert.False(t, snap.MemorySet)
}

func TestEngine_HistoryCommands(t *testing.T) {
	e := New()
	press(t, e, "num-3", "add", "num-4", "equals", "clear")

	snap := press(t, e, "history")
	assert.True(t, snap.HistoryVisible)

	snap, err := e.Dispatch(SelectCommand("3 + 4 = 7"))
	require.NoError(t, err)
	assert.Equal(t, "7", snap.Display)
	assert.True(t, snap.EntryMode)
	assert.False(t, snap.HistoryVisible)

	snap = press(t, e, "history", "history-clear")
	assert.Empty(t, snap.History)
	assert.False(t, snap.HistoryVisible)
}

func TestEngine_HistorySelectReformats(t *testing.T) {
	e := New()
	snap, err := e.Dispatch(SelectCommand("99999 × 99999999 = 9999899990001"))
	require.NoError(t, err)
	assert.Equal(t, "9.99990e+12", snap.Display)
}

func TestEngine_HistorySelectMalformed(t *testing.T) {
	e := New()
	press(t, e, "num-5")
	before := e.Snapshot()

	snap, err := e.Dispatch(SelectCommand("garbage"))
	assert.ErrorIs(t, err, ErrMalformedEntry)
	assert.Equal(t, before, snap)
}

func TestEngine_Expression(t *testing.T) {
	e := New()
	snap := press(t, e, "num-1", "num-2", "multiply")
	assert.Equal(t, "12 ×", snap.Expression)

	snap = press(t, e, "num-3")
	assert.Equal(t, "12 × 3", snap.Expression)

	snap = press(t, e, "equals")
	assert.Equal(t, "12 × 3 =", snap.Expression)
}

func TestEngine_RepeatedOperatorUsesDisplay(t *testing.T) {
	e := New()
	snap := press(t, e, "num-2", "add", "add")
	assert.Equal(t, "4", snap.Display)
	assert.Equal(t, []string{"2 + 2 = 4"}, snap.History)
}

func TestEngine_RejectsInvalidCommands(t *testing.T) {
	e := New()
	_, err := e.Dispatch(Command{Kind: KindDigit, Digit: 12})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = e.Dispatch(OperatorCommand(OpNone))
	assert.ErrorIs(t, err, ErrUnknownOperator)

	_, err = e.Dispatch(Command{})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Equal(t, "0", e.Display())
}

func TestEngine_LogsCommands(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := New(WithLogger(zap.New(core)))

	press(t, e, "num-1", "divide", "num-0", "equals")

	applied := logs.FilterMessage("command applied").All()
	require.Len(t, applied, 4)
	assert.Equal(t, e.SessionID(), applied[0].ContextMap()["session"])
	assert.Equal(t, "equals", applied[3].ContextMap()["command"])
	assert.Equal(t, 1, logs.FilterMessage("evaluation failed").Len())
}
