package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgram(t *testing.T) {
	t.Run("objects and bare names", func(t *testing.T) {
		program, err := ParseProgram([]byte(`[{"op":"push","arg":1}, "dup", {"op":"ADD"}, {"op":"TRAP_EXIT","arg":true}]`))
		require.NoError(t, err)
		require.Len(t, program, 4)
		assert.Equal(t, Instruction{Op: OpPush, Arg: int64(1)}, program[0])
		assert.Equal(t, OpDup, program[1].Op)
		assert.Equal(t, OpAdd, program[2].Op)
		assert.Equal(t, true, program[3].Arg)
		assert.Equal(t, "PUSH 1", program[0].String())
	})

	t.Run("spawn body", func(t *testing.T) {
		program, err := ParseProgram([]byte(`[{"op":"SPAWN","arg":["NOP","HALT"]}]`))
		require.NoError(t, err)
		require.Len(t, program[0].Body, 2)
		assert.Equal(t, OpHalt, program[0].Body[1].Op)
		assert.Equal(t, "SPAWN <2 instructions>", program[0].String())
	})

	tests := []struct {
		name    string
		program string
		wantErr string
	}{
		{name: "invalid json", program: `[`, wantErr: "program is not valid JSON"},
		{name: "not an array", program: `{"op":"NOP"}`, wantErr: "instructions must be an array"},
		{name: "unknown opcode", program: `["FLY"]`, wantErr: `instruction 0: unknown opcode "FLY"`},
		{name: "missing op", program: `["NOP", {"arg":1}]`, wantErr: `instruction 1: missing string field "op"`},
		{name: "missing arg", program: `[{"op":"PUSH"}]`, wantErr: "instruction 0: PUSH requires an argument"},
		{name: "non integer jump", program: `[{"op":"JUMP","arg":"x"}]`, wantErr: "instruction 0: JUMP requires an integer argument"},
		{name: "non string global", program: `[{"op":"GET_GLOBAL","arg":1}]`, wantErr: "instruction 0: GET_GLOBAL requires a string argument"},
		{name: "bad element", program: `[3]`, wantErr: "instruction 0: unexpected Number, want opcode name or object"},
		{name: "bad body", program: `[{"op":"SPAWN","arg":["NOPE"]}]`, wantErr: `instruction 0: SPAWN body: instruction 0: unknown opcode "NOPE"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProgram([]byte(tt.program))
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLookupOpcode(t *testing.T) {
	op, ok := LookupOpcode(" jump_unless ")
	assert.True(t, ok)
	assert.Equal(t, OpJumpUnless, op)

	_, ok = LookupOpcode("nope")
	assert.False(t, ok)
	assert.Equal(t, "Opcode(250)", Opcode(250).String())
}
