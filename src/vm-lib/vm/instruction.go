package vm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Opcode identifies a single VM operation.
type Opcode uint8

// Supported opcodes.
const (
	OpNop Opcode = iota
	OpPush
	OpPop
	OpDup
	OpSwap
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
	OpNot
	OpAnd
	OpOr
	OpJump
	OpJumpIf
	OpJumpUnless
	OpLoad
	OpStore
	OpGetGlobal
	OpSetGlobal
	OpCall
	OpReturn
	OpPrint
	OpSelf
	OpSend
	OpReceive
	OpSpawn
	OpSpawnLink
	OpLink
	OpUnlink
	OpMonitor
	OpTrapExit
	OpExit
	OpRegister
	OpWhereis
	OpRaise
	OpHalt
)

type argKind uint8

const (
	argNone argKind = iota
	argValue
	argInt
	argString
	argBool
	argProgram
)

type opcodeInfo struct {
	name string
	arg  argKind
}

var _opcodes = [...]opcodeInfo{
	OpNop:        {"NOP", argNone},
	OpPush:       {"PUSH", argValue},
	OpPop:        {"POP", argNone},
	OpDup:        {"DUP", argNone},
	OpSwap:       {"SWAP", argNone},
	OpAdd:        {"ADD", argNone},
	OpSub:        {"SUB", argNone},
	OpMul:        {"MUL", argNone},
	OpDiv:        {"DIV", argNone},
	OpMod:        {"MOD", argNone},
	OpEq:         {"EQ", argNone},
	OpNeq:        {"NEQ", argNone},
	OpLt:         {"LT", argNone},
	OpGt:         {"GT", argNone},
	OpLte:        {"LTE", argNone},
	OpGte:        {"GTE", argNone},
	OpNot:        {"NOT", argNone},
	OpAnd:        {"AND", argNone},
	OpOr:         {"OR", argNone},
	OpJump:       {"JUMP", argInt},
	OpJumpIf:     {"JUMP_IF", argInt},
	OpJumpUnless: {"JUMP_UNLESS", argInt},
	OpLoad:       {"LOAD", argInt},
	OpStore:      {"STORE", argInt},
	OpGetGlobal:  {"GET_GLOBAL", argString},
	OpSetGlobal:  {"SET_GLOBAL", argString},
	OpCall:       {"CALL", argInt},
	OpReturn:     {"RETURN", argNone},
	OpPrint:      {"PRINT", argNone},
	OpSelf:       {"SELF", argNone},
	OpSend:       {"SEND", argNone},
	OpReceive:    {"RECEIVE", argNone},
	OpSpawn:      {"SPAWN", argProgram},
	OpSpawnLink:  {"SPAWN_LINK", argProgram},
	OpLink:       {"LINK", argNone},
	OpUnlink:     {"UNLINK", argNone},
	OpMonitor:    {"MONITOR", argNone},
	OpTrapExit:   {"TRAP_EXIT", argBool},
	OpExit:       {"EXIT", argNone},
	OpRegister:   {"REGISTER", argString},
	OpWhereis:    {"WHEREIS", argString},
	OpRaise:      {"RAISE", argString},
	OpHalt:       {"HALT", argNone},
}

var _opcodesByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(_opcodes))
	for op, info := range _opcodes {
		m[info.name] = Opcode(op)
	}
	return m
}()

// String returns the canonical upper case name of the opcode.
func (o Opcode) String() string {
	if int(o) < len(_opcodes) {
		return _opcodes[o].name
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// LookupOpcode finds an opcode by name, ignoring case.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := _opcodesByName[strings.ToUpper(strings.TrimSpace(name))]
	return op, ok
}

// Instruction is one decoded program step.
type Instruction struct {
	Op  Opcode
	Arg Value
	// Body holds the program started by SPAWN and SPAWN_LINK.
	Body []Instruction
}

// HasArg reports whether the opcode takes an argument.
func (i Instruction) HasArg() bool {
	return int(i.Op) < len(_opcodes) && _opcodes[i.Op].arg != argNone
}

func (i Instruction) String() string {
	switch {
	case i.Body != nil:
		return fmt.Sprintf("%s <%d instructions>", i.Op, len(i.Body))
	case i.HasArg():
		return fmt.Sprintf("%s %s", i.Op, Format(i.Arg))
	}
	return i.Op.String()
}

// ParseProgram decodes a JSON array of instructions.
func ParseProgram(data []byte) ([]Instruction, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("program is not valid JSON")
	}
	return ParseInstructions(gjson.ParseBytes(data))
}

// ParseInstructions decodes an already parsed JSON array. Each element is either a bare
// opcode name or an object of the form {"op": "PUSH", "arg": 1}.
func ParseInstructions(r gjson.Result) ([]Instruction, error) {
	if !r.IsArray() {
		return nil, errors.New("instructions must be an array")
	}

	items := r.Array()
	out := make([]Instruction, 0, len(items))
	for idx, item := range items {
		in, err := parseInstruction(item)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", idx, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func parseInstruction(r gjson.Result) (Instruction, error) {
	var (
		name string
		arg  gjson.Result
	)
	switch {
	case r.Type == gjson.String:
		name = r.String()
	case r.IsObject():
		op := r.Get("op")
		if op.Type != gjson.String {
			return Instruction{}, errors.New(`missing string field "op"`)
		}
		name = op.String()
		arg = r.Get("arg")
	default:
		return Instruction{}, fmt.Errorf("unexpected %s, want opcode name or object", r.Type)
	}

	op, ok := LookupOpcode(name)
	if !ok {
		return Instruction{}, fmt.Errorf("unknown opcode %q", name)
	}

	in := Instruction{Op: op}
	kind := _opcodes[op].arg
	if kind == argNone {
		return in, nil
	}
	if !arg.Exists() {
		return Instruction{}, fmt.Errorf("%s requires an argument", op)
	}

	switch kind {
	case argValue:
		in.Arg = ValueFromJSON(arg)
	case argInt:
		v, ok := ToInt(ValueFromJSON(arg))
		if !ok {
			return Instruction{}, fmt.Errorf("%s requires an integer argument", op)
		}
		in.Arg = v
	case argString:
		if arg.Type != gjson.String {
			return Instruction{}, fmt.Errorf("%s requires a string argument", op)
		}
		in.Arg = arg.String()
	case argBool:
		if arg.Type != gjson.True && arg.Type != gjson.False {
			return Instruction{}, fmt.Errorf("%s requires a boolean argument", op)
		}
		in.Arg = arg.Bool()
	case argProgram:
		body, err := ParseInstructions(arg)
		if err != nil {
			return Instruction{}, fmt.Errorf("%s body: %w", op, err)
		}
		in.Body = body
	}
	return in, nil
}
