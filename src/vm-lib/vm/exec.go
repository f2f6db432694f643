package vm

import (
	"errors"
	"fmt"
)

// execute runs one instruction on p with the engine lock held. Failures crash the process.
func (e *Engine) execute(p *Process, in Instruction) {
	p.executed++

	if h, ok := e.hooks[in.Op]; ok {
		counter := p.counter
		e.mu.Unlock()
		err := h(p, in)
		e.mu.Lock()

		if err != nil {
			e.terminate(p, err.Error())
			return
		}
		if p.alive() && p.counter == counter {
			p.counter++
		}
		return
	}

	if err := e.exec(p, in); err != nil {
		e.terminate(p, err.Error())
	}
}

func (e *Engine) exec(p *Process, in Instruction) error {
	next := p.counter + 1

	switch in.Op {
	case OpNop:

	case OpPush:
		if err := p.push(in.Arg); err != nil {
			return err
		}

	case OpPop:
		if _, err := p.pop(); err != nil {
			return err
		}

	case OpDup:
		if len(p.stack) == 0 {
			return errors.New("stack underflow")
		}
		if err := p.push(p.stack[len(p.stack)-1]); err != nil {
			return err
		}

	case OpSwap:
		if len(p.stack) < 2 {
			return errors.New("stack underflow")
		}
		n := len(p.stack)
		p.stack[n-1], p.stack[n-2] = p.stack[n-2], p.stack[n-1]

	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		a, b, err := popPair(p)
		if err != nil {
			return err
		}
		v, err := arithmetic(in.Op, a, b)
		if err != nil {
			return err
		}
		p.stack = append(p.stack, v)

	case OpEq, OpNeq:
		a, b, err := popPair(p)
		if err != nil {
			return err
		}
		eq := Equal(a, b)
		p.stack = append(p.stack, eq == (in.Op == OpEq))

	case OpLt, OpGt, OpLte, OpGte:
		a, b, err := popPair(p)
		if err != nil {
			return err
		}
		v, err := compare(in.Op, a, b)
		if err != nil {
			return err
		}
		p.stack = append(p.stack, v)

	case OpAnd, OpOr:
		a, b, err := popPair(p)
		if err != nil {
			return err
		}
		if in.Op == OpAnd {
			p.stack = append(p.stack, Truthy(a) && Truthy(b))
		} else {
			p.stack = append(p.stack, Truthy(a) || Truthy(b))
		}

	case OpNot:
		v, err := p.pop()
		if err != nil {
			return err
		}
		p.stack = append(p.stack, !Truthy(v))

	case OpJump:
		target, err := jumpTarget(p, in)
		if err != nil {
			return err
		}
		next = target

	case OpJumpIf, OpJumpUnless:
		target, err := jumpTarget(p, in)
		if err != nil {
			return err
		}
		v, err := p.pop()
		if err != nil {
			return err
		}
		if Truthy(v) == (in.Op == OpJumpIf) {
			next = target
		}

	case OpLoad:
		idx, err := localIndex(in)
		if err != nil {
			return err
		}
		if idx >= p.maxLocals() {
			return fmt.Errorf("local index %d out of range", idx)
		}
		var v Value
		if idx < len(p.locals) {
			v = p.locals[idx]
		}
		if err := p.push(v); err != nil {
			return err
		}

	case OpStore:
		idx, err := localIndex(in)
		if err != nil {
			return err
		}
		v, err := p.pop()
		if err != nil {
			return err
		}
		if err := p.setLocal(idx, v); err != nil {
			return err
		}

	case OpGetGlobal:
		if err := p.push(p.globals[in.Arg.(string)]); err != nil {
			return err
		}

	case OpSetGlobal:
		v, err := p.pop()
		if err != nil {
			return err
		}
		p.globals[in.Arg.(string)] = v

	case OpCall:
		target, err := jumpTarget(p, in)
		if err != nil {
			return err
		}
		if limit := e.cfg.MaxStackSize; limit > 0 && len(p.callStack) >= limit {
			return errors.New("call stack overflow")
		}
		p.callStack = append(p.callStack, Frame{ReturnCounter: next})
		next = target

	case OpReturn:
		if len(p.callStack) == 0 {
			e.terminate(p, ReasonNormal)
			return nil
		}
		frame := p.callStack[len(p.callStack)-1]
		p.callStack = p.callStack[:len(p.callStack)-1]
		next = frame.ReturnCounter

	case OpPrint:
		v, err := p.pop()
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, Format(v))

	case OpSelf:
		if err := p.push(int64(p.address)); err != nil {
			return err
		}

	case OpSend:
		msg, err := p.pop()
		if err != nil {
			return err
		}
		raw, err := p.pop()
		if err != nil {
			return err
		}
		target, err := valueToAddress(raw)
		if err != nil {
			return err
		}
		delivered := e.send(target, msg)
		if e.cfg.MessageAcks {
			if err := p.push(delivered); err != nil {
				return err
			}
		}

	case OpReceive:
		if len(p.mailbox) == 0 {
			p.status = StatusWaiting
			return nil
		}
		msg := p.mailbox[0]
		p.mailbox = p.mailbox[1:]
		if err := p.push(msg); err != nil {
			return err
		}

	case OpSpawn, OpSpawnLink:
		child := e.spawn(in.Body)
		if in.Op == OpSpawnLink {
			e.link(p, child)
		}
		if err := p.push(int64(child.address)); err != nil {
			return err
		}

	case OpLink, OpUnlink:
		raw, err := p.pop()
		if err != nil {
			return err
		}
		addr, err := valueToAddress(raw)
		if err != nil {
			return err
		}
		other, ok := e.byAddress[addr]
		if in.Op == OpUnlink {
			if ok {
				e.unlink(p, other)
			}
			break
		}
		if !ok || !other.alive() {
			return fmt.Errorf("%s: %s", ReasonNoProc, addr)
		}
		e.link(p, other)

	case OpMonitor:
		raw, err := p.pop()
		if err != nil {
			return err
		}
		addr, err := valueToAddress(raw)
		if err != nil {
			return err
		}
		ref := e.monitor(p.address, addr)
		if err := p.push(int64(ref)); err != nil {
			return err
		}

	case OpTrapExit:
		p.trapExit = in.Arg.(bool)

	case OpExit:
		v, err := p.pop()
		if err != nil {
			return err
		}
		e.terminate(p, Format(v))
		return nil

	case OpRegister:
		if err := e.register(in.Arg.(string), p); err != nil {
			return err
		}

	case OpWhereis:
		var v Value
		if addr, ok := e.registry[in.Arg.(string)]; ok {
			v = int64(addr)
		}
		if err := p.push(v); err != nil {
			return err
		}

	case OpRaise:
		return errors.New(in.Arg.(string))

	case OpHalt:
		e.terminate(p, ReasonNormal)
		return nil

	default:
		return fmt.Errorf("unsupported opcode %s", in.Op)
	}

	p.counter = next
	return nil
}

func popPair(p *Process) (Value, Value, error) {
	b, err := p.pop()
	if err != nil {
		return nil, nil, err
	}
	a, err := p.pop()
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func jumpTarget(p *Process, in Instruction) (int, error) {
	target, _ := ToInt(in.Arg)
	if target < 0 || int(target) > len(p.instructions) {
		return 0, fmt.Errorf("%s target %d out of range", in.Op, target)
	}
	return int(target), nil
}

func localIndex(in Instruction) (int, error) {
	idx, _ := ToInt(in.Arg)
	if idx < 0 {
		return 0, fmt.Errorf("%s index %d is negative", in.Op, idx)
	}
	return int(idx), nil
}

func valueToAddress(v Value) (Address, error) {
	n, ok := ToInt(v)
	if !ok || n <= 0 {
		return 0, fmt.Errorf("invalid address %s", Format(v))
	}
	return Address(n), nil
}
