package debugger

import (
	"context"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
)

// KillProcess terminates a process unconditionally.
func (c *controller) KillProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}
	reason, _, err := mapper.OptionalString(req, "reason")
	if err != nil {
		return nil, err
	}
	if reason == "" || reason == vm.ReasonKill {
		reason = vm.ReasonKilled
	}

	if err := e.Kill(addr, reason); err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processKilled", entity.Fields{
		"address": addr.String(),
		"reason":  reason,
	}), nil
}

// SendMessage delivers a message to a process mailbox.
func (c *controller) SendMessage(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}
	msg, err := mapper.RequestValue(req, "message")
	if err != nil {
		return nil, err
	}

	delivered, err := e.Send(addr, msg)
	if err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("messageSent", entity.Fields{
		"address":   addr.String(),
		"delivered": delivered,
	}), nil
}

// GetMailbox reports the pending messages of a process.
func (c *controller) GetMailbox(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}
	p, err := process(e, addr)
	if err != nil {
		return nil, err
	}

	mailbox := p.Snapshot().Mailbox
	return entity.NewEnvelope("mailbox", entity.Fields{
		"address":  addr.String(),
		"messages": mapper.ValuesToWire(mailbox),
		"count":    len(mailbox),
	}), nil
}

// SpawnProcess starts an independent process.
func (c *controller) SpawnProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	program, err := mapper.RequestInstructions(req, "instructions")
	if err != nil {
		return nil, err
	}

	p := e.Spawn(program)
	return entity.NewEnvelope("processSpawned", entity.Fields{
		"address": p.Address().String(),
	}), nil
}

// SpawnLinkedProcess starts a process linked to a parent.
func (c *controller) SpawnLinkedProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	program, err := mapper.RequestInstructions(req, "instructions")
	if err != nil {
		return nil, err
	}
	parent, err := mapper.RequestAddress(req, "parent", "parent")
	if err != nil {
		return nil, err
	}

	p, err := e.SpawnLinked(parent, program)
	if err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processSpawned", entity.Fields{
		"address":  p.Address().String(),
		"linkedTo": parent.String(),
	}), nil
}

// SpawnMonitoredProcess starts a process monitored by a watcher.
func (c *controller) SpawnMonitoredProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	program, err := mapper.RequestInstructions(req, "instructions")
	if err != nil {
		return nil, err
	}
	watcher, err := mapper.RequestAddress(req, "watcher", "watcher")
	if err != nil {
		return nil, err
	}

	p, ref, err := e.SpawnMonitored(watcher, program)
	if err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processSpawned", entity.Fields{
		"address":     p.Address().String(),
		"monitoredBy": watcher.String(),
		"monitorRef":  ref.String(),
	}), nil
}

// pair decodes the two process addresses of a topology command.
func pair(req *entity.Request, first, second string) (vm.Address, vm.Address, error) {
	a, err := mapper.RequestAddress(req, first, "address")
	if err != nil {
		return 0, 0, err
	}
	b, err := mapper.RequestAddress(req, second, "address")
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// LinkProcesses links two processes.
func (c *controller) LinkProcesses(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	a, b, err := pair(req, "first", "second")
	if err != nil {
		return nil, err
	}

	if err := e.Link(a, b); err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processesLinked", entity.Fields{
		"first":  a.String(),
		"second": b.String(),
	}), nil
}

// UnlinkProcesses removes the link between two processes.
func (c *controller) UnlinkProcesses(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	a, b, err := pair(req, "first", "second")
	if err != nil {
		return nil, err
	}

	if err := e.Unlink(a, b); err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processesUnlinked", entity.Fields{
		"first":  a.String(),
		"second": b.String(),
	}), nil
}

// MonitorProcess makes the watcher receive a DOWN message when the target terminates.
func (c *controller) MonitorProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	watcher, target, err := pair(req, "watcher", "target")
	if err != nil {
		return nil, err
	}

	ref, err := e.Monitor(watcher, target)
	if err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processMonitored", entity.Fields{
		"watcher":    watcher.String(),
		"target":     target.String(),
		"monitorRef": ref.String(),
	}), nil
}

// DemonitorProcess removes a monitor.
func (c *controller) DemonitorProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := mapper.RequestMonitorRef(req)
	if err != nil {
		return nil, err
	}

	if err := e.Demonitor(ref); err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processDemonitored", entity.Fields{
		"ref": ref.String(),
	}), nil
}

// SetTrapExit toggles whether exit signals reach a process as messages.
func (c *controller) SetTrapExit(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}
	enabled, err := mapper.RequestBool(req, "enabled")
	if err != nil {
		return nil, err
	}

	if err := e.SetTrapExit(addr, enabled); err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("trapExitSet", entity.Fields{
		"address": addr.String(),
		"enabled": enabled,
	}), nil
}

// ExitProcess sends an exit signal as if it came from a linked process.
func (c *controller) ExitProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}
	reason, _, err := mapper.OptionalString(req, "reason")
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = vm.ReasonNormal
	}

	if err := e.Exit(addr, reason); err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("exitSignalSent", entity.Fields{
		"address": addr.String(),
		"reason":  reason,
	}), nil
}

// RegisterProcess binds a name to a live process.
func (c *controller) RegisterProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	name, err := mapper.RequestString(req, "name")
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}

	if err := e.Register(name, addr); err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processRegistered", entity.Fields{
		"name":    name,
		"address": addr.String(),
	}), nil
}

// WhereisProcess resolves a registered name. Unknown names resolve to null.
func (c *controller) WhereisProcess(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	name, err := mapper.RequestString(req, "name")
	if err != nil {
		return nil, err
	}

	fields := entity.Fields{"name": name, "address": nil}
	if addr, ok := e.Whereis(name); ok {
		fields["address"] = addr.String()
	}
	return entity.NewEnvelope("whereis", fields), nil
}

// GetProcessLinks reports the processes linked to one process.
func (c *controller) GetProcessLinks(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}

	links, err := e.Links(addr)
	if err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processLinks", entity.Fields{
		"address": addr.String(),
		"links":   mapper.AddressesToWire(links),
		"count":   len(links),
	}), nil
}

// GetProcessMonitors reports the monitors a process takes part in.
func (c *controller) GetProcessMonitors(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	_, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := mapper.RequestAddress(req, "address", "address")
	if err != nil {
		return nil, err
	}

	monitors, err := e.Monitors(addr)
	if err != nil {
		return nil, engineError(err)
	}
	return entity.NewEnvelope("processMonitors", entity.Fields{
		"address":  addr.String(),
		"monitors": mapper.MonitorsToWire(monitors),
		"count":    len(monitors),
	}), nil
}
