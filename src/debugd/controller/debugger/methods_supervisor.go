package debugger

import (
	"context"

	"github.com/grkek/juicy-fruit/src/debugd/entity"
	"github.com/grkek/juicy-fruit/src/debugd/internal/errors"
	"github.com/grkek/juicy-fruit/src/debugd/mapper"
	"github.com/grkek/juicy-fruit/src/vm-lib/vm"
)

// CreateSupervisor creates a supervisor owned by the session.
func (c *controller) CreateSupervisor(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, e, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}

	spec := vm.DefaultSupervisorSpec()
	if name, ok, err := mapper.OptionalString(req, "strategy"); err != nil {
		return nil, err
	} else if ok {
		strategy, err := vm.ParseStrategy(name)
		if err != nil {
			return nil, errors.Errorf(errors.CodeInvalidStrategy, "%v", err)
		}
		spec.Strategy = strategy
	}
	if v, ok, err := mapper.OptionalNonNegative(req, "maxRestarts"); err != nil {
		return nil, err
	} else if ok {
		spec.MaxRestarts = int(v)
	}
	if v, ok, err := mapper.OptionalNonNegative(req, "maxSeconds"); err != nil {
		return nil, err
	} else if ok {
		spec.MaxSeconds = int(v)
	}

	sup := e.NewSupervisor(spec)
	s.AddSupervisor(sup)
	return entity.NewEnvelope("supervisorCreated", entity.Fields{
		"supervisor": mapper.SupervisorToWire(sup.Info()),
	}), nil
}

// supervisor resolves the "supervisor" field against the session supervisors.
func (c *controller) supervisor(ctx context.Context, req *entity.Request) (*vm.Supervisor, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	id, err := mapper.RequestID(req, "supervisor")
	if err != nil {
		return nil, err
	}
	sup, ok := s.Supervisor(id)
	if !ok {
		return nil, errors.NotFound("supervisor", id)
	}
	return sup, nil
}

// AddChild starts a supervised child process.
func (c *controller) AddChild(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	sup, err := c.supervisor(ctx, req)
	if err != nil {
		return nil, err
	}
	id, err := mapper.RequestString(req, "id")
	if err != nil {
		return nil, err
	}
	if !req.Has("instructions") {
		return nil, errors.Missing("instructions")
	}

	restart := vm.Permanent
	if name, ok, err := mapper.OptionalString(req, "restart"); err != nil {
		return nil, err
	} else if ok {
		if restart, err = vm.ParseRestartPolicy(name); err != nil {
			return nil, errors.Errorf(errors.CodeInvalidRestart, "%v", err)
		}
	}
	program, err := mapper.RequestInstructions(req, "instructions")
	if err != nil {
		return nil, err
	}

	if _, err := sup.AddChild(vm.ChildSpec{ID: id, Instructions: program, Restart: restart}); err != nil {
		return nil, engineError(err)
	}

	child := entity.Fields{"id": id}
	for _, info := range sup.Children() {
		if info.ID == id {
			child = mapper.ChildToWire(info)
			break
		}
	}
	return entity.NewEnvelope("childAdded", entity.Fields{
		"supervisor": sup.Address().String(),
		"child":      child,
	}), nil
}

// ListSupervisors reports every session supervisor.
func (c *controller) ListSupervisors(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	s, _, _, err := c.initialized(ctx)
	if err != nil {
		return nil, err
	}
	sups := s.Supervisors()
	out := make([]entity.Fields, 0, len(sups))
	for _, sup := range sups {
		out = append(out, mapper.SupervisorToWire(sup.Info()))
	}
	return entity.NewEnvelope("supervisors", entity.Fields{
		"supervisors": out,
		"count":       len(out),
	}), nil
}

// GetSupervisorInfo reports one supervisor.
func (c *controller) GetSupervisorInfo(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	sup, err := c.supervisor(ctx, req)
	if err != nil {
		return nil, err
	}
	return entity.NewEnvelope("supervisorInfo", entity.Fields{
		"supervisor": mapper.SupervisorToWire(sup.Info()),
	}), nil
}

// GetSupervisorChildren reports the children of one supervisor.
func (c *controller) GetSupervisorChildren(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	sup, err := c.supervisor(ctx, req)
	if err != nil {
		return nil, err
	}
	children := sup.Children()
	return entity.NewEnvelope("supervisorChildren", entity.Fields{
		"supervisor": sup.Address().String(),
		"children":   mapper.ChildrenToWire(children),
		"count":      len(children),
	}), nil
}

// RemoveChild is not supported.
func (c *controller) RemoveChild(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	return nil, errors.Errorf(errors.CodeNotImplemented, "removeChild is not implemented")
}

// RestartChild is not supported.
func (c *controller) RestartChild(ctx context.Context, req *entity.Request) (*entity.Envelope, error) {
	return nil, errors.Errorf(errors.CodeNotImplemented, "restartChild is not implemented")
}
