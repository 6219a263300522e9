package host

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-vivid/vivid/pkg/effects"
	vviderr "github.com/go-vivid/vivid/pkg/errors"
)

// errCancelled is the internal signal that the mount was unmounted during
// a suspension point. It is mapped to ErrMountCancelled at the API edge.
var errCancelled = fmt.Errorf("mount cancelled")

// runLifecycle drives a constructed component to the running state:
//
//	Constructed -> (optional) Setup -> (optional) Init[0..n] -> (optional) Start -> Running
//
// The ordering is fixed. Setup and each init call are suspension points:
// after every one, the cancellation check runs, and a cleared mount flag
// stops the sequence immediately. Failures surface as LifecycleError; the
// caller tears the partially-constructed instance down before the error
// propagates.
func runLifecycle(ctx context.Context, effectID string, comp effects.Component, caps effects.Capabilities, desc *effects.Descriptor, cancelled func() bool) error {
	if desc.WantsSetup(caps) && caps.Setup {
		if err := runSetup(ctx, comp); err != nil {
			return &vviderr.LifecycleError{EffectID: effectID, Step: "setup", Err: err}
		}
		if cancelled() {
			return errCancelled
		}
	}

	if desc != nil {
		for _, call := range desc.Init {
			if err := invokeInit(comp, call); err != nil {
				return &vviderr.LifecycleError{EffectID: effectID, Step: "init:" + call.Method, Err: err}
			}
			if cancelled() {
				return errCancelled
			}
		}
	}

	if desc.ShouldAutoStart() && caps.Start {
		if err := runStart(comp); err != nil {
			return &vviderr.LifecycleError{EffectID: effectID, Step: "start", Err: err}
		}
	}
	// Running: no further orchestrator action until teardown.
	return nil
}

func runSetup(ctx context.Context, comp effects.Component) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setup panicked: %v", r)
		}
	}()
	return comp.(effects.SetupRunner).Setup(ctx)
}

func runStart(comp effects.Component) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start panicked: %v", r)
		}
	}()
	comp.(effects.Starter).Start()
	return nil
}

// invokeInit executes one declared init call by method name. Descriptors
// are a declarative hint, not a contract: a missing method, an arity
// mismatch, or an inconvertible argument makes the step a no-op rather
// than a fatal error. A call that runs and returns or raises an error is
// fatal.
func invokeInit(comp effects.Component, call effects.Call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("init call panicked: %v", r)
		}
	}()

	method := reflect.ValueOf(comp).MethodByName(call.Method)
	if !method.IsValid() {
		return nil
	}
	mt := method.Type()
	if mt.IsVariadic() || mt.NumIn() != len(call.Args) {
		return nil
	}

	args := make([]reflect.Value, len(call.Args))
	for i, raw := range call.Args {
		av := reflect.ValueOf(raw)
		switch {
		case !av.IsValid():
			return nil
		case av.Type().AssignableTo(mt.In(i)):
			args[i] = av
		case av.Type().ConvertibleTo(mt.In(i)):
			args[i] = av.Convert(mt.In(i))
		default:
			return nil
		}
	}

	results := method.Call(args)
	for _, res := range results {
		if res.Type() == reflect.TypeOf((*error)(nil)).Elem() && !res.IsNil() {
			return res.Interface().(error)
		}
	}
	return nil
}
