package host

import (
	"fmt"
	"reflect"

	"github.com/go-vivid/vivid/pkg/effects"
	vviderr "github.com/go-vivid/vivid/pkg/errors"
)

// builder attempts to construct a component from one export. ok reports
// whether the export had a constructible shape at all; err carries a
// construction failure from a shape that did match.
type builder func(export any) (comp effects.Component, ok bool, err error)

// instantiate runs the ordered fallback search over a module's exports:
//
//  1. the primary (default) export, attempted directly;
//  2. members of a non-constructible default-export namespace, by
//     candidate name, in metadata order;
//  3. the module's named exports, by candidate name, in metadata order.
//
// A failed attempt discards that candidate and advances; the first
// successful construction wins. Exhaustion yields an InstantiationError
// carrying every name attempted.
func instantiate(effectID string, mod effects.Module, candidates []string, build builder) (effects.Component, error) {
	var attempted []string

	tryExport := func(name string, export any) (effects.Component, bool) {
		attempted = append(attempted, name)
		comp, ok, err := safeBuild(build, export)
		if !ok || err != nil || comp == nil {
			return nil, false
		}
		return comp, true
	}

	if _, isNamespace := mod.Default.(effects.Namespace); mod.Default != nil && !isNamespace {
		if comp, ok := tryExport("default", mod.Default); ok {
			return comp, nil
		}
	}

	if ns, ok := mod.Default.(effects.Namespace); ok {
		for _, name := range candidates {
			export, found := ns[name]
			if !found {
				continue
			}
			if comp, ok := tryExport(name, export); ok {
				return comp, nil
			}
		}
	}

	for _, name := range candidates {
		export, found := mod.Named[name]
		if !found {
			continue
		}
		if comp, ok := tryExport(name, export); ok {
			return comp, nil
		}
	}

	// Names the catalog listed but the module never exported still count
	// as attempted for diagnosis.
	for _, name := range candidates {
		if !contains(attempted, name) {
			attempted = append(attempted, name)
		}
	}
	return nil, &vviderr.InstantiationError{EffectID: effectID, Attempted: attempted}
}

// safeBuild guards one construction attempt: a panicking constructor
// discards the candidate instead of aborting the whole strategy.
func safeBuild(build builder, export any) (comp effects.Component, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			comp, ok, err = nil, false, fmt.Errorf("constructor panicked: %v", r)
		}
	}()
	return build(export)
}

// sceneBuilder matches exports against the scene-graph construction
// protocol: new Candidate(hostContext, mountSpec).
func sceneBuilder(hctx *Context, spec MountSpec) builder {
	return func(export any) (effects.Component, bool, error) {
		if fn, yes := export.(func(*Context, MountSpec) (effects.Component, error)); yes {
			comp, err := fn(hctx, spec)
			return comp, true, err
		}
		return reflectConstruct(export, reflect.ValueOf(hctx), reflect.ValueOf(spec))
	}
}

// selfBuilder matches exports against the self-context construction
// protocol: new Candidate(surfaceConfig).
func selfBuilder(cfg SurfaceConfig) builder {
	return func(export any) (effects.Component, bool, error) {
		if fn, yes := export.(func(SurfaceConfig) (effects.Component, error)); yes {
			comp, err := fn(cfg)
			return comp, true, err
		}
		return reflectConstruct(export, reflect.ValueOf(cfg))
	}
}

// reflectConstruct attempts to call an arbitrary exported constructor
// whose signature is compatible with the protocol arguments: same arity,
// assignable parameter types, and either (T) or (T, error) results.
func reflectConstruct(export any, args ...reflect.Value) (effects.Component, bool, error) {
	fn := reflect.ValueOf(export)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, false, nil
	}
	ft := fn.Type()
	if ft.IsVariadic() || ft.NumIn() != len(args) {
		return nil, false, nil
	}
	for i, arg := range args {
		if !arg.Type().AssignableTo(ft.In(i)) {
			return nil, false, nil
		}
	}
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
			return nil, false, nil
		}
	default:
		return nil, false, nil
	}

	results := fn.Call(args)
	if len(results) == 2 {
		if errv := results[1].Interface(); errv != nil {
			return nil, true, errv.(error)
		}
	}
	comp := results[0].Interface()
	return comp, true, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
