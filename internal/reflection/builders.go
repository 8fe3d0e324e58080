package reflection

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// ResolveFunc resolves a single dependency. Returning the zero Value with a
// nil error leaves the parameter or field at its zero value.
type ResolveFunc func(p Parameter) (reflect.Value, error)

// PanicError carries a panic recovered from a constructor or PostConstruct.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildArguments builds the argument list for a constructor.
func BuildArguments(info *ConstructorInfo, resolve ResolveFunc) ([]reflect.Value, error) {
	if resolve == nil {
		return nil, fmt.Errorf("resolver cannot be nil")
	}

	if info.IsParamObject {
		paramType := info.Type.In(0)
		param := reflect.New(paramType).Elem()

		for _, p := range info.Parameters {
			if err := setField(param.Field(p.Index), p, resolve); err != nil {
				return nil, err
			}
		}

		return []reflect.Value{param}, nil
	}

	args := make([]reflect.Value, len(info.Parameters))
	for i, p := range info.Parameters {
		v, err := resolve(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parameter %d: %w", i, err)
		}

		v, err = assignable(v, p)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return args, nil
}

// Invoke calls a constructor and returns its result. Panics are recovered
// and returned as *PanicError.
func Invoke(info *ConstructorInfo, args []reflect.Value) (result reflect.Value, err error) {
	if !info.IsFunc {
		return info.Value, nil
	}

	defer func() {
		if r := recover(); r != nil {
			result = reflect.Value{}
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	results := info.Value.Call(args)

	if info.HasErrorReturn {
		if errVal := results[len(results)-1]; !errVal.IsNil() {
			return reflect.Value{}, errVal.Interface().(error)
		}
	}

	return results[0], nil
}

// Construct creates an instance of a just-in-time target, sets its injection
// points and runs PostConstruct. Panics are recovered and returned as *PanicError.
func Construct(info *TargetInfo, resolve ResolveFunc) (result reflect.Value, err error) {
	if resolve == nil {
		return reflect.Value{}, fmt.Errorf("resolver cannot be nil")
	}

	ptr := reflect.New(info.Struct)
	elem := ptr.Elem()

	for _, p := range info.Fields {
		if err := setField(elem.Field(p.Index), p, resolve); err != nil {
			return reflect.Value{}, err
		}
	}

	if info.PostConstruct {
		if err := postConstruct(ptr); err != nil {
			return reflect.Value{}, err
		}
	}

	if info.Type.Kind() == reflect.Pointer {
		return ptr, nil
	}
	return elem, nil
}

func postConstruct(ptr reflect.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	if err := ptr.Interface().(PostConstructor).PostConstruct(); err != nil {
		return fmt.Errorf("post construct: %w", err)
	}

	return nil
}

func setField(field reflect.Value, p Parameter, resolve ResolveFunc) error {
	v, err := resolve(p)
	if err != nil {
		return fmt.Errorf("failed to resolve field %s: %w", p.Field, err)
	}

	v, err = assignable(v, p)
	if err != nil {
		return err
	}

	field.Set(v)
	return nil
}

// assignable converts an unset value into the zero value of the parameter
// type and rejects values of the wrong type.
func assignable(v reflect.Value, p Parameter) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(p.Type), nil
	}

	if !v.Type().AssignableTo(p.Type) {
		return reflect.Value{}, fmt.Errorf("resolved %v is not assignable to %v", v.Type(), p.Type)
	}

	return v, nil
}
