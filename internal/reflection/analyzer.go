package reflection

import (
	"fmt"
	"reflect"
	"sync"
)

// In marks a constructor parameter struct whose fields are injected one by one.
type In struct{}

// Singleton marks a struct whose just-in-time instances are shared.
type Singleton struct{}

// ApplicationScoped is an alias scope for Singleton.
type ApplicationScoped struct{}

var (
	inType                = reflect.TypeOf(In{})
	singletonType         = reflect.TypeOf(Singleton{})
	applicationScopedType = reflect.TypeOf(ApplicationScoped{})
	errType               = reflect.TypeOf((*error)(nil)).Elem()
	postConstructType     = reflect.TypeOf((*PostConstructor)(nil)).Elem()
)

// PostConstructor is implemented by types that finish their initialization
// after all injection points have been set.
type PostConstructor interface {
	PostConstruct() error
}

// Analyzer performs reflection-based analysis of constructors and injection
// targets. It caches analysis results and is safe for concurrent use.
type Analyzer struct {
	mu           sync.RWMutex
	constructors map[uintptr]*ConstructorInfo
	targets      map[reflect.Type]*TargetInfo
}

// ConstructorInfo contains analyzed information about a constructor function or instance.
type ConstructorInfo struct {
	Type           reflect.Type
	Value          reflect.Value
	Parameters     []Parameter
	Result         reflect.Type // Produced type; the value's own type for instances
	IsFunc         bool         // True if this is a function constructor
	IsParamObject  bool         // Single parameter struct embedding In
	HasErrorReturn bool         // Returns error as last value
}

// Parameter is one dependency of a constructor or injection target.
type Parameter struct {
	Type     reflect.Type
	Name     string // Qualifier name from name:"x" or named:"x"; empty if unqualified
	Optional bool   // Leave the zero value when nothing is bound
	Index    int    // Parameter index or struct field index
	Field    string // Field name for param objects and injection targets
}

// TagInfo contains parsed struct tag information.
type TagInfo struct {
	Inject   bool
	Optional bool
	Name     string
	Ignore   bool
}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{
		constructors: make(map[uintptr]*ConstructorInfo),
		targets:      make(map[reflect.Type]*TargetInfo),
	}
}

// Analyze analyzes a constructor function or instance value.
//
// Functions must return exactly one value, optionally followed by an error.
// Any other value is treated as an instance that is its own result.
func (a *Analyzer) Analyze(constructor any) (*ConstructorInfo, error) {
	if constructor == nil {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	val := reflect.ValueOf(constructor)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		if typ.Kind() == reflect.Pointer && val.IsNil() {
			return nil, fmt.Errorf("instance cannot be a nil pointer")
		}

		return &ConstructorInfo{
			Type:   typ,
			Value:  val,
			Result: typ,
		}, nil
	}

	if val.IsNil() {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	cacheKey := val.Pointer()

	a.mu.RLock()
	cached, ok := a.constructors[cacheKey]
	a.mu.RUnlock()
	if ok && cached.Type == typ {
		// Closures of one literal share a code pointer but not their captures.
		info := *cached
		info.Value = val
		return &info, nil
	}

	info := &ConstructorInfo{
		Type:   typ,
		Value:  val,
		IsFunc: true,
	}

	if err := a.analyzeReturns(info); err != nil {
		return nil, err
	}

	if err := a.analyzeParameters(info); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.constructors[cacheKey] = info
	a.mu.Unlock()

	return info, nil
}

// analyzeReturns accepts func(...) T and func(...) (T, error).
func (a *Analyzer) analyzeReturns(info *ConstructorInfo) error {
	fnType := info.Type

	switch fnType.NumOut() {
	case 1:
		if fnType.Out(0) == errType {
			return fmt.Errorf("constructor %v only returns error", fnType)
		}
	case 2:
		if fnType.Out(1) != errType {
			return fmt.Errorf("constructor %v: second return value must be error", fnType)
		}
		info.HasErrorReturn = true
	default:
		return fmt.Errorf("constructor %v must return one value and an optional error", fnType)
	}

	info.Result = fnType.Out(0)
	return nil
}

// analyzeParameters analyzes function parameters or In struct fields.
func (a *Analyzer) analyzeParameters(info *ConstructorInfo) error {
	fnType := info.Type

	if fnType.IsVariadic() {
		return fmt.Errorf("constructor %v cannot be variadic", fnType)
	}

	if fnType.NumIn() == 1 && embeds(fnType.In(0), inType) {
		if fnType.In(0).Kind() != reflect.Struct {
			return fmt.Errorf("In parameter of %v must be a struct value", fnType)
		}

		info.IsParamObject = true
		info.Parameters = a.paramObjectFields(fnType.In(0))
		return nil
	}

	info.Parameters = make([]Parameter, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		info.Parameters[i] = Parameter{
			Type:  fnType.In(i),
			Index: i,
		}
	}

	return nil
}

// paramObjectFields lists the injectable fields of an In struct.
func (a *Analyzer) paramObjectFields(structType reflect.Type) []Parameter {
	params := make([]Parameter, 0, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if !field.IsExported() || (field.Anonymous && field.Type == inType) {
			continue
		}

		tags := ParseFieldTags(field.Tag)
		if tags.Ignore {
			continue
		}

		params = append(params, Parameter{
			Type:     field.Type,
			Name:     tags.Name,
			Optional: tags.Optional,
			Index:    i,
			Field:    field.Name,
		})
	}

	return params
}

// ParseFieldTags parses struct field tags for injection annotations.
//
// Supported tags:
//   - inject:""         field is an injection point
//   - inject:"optional" injection point that tolerates a missing binding
//   - inject:"-"        field is never injected
//   - name:"x", named:"x" qualify the dependency by name
//   - optional:"true"   tolerate a missing binding
func ParseFieldTags(tag reflect.StructTag) TagInfo {
	info := TagInfo{}

	if val, ok := tag.Lookup("inject"); ok {
		switch val {
		case "-":
			info.Ignore = true
		case "optional":
			info.Inject = true
			info.Optional = true
		default:
			info.Inject = true
		}
	}

	if val, ok := tag.Lookup("optional"); ok && val == "true" {
		info.Optional = true
	}

	if val, ok := tag.Lookup("name"); ok {
		info.Name = val
	}
	if val, ok := tag.Lookup("named"); ok {
		info.Name = val
	}

	return info
}

// CacheSize returns the number of cached analyses.
func (a *Analyzer) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.constructors) + len(a.targets)
}

// embeds reports whether struct type t has an anonymous field of type e.
func embeds(t, e reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == e {
			return true
		}
	}

	return false
}
