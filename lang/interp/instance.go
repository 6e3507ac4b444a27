package interp

import (
	"fmt"
	"sort"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/maps"
)

// Instance is a live object of a user (or native) class: a class pointer
// plus a mutable field table. Fields are created on first assignment;
// methods are never copied onto the instance, they are looked up on the
// class (and bound) each time a Get resolves to one.
//
// native is the opaque side-table an optional native class (such as File)
// uses to stash per-instance state that isn't a Lox Value, keyed by a
// string name private to that native class's methods.
type Instance struct {
	Class  *Class
	fields *swiss.Map[string, Value]
	native map[string]any
}

var _ Value = (*Instance)(nil)

// NewInstance allocates a fresh, field-less instance of c.
func NewInstance(c *Class) *Instance {
	return &Instance{Class: c, fields: swiss.NewMap[string, Value](4)}
}

func (i *Instance) String() string { return i.Class.ClassName + " instance" }
func (i *Instance) Type() string   { return "instance" }

// Get implements property access (o.p): an instance field takes priority
// over a same-named method; a method found on the class or an ancestor is
// bound to this instance before being returned.
func (i *Instance) Get(name string) (Value, error) {
	if v, ok := i.fields.Get(name); ok {
		return v, nil
	}
	if m := i.Class.FindMethod(name); m != nil {
		return m.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'. (have fields %v, methods %v)",
		name, i.fieldNames(), i.Class.methodNames())
}

// Set implements property assignment (o.p = v): fields are created on
// first write, there is no declaration step.
func (i *Instance) Set(name string, v Value) {
	i.fields.Put(name, v)
}

// Native returns the opaque native state stored under key, for use by a
// native class's own methods.
func (i *Instance) Native(key string) (any, bool) {
	v, ok := i.native[key]
	return v, ok
}

// SetNative stashes opaque native state under key, allocating the
// side-table on first use.
func (i *Instance) SetNative(key string, v any) {
	if i.native == nil {
		i.native = make(map[string]any)
	}
	i.native[key] = v
}

// fieldNames returns the instance's currently-set field names in sorted
// order, used to enrich an "undefined property" error with the set of
// names that were actually available.
func (i *Instance) fieldNames() []string {
	names := make([]string, 0, 4)
	i.fields.Iter(func(k string, _ Value) bool {
		names = append(names, k)
		return false
	})
	sort.Strings(names)
	return names
}

// methodNames returns the class's own declared method names (not
// inherited ones), sorted, for the same diagnostic purpose as fieldNames.
func (c *Class) methodNames() []string {
	names := maps.Keys(c.Methods)
	sort.Strings(names)
	return names
}
