package interp

// Class is a Lox class value: a name, an immutable table of methods (each
// an unbound Method), and an optional superclass for single inheritance.
// Calling a Class constructs a new Instance.
type Class struct {
	ClassName  string
	Superclass *Class
	Methods    map[string]Method
}

var (
	_ Value    = (*Class)(nil)
	_ Callable = (*Class)(nil)
)

func (c *Class) String() string { return c.ClassName }
func (c *Class) Type() string   { return "class" }
func (c *Class) Name() string   { return c.ClassName }

// FindMethod looks up name in this class's own method table, falling back
// to the superclass chain. It returns nil if no ancestor defines it.
func (c *Class) FindMethod(name string) Method {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of "init" if the class (or an ancestor) defines one,
// or 0 for a class with no initializer.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		if callable, ok := init.Bind(nil).(Callable); ok {
			return callable.Arity()
		}
	}
	return 0
}

// Call constructs a fresh Instance of c. If c (or an ancestor) defines
// "init", it is bound to the new instance and invoked with args before the
// instance is returned; otherwise the arguments are ignored (arity 0).
func (c *Class) Call(in *Interp, args []Value) (Value, error) {
	inst := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}
