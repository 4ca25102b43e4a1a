package interp

import "fmt"

// LoxClass is itself a callable value that produces Instances when called.
// Methods are looked up on the class first, then the superclass chain.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func (c *LoxClass) String() string { return c.Name }

func (c *LoxClass) findMethod(name string) *LoxFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil
}

func (c *LoxClass) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *LoxClass) Call(in *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init := c.findMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object produced by calling a class. Fields are
// created on assignment via Set and shadow methods of the same name on
// lookup.
type Instance struct {
	Class  *LoxClass
	Fields map[string]Value
}

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }

func (i *Instance) Get(name string) (Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if method := i.Class.findMethod(name); method != nil {
		return method.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name)
}

func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}
