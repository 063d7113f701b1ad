package interp

import (
	"time"

	"github.com/dolthub/swiss"

	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/types"
)

// Callable is implemented by the values that can be invoked by a call
// expression: user functions and bound methods, classes and natives.
type Callable interface {
	types.Value

	// Arity returns the number of arguments the callable accepts.
	Arity() int

	// Call invokes the callable with the already-evaluated arguments. The
	// caller has validated that len(args) == Arity().
	Call(it *Interpreter, args []types.Value) (types.Value, error)
}

var (
	_ Callable    = (*Function)(nil)
	_ Callable    = (*Class)(nil)
	_ Callable    = (*Builtin)(nil)
	_ types.Value = (*Instance)(nil)
)

// Function is a user-declared function or a method, with the environment
// captured at declaration time as its closure.
type Function struct {
	decl    *ast.FuncStmt
	closure *Environment
	isInit  bool
}

func (f *Function) String() string    { return "fun " + f.decl.Name + "()" }
func (f *Function) Type() string      { return "function" }
func (f *Function) Truth() types.Bool { return types.True }

func (f *Function) Arity() int { return len(f.decl.Params) }

// Call executes the function body in a new environment whose parent is
// the function's closure and that binds each parameter to the
// corresponding argument. An initializer always yields this, regardless
// of whether and how the body returned.
func (f *Function) Call(it *Interpreter, args []types.Value) (types.Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Name, args[i])
	}

	c, err := it.execBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}

	var ret types.Value = types.Nil
	if c == ctrlReturn {
		ret = it.retval
		it.retval = nil
	}
	if f.isInit {
		this, _ := f.closure.GetAt(0, "this")
		return this, nil
	}
	return ret, nil
}

// Bind produces a new function whose closure is a fresh environment that
// binds this to the instance, with the original closure as parent. This is
// how methods become aware of their receiver.
func (f *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", inst)
	return &Function{decl: f.decl, closure: env, isInit: f.isInit}
}

// Class is a class value. Calling it creates a new instance.
type Class struct {
	Name    string
	Super   *Class
	methods map[string]*Function
}

func (c *Class) String() string    { return "class " + c.Name }
func (c *Class) Type() string      { return "class" }
func (c *Class) Truth() types.Bool { return types.True }

// FindMethod looks up a method by name, walking the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.methods[name]; ok {
		return m
	}
	if c.Super != nil {
		return c.Super.FindMethod(name)
	}
	return nil
}

// Arity of a class is the arity of its resolved init method, or 0.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call creates a new instance and, if the class or an ancestor has an
// init method, binds it to the instance and calls it with the provided
// arguments.
func (c *Class) Call(it *Interpreter, args []types.Value) (types.Value, error) {
	inst := &Instance{
		class:  c,
		fields: swiss.NewMap[string, types.Value](8),
	}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(it, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Instance is a runtime object of some class, with a per-object mutable
// field map.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, types.Value]
}

func (i *Instance) String() string    { return i.class.Name + " instance" }
func (i *Instance) Type() string      { return "instance" }
func (i *Instance) Truth() types.Bool { return types.True }

// Get looks up a property: fields shadow methods, and a method found on
// the class (or an ancestor) is returned bound to the instance.
func (i *Instance) Get(name string) (types.Value, bool) {
	if v, ok := i.fields.Get(name); ok {
		return v, true
	}
	if m := i.class.FindMethod(name); m != nil {
		return m.Bind(i), true
	}
	return nil, false
}

// Set stores a field on the instance.
func (i *Instance) Set(name string, v types.Value) {
	i.fields.Put(name, v)
}

// Builtin is a native function implemented in Go.
type Builtin struct {
	name  string
	arity int
	fn    func(args []types.Value) (types.Value, error)
}

func (b *Builtin) String() string    { return "fun " + b.name + "()" }
func (b *Builtin) Type() string      { return "function" }
func (b *Builtin) Truth() types.Bool { return types.True }

func (b *Builtin) Arity() int { return b.arity }

func (b *Builtin) Call(it *Interpreter, args []types.Value) (types.Value, error) {
	return b.fn(args)
}

// clock is the only native: it returns the wall-clock time in seconds as
// a number.
var clock = &Builtin{
	name:  "clock",
	arity: 0,
	fn: func([]types.Value) (types.Value, error) {
		return types.Float(float64(time.Now().UnixNano()) / 1e9), nil
	},
}
