package interp

import (
	"fmt"
	"io"
	"os"
	"time"
)

// nativeFunc is a free-standing native function, such as clock(). It
// implements Callable directly; it is never bound to a receiver.
type nativeFunc struct {
	name  string
	arity int
	fn    func(in *Interp, args []Value) (Value, error)
}

var (
	_ Value    = (*nativeFunc)(nil)
	_ Callable = (*nativeFunc)(nil)
)

func (n *nativeFunc) String() string { return fmt.Sprintf("<native fn %s>", n.name) }
func (n *nativeFunc) Type() string   { return "native function" }
func (n *nativeFunc) Name() string   { return n.name }
func (n *nativeFunc) Arity() int     { return n.arity }
func (n *nativeFunc) Call(in *Interp, args []Value) (Value, error) {
	return n.fn(in, args)
}

// NativeMethod is a method of a native class (such as File) backed by a Go
// function instead of a user-declared body. Binding captures the receiver
// instance, whose opaque native side-table (Instance.native) the function
// reads and writes.
type NativeMethod struct {
	MethodName string
	MethodArty int
	Fn         func(in *Interp, recv *Instance, args []Value) (Value, error)
}

var _ Method = (*NativeMethod)(nil)

func (m *NativeMethod) Bind(recv *Instance) Callable {
	return &boundNative{method: m, recv: recv}
}

type boundNative struct {
	method *NativeMethod
	recv   *Instance
}

var (
	_ Value    = (*boundNative)(nil)
	_ Callable = (*boundNative)(nil)
)

func (b *boundNative) String() string { return fmt.Sprintf("<native method %s>", b.method.MethodName) }
func (b *boundNative) Type() string   { return "native method" }
func (b *boundNative) Name() string   { return b.method.MethodName }
func (b *boundNative) Arity() int     { return b.method.MethodArty }
func (b *boundNative) Call(in *Interp, args []Value) (Value, error) {
	return b.method.Fn(in, b.recv, args)
}

// defineGlobals installs the native bindings available to every program:
// the required clock() function and the optional File class (spec.md
// §4.6 leaves File's exact semantics for an implementation to decide).
func defineGlobals(globals *Environment) {
	globals.Define("clock", &nativeFunc{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interp, _ []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
	globals.Define("File", fileClass())
}

// fileClass builds the optional native File class: calling File(path, mode)
// runs its native init, which wraps an *os.File in the new instance's native side-table under the key
// "file"; read() slurps the whole file as a Lox string; write(text)
// appends text and returns the number of bytes written; close() releases
// the underlying descriptor. mode is "r" (read, the default for any value
// other than "w"/"a"), "w" (truncate-or-create for writing) or "a"
// (append). All I/O is text-mode, UTF-8, matching the host's native
// string encoding; there is no distinct binary mode.
func fileClass() *Class {
	open := &NativeMethod{
		MethodName: "init",
		MethodArty: 2,
		Fn: func(_ *Interp, recv *Instance, args []Value) (Value, error) {
			path, ok := args[0].(String)
			if !ok {
				return nil, fmt.Errorf("File.open: path must be a string")
			}
			mode := "r"
			if m, ok := args[1].(String); ok {
				mode = string(m)
			}

			var (
				f   *os.File
				err error
			)
			switch mode {
			case "w":
				f, err = os.Create(string(path))
			case "a":
				f, err = os.OpenFile(string(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			default:
				f, err = os.Open(string(path))
			}
			if err != nil {
				return nil, fmt.Errorf("File.open: %w", err)
			}

			recv.Set("path", path)
			recv.Set("mode", String(mode))
			recv.SetNative("file", f)
			return Nil, nil
		},
	}

	read := &NativeMethod{
		MethodName: "read",
		MethodArty: 0,
		Fn: func(_ *Interp, recv *Instance, _ []Value) (Value, error) {
			f, err := nativeFile(recv)
			if err != nil {
				return nil, err
			}
			b, err := io.ReadAll(f)
			if err != nil {
				return nil, fmt.Errorf("File.read: %w", err)
			}
			return String(b), nil
		},
	}

	write := &NativeMethod{
		MethodName: "write",
		MethodArty: 1,
		Fn: func(_ *Interp, recv *Instance, args []Value) (Value, error) {
			f, err := nativeFile(recv)
			if err != nil {
				return nil, err
			}
			text, ok := args[0].(String)
			if !ok {
				return nil, fmt.Errorf("File.write: argument must be a string")
			}
			n, err := f.WriteString(string(text))
			if err != nil {
				return nil, fmt.Errorf("File.write: %w", err)
			}
			return Number(n), nil
		},
	}

	closeMethod := &NativeMethod{
		MethodName: "close",
		MethodArty: 0,
		Fn: func(_ *Interp, recv *Instance, _ []Value) (Value, error) {
			f, err := nativeFile(recv)
			if err != nil {
				return nil, err
			}
			if err := f.Close(); err != nil {
				return nil, fmt.Errorf("File.close: %w", err)
			}
			return Nil, nil
		},
	}

	return &Class{
		ClassName: "File",
		Methods: map[string]Method{
			"init":  open,
			"read":  read,
			"write": write,
			"close": closeMethod,
		},
	}
}

func nativeFile(recv *Instance) (*os.File, error) {
	v, ok := recv.Native("file")
	if !ok {
		return nil, fmt.Errorf("File instance is not open")
	}
	return v.(*os.File), nil
}
