// Package hostabi describes the extension-loading ABI a host exposes to a
// loadable module: a runtime record handed to the module's init function and
// an environment record offering the host's services.
//
// Both records carry a size. A module compares it against the size it was
// built for and refuses to load under an older, smaller host record.
package hostabi

// Value is an opaque host object. Modules never inspect it directly; they pass
// it back to the Env that produced it.
type Value any

// Function is the shape of a module-provided function the host can call.
// env is only valid for the duration of the call.
type Function func(env Env, args []Value, data any) Value

// slotSize is the width of one entry in a host record (one function pointer
// or one size field).
const slotSize = 8

// Record sizes for the current ABI revision. A host whose record is smaller
// than these predates some entry the module relies on.
const (
	// RuntimeSize covers size + get_environment.
	RuntimeSize = 2 * slotSize

	// EnvSize covers size + the service entries of Env below.
	EnvSize = 12 * slotSize
)

// Runtime is the record passed to a module's init entry point.
type Runtime interface {
	// Size returns the size in bytes of the host's runtime record.
	Size() int

	// Environment returns the environment valid for the init call.
	Environment() Env
}

// Env is the host services record. An Env is scoped to one call from the host
// into the module and must not be retained after that call returns.
type Env interface {
	// Size returns the size in bytes of the host's environment record.
	Size() int

	Intern(name string) Value
	MakeGlobalRef(v Value) Value
	MakeString(s string) Value
	MakeInteger(i int64) Value
	MakeFloat(f float64) Value
	ExtractInteger(v Value) int64
	IsNotNil(v Value) bool

	// Funcall calls fn (usually a symbol) with args and returns its result.
	Funcall(fn Value, args ...Value) Value

	// MakeFunction wraps fn as a host function accepting between minArity and
	// maxArity arguments. data is passed back to fn on every call.
	MakeFunction(minArity, maxArity int, fn Function, doc string, data any) Value

	// CanvasPixel returns the pixel buffer backing a canvas value, or nil when
	// v is not a canvas.
	CanvasPixel(v Value) []uint32

	// CanvasRefresh asks the host to present the canvas.
	CanvasRefresh(v Value)
}
