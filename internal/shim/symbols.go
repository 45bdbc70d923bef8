package shim

import "github.com/vovakirdan/framehost/internal/hostabi"

// DefaultPrefix names the host functions the adapter talks to:
// <prefix>-ms, <prefix>-canvas, <prefix>-key, <prefix>-title and the
// registered <prefix>-tick.
const DefaultPrefix = "doom"

// Host symbols that do not depend on the prefix.
const (
	symNil                 = "nil"
	symAcceptProcessOutput = "accept-process-output"
	symDefalias            = "defalias"
)

// SymbolTable holds the host symbols the adapter calls, resolved once at
// module load and pinned as global references. It is never written after
// ModuleInit returns.
type SymbolTable struct {
	Nil                 hostabi.Value
	AcceptProcessOutput hostabi.Value
	Ms                  hostabi.Value
	Canvas              hostabi.Value
	Key                 hostabi.Value
	Title               hostabi.Value
}

// Names lists the host symbol names for a prefix, in resolution order.
type Names struct {
	Nil                 string
	AcceptProcessOutput string
	Ms                  string
	Canvas              string
	Key                 string
	Title               string
	Tick                string
}

// SymbolNames returns the symbol names used with the given prefix.
func SymbolNames(prefix string) Names {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Names{
		Nil:                 symNil,
		AcceptProcessOutput: symAcceptProcessOutput,
		Ms:                  prefix + "-ms",
		Canvas:              prefix + "-canvas",
		Key:                 prefix + "-key",
		Title:               prefix + "-title",
		Tick:                prefix + "-tick",
	}
}

// resolveSymbols interns every name and pins it with a global reference so
// the values stay usable from later environments.
func resolveSymbols(env hostabi.Env, names Names) SymbolTable {
	sym := func(name string) hostabi.Value {
		return env.MakeGlobalRef(env.Intern(name))
	}
	return SymbolTable{
		Nil:                 sym(names.Nil),
		AcceptProcessOutput: sym(names.AcceptProcessOutput),
		Ms:                  sym(names.Ms),
		Canvas:              sym(names.Canvas),
		Key:                 sym(names.Key),
		Title:               sym(names.Title),
	}
}
