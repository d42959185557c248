// Package target describes the compilation target the checker runs against.
// Only the properties the attribute rules consult live here; full ABI layout
// stays with the downstream code generator.
package target

import "strings"

// Spec identifies a target triple and its architecture family.
type Spec struct {
	Triple  string // e.g. "x86_64-linux-gnu"
	Arch    string // first triple component, e.g. "x86_64", "wasm32"
	PtrSize int    // bytes
}

func X86_64LinuxGNU() Spec {
	return Spec{
		Triple:  "x86_64-linux-gnu",
		Arch:    "x86_64",
		PtrSize: 8,
	}
}

func Wasm32Unknown() Spec {
	return Spec{
		Triple:  "wasm32-unknown-unknown",
		Arch:    "wasm32",
		PtrSize: 4,
	}
}

// Default returns the host-independent default target.
func Default() Spec {
	return X86_64LinuxGNU()
}

// FromTriple derives a Spec from a target triple string. Unknown
// architectures keep a pointer size of 8.
func FromTriple(triple string) Spec {
	arch := triple
	if idx := strings.IndexByte(triple, '-'); idx >= 0 {
		arch = triple[:idx]
	}

	ptrSize := 8
	switch arch {
	case "wasm32", "i686", "arm":
		ptrSize = 4
	}

	return Spec{
		Triple:  triple,
		Arch:    arch,
		PtrSize: ptrSize,
	}
}

// IsWasm32 reports whether the target architecture is 32-bit WebAssembly.
func (s Spec) IsWasm32() bool {
	return s.Arch == "wasm32"
}
