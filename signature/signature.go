// Package signature identifies which known binary release a running process
// is, and binds the pointer chains of that release.
//
// Every supported release is described by a Profile: a literal byte string
// found at a fixed offset from the main module (typically a build string) and
// the offsets of every tracked variable. Profiles are compared in table order
// and the first exact match wins. There is no partial matching; an unknown
// release never resolves.
package signature

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ror-speedrun/autosplitter/memory"
)

// Var names a tracked variable.
type Var string

// A Profile describes one binary release.
type Profile struct {
	// Version is a human-readable release name.
	Version string

	// SignatureAddress is the offset of the signature from the module base.
	SignatureAddress uint64

	// Signature is the exact byte string expected at SignatureAddress.
	Signature []byte

	// Chains holds the pointer-chain offsets of every tracked variable,
	// relative to the module base.
	Chains map[Var][]uint64
}

// A Table is an ordered set of profiles sharing the same variables.
type Table struct {
	size     memory.PointerSize
	profiles []Profile
	vars     []Var
	depth    map[Var]int
	sigLen   int
}

// NewTable validates the profiles and computes the capacity every bound
// chain needs. It panics if the profiles do not all declare the same
// variables, if a signature is empty, or if a chain does not fit a
// memory.DeepPointer.
func NewTable(size memory.PointerSize, profiles ...Profile) *Table {
	if len(profiles) == 0 {
		panic("signature: table must have at least one profile")
	}

	t := &Table{
		size:     size,
		profiles: profiles,
		depth:    make(map[Var]int),
	}

	t.vars = sortedVars(profiles[0].Chains)

	for _, p := range profiles {
		t.profileMustBeValid(p)

		if len(p.Signature) > t.sigLen {
			t.sigLen = len(p.Signature)
		}

		for v, chain := range p.Chains {
			if len(chain) > t.depth[v] {
				t.depth[v] = len(chain)
			}
		}
	}

	return t
}

func (t *Table) profileMustBeValid(p Profile) {
	if len(p.Signature) == 0 {
		panic(fmt.Sprintf("signature: profile %q has no signature", p.Version))
	}

	vars := sortedVars(p.Chains)
	if len(vars) != len(t.vars) {
		panic(fmt.Sprintf(
			"signature: profile %q declares %d variables, expected %d",
			p.Version, len(vars), len(t.vars)))
	}

	for i, v := range vars {
		if v != t.vars[i] {
			panic(fmt.Sprintf(
				"signature: profile %q declares variable %q, expected %q",
				p.Version, v, t.vars[i]))
		}

		chain := p.Chains[v]
		if len(chain) == 0 || len(chain) > memory.MaxDepth {
			panic(fmt.Sprintf(
				"signature: profile %q: chain %q has depth %d, must be 1..%d",
				p.Version, v, len(chain), memory.MaxDepth))
		}
	}
}

func sortedVars(chains map[Var][]uint64) []Var {
	vars := make([]Var, 0, len(chains))
	for v := range chains {
		vars = append(vars, v)
	}

	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	return vars
}

// Profiles returns the profiles in priority order.
func (t *Table) Profiles() []Profile {
	return t.profiles
}

// Vars returns the tracked variables in lexical order.
func (t *Table) Vars() []Var {
	return t.vars
}

// MaxDepth returns the longest chain of v across the whole table.
func (t *Table) MaxDepth(v Var) int {
	return t.depth[v]
}

// PointerSize returns the pointer width of the releases in the table.
func (t *Table) PointerSize() memory.PointerSize {
	return t.size
}

// A Binding is the set of chains of the matched profile, bound to a module
// base address. It lives as long as the attach it was resolved for.
type Binding struct {
	version string
	chains  map[Var]memory.DeepPointer
}

// Version returns the version of the matched profile.
func (b *Binding) Version() string {
	return b.version
}

// Chain returns the bound chain of v. It panics for undeclared variables.
func (b *Binding) Chain(v Var) memory.DeepPointer {
	p, ok := b.chains[v]
	if !ok {
		panic(fmt.Sprintf("signature: variable %q is not declared", v))
	}

	return p
}

// Resolve finds the first profile whose signature matches the memory at
// base, and binds its chains to base. It returns false if no profile matches
// or if the memory cannot be read yet. Callers retry on every tick until it
// succeeds.
func Resolve(r memory.Reader, base uint64, t *Table) (*Binding, bool) {
	p, ok := Match(r, base, t)
	if !ok {
		return nil, false
	}

	b := &Binding{
		version: p.Version,
		chains:  make(map[Var]memory.DeepPointer, len(p.Chains)),
	}

	for v, offsets := range p.Chains {
		b.chains[v] = memory.NewDeepPointer(base, t.size, offsets)
	}

	return b, true
}

// Match returns the first profile whose signature matches the memory at base.
func Match(r memory.Reader, base uint64, t *Table) (Profile, bool) {
	buf := make([]byte, t.sigLen)

	for _, p := range t.profiles {
		sig := buf[:len(p.Signature)]

		if err := r.ReadBytes(base+p.SignatureAddress, sig); err != nil {
			continue
		}

		if bytes.Equal(sig, p.Signature) {
			return p, true
		}
	}

	return Profile{}, false
}
