// Package secret provides environment-variable-indirected credential
// references. A Ref stands in for a credential everywhere the credential
// would otherwise travel as a plain string; only the variable NAME is ever
// rendered, so a raw token cannot leak into an argument vector or a log line
// without an explicit, visible escape hatch.
package secret

// Ref names an environment variable holding a credential.
type Ref struct {
	envVar string
}

// NewRef creates a reference to the named environment variable.
func NewRef(envVar string) Ref {
	return Ref{envVar: envVar}
}

// Name returns the environment variable name.
func (r Ref) Name() string {
	return r.envVar
}

// String returns the environment variable name, never the value.
func (r Ref) String() string {
	return r.envVar
}

// IsSet reports whether the referenced variable carries a non-empty value.
// The value itself is not retained.
func (r Ref) IsSet(getenv func(string) string) bool {
	return getenv(r.envVar) != ""
}
