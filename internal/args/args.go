// Package args rewrites the raw invocation arguments into the vector handed
// to the launched training script: intercepted flags are removed and handled
// specially, everything else passes through untouched.
package args

import (
	"fmt"
	"slices"

	"github.com/cogact-team/amlrun/internal/resolver"
	"github.com/cogact-team/amlrun/internal/secret"
)

const (
	// FlagPretrainedCheckpoint is intercepted; its value feeds the resolver.
	FlagPretrainedCheckpoint = "--pretrained_checkpoint"

	// FlagHFToken is intercepted; a raw token must never travel as an
	// argument, only the controlled env var reference is forwarded.
	FlagHFToken = "--hf_token"
)

// intercepted is the fixed set of flags removed from the raw arguments.
var intercepted = map[string]bool{
	FlagPretrainedCheckpoint: true,
	FlagHFToken:              true,
}

// ArgumentError reports an intercepted flag with no following value.
type ArgumentError struct {
	Flag string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("flag %s requires a value", e.Flag)
}

// Result holds the outcome of a Process pass.
type Result struct {
	// Args are the pass-through tokens in their original relative order.
	Args []string

	// Override is the captured --pretrained_checkpoint value, if any.
	Override string
}

// Process scans raw pairwise, removing intercepted flags together with their
// value token and copying everything else through unchanged. The checkpoint
// override value is captured; the token value is discarded.
func Process(raw []string) (Result, error) {
	result := Result{Args: make([]string, 0, len(raw))}

	for i := 0; i < len(raw); i++ {
		token := raw[i]
		if !intercepted[token] {
			result.Args = append(result.Args, token)
			continue
		}

		if i == len(raw)-1 {
			return Result{}, &ArgumentError{Flag: token}
		}

		if token == FlagPretrainedCheckpoint {
			result.Override = raw[i+1]
		}
		i++
	}

	return result, nil
}

// AuxDir is a resolved auxiliary directory appended to the final arguments.
type AuxDir struct {
	Flag string
	Path string
}

// Finalize appends the controlled insertions to the pass-through tokens, in
// fixed order: the credential reference, the resolved checkpoint, then each
// auxiliary directory. The input slice is not modified.
func Finalize(passthrough []string, token secret.Ref, ref resolver.Reference, aux []AuxDir) []string {
	final := slices.Clone(passthrough)
	final = append(final, FlagHFToken, token.String())
	final = append(final, FlagPretrainedCheckpoint, ref.String())
	for _, dir := range aux {
		final = append(final, dir.Flag, dir.Path)
	}

	return final
}
