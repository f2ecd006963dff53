package args

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogact-team/amlrun/internal/resolver"
	"github.com/cogact-team/amlrun/internal/secret"
)

func TestProcess_PassThrough(t *testing.T) {
	raw := []string{"--batch_size", "32", "--lr", "1e-4", "positional"}

	result, err := Process(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, result.Args)
	assert.Empty(t, result.Override)
}

func TestProcess_InterceptsCheckpoint(t *testing.T) {
	result, err := Process([]string{"--pretrained_checkpoint", "CogACT/CogACT-Base", "--batch_size", "32"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--batch_size", "32"}, result.Args)
	assert.Equal(t, "CogACT/CogACT-Base", result.Override)
}

func TestProcess_InterceptsTokenAndDiscardsValue(t *testing.T) {
	result, err := Process([]string{"--hf_token", "hf_secret123", "--batch_size", "32"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--batch_size", "32"}, result.Args)
	assert.Empty(t, result.Override)
	assert.NotContains(t, result.Args, "hf_secret123")
}

func TestProcess_InterceptedFlagOrderPreserved(t *testing.T) {
	result, err := Process([]string{"--a", "1", "--hf_token", "x", "--b", "2", "--pretrained_checkpoint", "CogACT/X", "--c", "3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--a", "1", "--b", "2", "--c", "3"}, result.Args)
	assert.Equal(t, "CogACT/X", result.Override)
}

func TestProcess_DanglingInterceptedFlag(t *testing.T) {
	for _, flag := range []string{FlagPretrainedCheckpoint, FlagHFToken} {
		_, err := Process([]string{"--batch_size", "32", flag})
		require.Error(t, err)

		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, flag, argErr.Flag)
	}
}

func TestProcess_Empty(t *testing.T) {
	result, err := Process(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Args)
}

func TestProcess_Idempotent(t *testing.T) {
	raw := []string{"--pretrained_checkpoint", "CogACT/CogACT-Base", "--batch_size", "32"}

	first, err := Process(raw)
	require.NoError(t, err)

	second, err := Process(first.Args)
	require.NoError(t, err)
	assert.Equal(t, first.Args, second.Args)
}

func TestFinalize_FixedOrder(t *testing.T) {
	token := secret.NewRef("HF_TOKEN")
	ref := resolver.Local("/mnt/cache/CogACT-Base.pt")
	aux := []AuxDir{
		{Flag: "--data_root_dir", Path: "/mnt/dataset"},
		{Flag: "--run_root_dir", Path: "/mnt/run"},
	}

	final := Finalize([]string{"--batch_size", "32"}, token, ref, aux)
	assert.Equal(t, []string{
		"--batch_size", "32",
		"--hf_token", "HF_TOKEN",
		"--pretrained_checkpoint", "/mnt/cache/CogACT-Base.pt",
		"--data_root_dir", "/mnt/dataset",
		"--run_root_dir", "/mnt/run",
	}, final)
}

func TestFinalize_OmittedAux(t *testing.T) {
	final := Finalize(nil, secret.NewRef("HF_TOKEN"), resolver.Remote("CogACT/CogACT-Base"), nil)
	assert.Equal(t, []string{
		"--hf_token", "HF_TOKEN",
		"--pretrained_checkpoint", "CogACT/CogACT-Base",
	}, final)
}

func TestFinalize_DoesNotMutateInput(t *testing.T) {
	passthrough := []string{"--batch_size", "32"}
	_ = Finalize(passthrough, secret.NewRef("HF_TOKEN"), resolver.Remote("CogACT/CogACT-Base"), nil)
	assert.Equal(t, []string{"--batch_size", "32"}, passthrough)
}

func TestFinalize_NeverCarriesRawCredential(t *testing.T) {
	// The credential travels only as the env var NAME; the type system keeps
	// the raw value out, this guards the rendered tokens.
	final := Finalize(nil, secret.NewRef("HF_TOKEN"), resolver.Remote("CogACT/CogACT-Base"), nil)
	assert.NotContains(t, final, "hf_secret123")
	assert.Contains(t, final, "HF_TOKEN")
}

func TestArgumentError_Message(t *testing.T) {
	err := &ArgumentError{Flag: FlagHFToken}
	assert.Equal(t, "flag --hf_token requires a value", err.Error())
}
