package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	"github.com/chainsafe/agreement-middleware/pkg/config"
)

const swapABI = `[{"type":"constructor","stateMutability":"payable","inputs":[{"name":"master","type":"address"},{"name":"partyA","type":"address"},{"name":"partyB","type":"address"}]}]`

func TestParseCombinedJSON_SingleContract(t *testing.T) {
	out := []byte(`{"contracts":{"contracts/Swap.sol:Swap":{"abi":` + swapABI + `,"bin":"6080604052"}},"version":"0.8.0+commit.c7dfd78e"}`)

	artifact, count, err := ParseCombinedJSON(out)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "Swap", artifact.Name)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, artifact.Bin)
	assert.Len(t, artifact.ABI.Constructor.Inputs, 3)
}

func TestParseCombinedJSON_StringEncodedABI(t *testing.T) {
	out := []byte(`{"contracts":{"Swap.sol:Swap":{"abi":"[]","bin":"00"}}}`)

	artifact, _, err := ParseCombinedJSON(out)
	require.NoError(t, err)
	assert.Equal(t, "Swap", artifact.Name)
	assert.Empty(t, artifact.ABI.Methods)
}

func TestParseCombinedJSON_PicksFirstContractByName(t *testing.T) {
	out := []byte(`{"contracts":{
		"Swap.sol:Zeta":{"abi":[],"bin":"02"},
		"Swap.sol:Alpha":{"abi":[],"bin":"01"},
		"Swap.sol:Mid":{"abi":[],"bin":"03"}}}`)

	for i := 0; i < 5; i++ {
		artifact, count, err := ParseCombinedJSON(out)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Equal(t, "Alpha", artifact.Name)
		assert.Equal(t, []byte{0x01}, artifact.Bin)
	}
}

func TestParseCombinedJSON_Errors(t *testing.T) {
	cases := map[string]string{
		"not json":     `nope`,
		"no contracts": `{"contracts":{}}`,
		"bad abi":      `{"contracts":{"A:A":{"abi":{"x":1},"bin":"00"}}}`,
		"empty bin":    `{"contracts":{"A:A":{"abi":[],"bin":""}}}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseCombinedJSON([]byte(in))
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.KindConfiguration))
		})
	}
}

func TestSolcCompiler_Compile_MissingSource(t *testing.T) {
	c := NewSolcCompiler(&config.CompilerConfig{SolcPath: "solc", Timeout: time.Second}, zap.NewNop())

	_, err := c.Compile(context.Background(), filepath.Join(t.TempDir(), "Missing.sol"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConfiguration))

	_, err = c.Compile(context.Background(), "")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestSolcCompiler_Compile_MissingBinary(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Swap.sol")
	require.NoError(t, os.WriteFile(src, []byte("pragma solidity ^0.8.0;"), 0o600))

	c := NewSolcCompiler(&config.CompilerConfig{
		SolcPath: filepath.Join(t.TempDir(), "no-such-solc"),
		Timeout:  time.Second,
	}, zap.NewNop())

	_, err := c.Compile(context.Background(), src)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConfiguration))
	assert.Contains(t, err.Error(), "failed to compile derivative contract")
}
