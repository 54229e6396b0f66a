// Package compiler turns derivative contract source into a deployable artifact
// by invoking the solc binary.
package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	"github.com/chainsafe/agreement-middleware/pkg/config"
)

// Artifact is the compiled form of a single contract
type Artifact struct {
	Name string
	ABI  abi.ABI
	Bin  []byte
}

// Compiler compiles contract source into an artifact
type Compiler interface {
	Compile(ctx context.Context, sourcePath string) (*Artifact, error)
}

// SolcCompiler shells out to solc
type SolcCompiler struct {
	config *config.CompilerConfig
	logger *zap.Logger
}

// NewSolcCompiler creates a compiler backed by the configured solc binary
func NewSolcCompiler(cfg *config.CompilerConfig, logger *zap.Logger) *SolcCompiler {
	return &SolcCompiler{config: cfg, logger: logger}
}

// Version returns the version line reported by solc
func (c *SolcCompiler) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Version:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Version:")), nil
		}
	}
	return strings.TrimSpace(string(out)), nil
}

// CheckVersion fails when the installed solc does not match the configured version
func (c *SolcCompiler) CheckVersion(ctx context.Context) error {
	if c.config.SolcVersion == "" {
		return nil
	}
	version, err := c.Version(ctx)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(version, c.config.SolcVersion) {
		return apperrors.ConfigurationError(nil,
			fmt.Sprintf("solc version %s does not match required %s", version, c.config.SolcVersion))
	}
	return nil
}

// Compile compiles sourcePath and returns the first contract it contains.
// When the source defines several contracts the first by name is used.
func (c *SolcCompiler) Compile(ctx context.Context, sourcePath string) (*Artifact, error) {
	if sourcePath == "" {
		return nil, apperrors.ValidationError(nil, "derivative source path is required")
	}
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, apperrors.ConfigurationError(err, "derivative source not found")
	}

	out, err := c.run(ctx, "--combined-json", "abi,bin", sourcePath)
	if err != nil {
		return nil, err
	}

	artifact, count, err := ParseCombinedJSON(out)
	if err != nil {
		return nil, err
	}
	if count > 1 {
		c.logger.Warn("Source defines several contracts, using the first",
			zap.String("source", sourcePath),
			zap.String("contract", artifact.Name),
			zap.Int("contracts", count))
	}

	c.logger.Info("Compiled derivative contract",
		zap.String("source", sourcePath),
		zap.String("contract", artifact.Name),
		zap.Int("bytecode_size", len(artifact.Bin)))

	return artifact, nil
}

func (c *SolcCompiler) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.config.SolcPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, apperrors.ConfigurationError(err, "failed to compile derivative contract: "+msg)
	}
	return stdout.Bytes(), nil
}

type combinedOutput struct {
	Contracts map[string]struct {
		ABI json.RawMessage `json:"abi"`
		Bin string          `json:"bin"`
	} `json:"contracts"`
}

// ParseCombinedJSON decodes `solc --combined-json abi,bin` output. It returns the
// first contract by sorted key together with the number of contracts found.
func ParseCombinedJSON(data []byte) (*Artifact, int, error) {
	var out combinedOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, 0, apperrors.ConfigurationError(err, "invalid compiler output")
	}
	if len(out.Contracts) == 0 {
		return nil, 0, apperrors.ConfigurationError(nil, "compiler output contains no contracts")
	}

	keys := make([]string, 0, len(out.Contracts))
	for k := range out.Contracts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	key := keys[0]
	entry := out.Contracts[key]

	// older solc releases emit the abi as a JSON encoded string
	rawABI := []byte(entry.ABI)
	var encoded string
	if err := json.Unmarshal(rawABI, &encoded); err == nil {
		rawABI = []byte(encoded)
	}

	parsed, err := abi.JSON(bytes.NewReader(rawABI))
	if err != nil {
		return nil, 0, apperrors.ConfigurationError(err, "invalid abi for "+key)
	}

	bin := common.FromHex(entry.Bin)
	if len(bin) == 0 {
		return nil, 0, apperrors.ConfigurationError(nil, "empty bytecode for "+key)
	}

	name := key
	if i := strings.LastIndex(key, ":"); i >= 0 {
		name = key[i+1:]
	}

	return &Artifact{Name: name, ABI: parsed, Bin: bin}, len(keys), nil
}
