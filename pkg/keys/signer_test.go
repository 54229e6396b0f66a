package keys

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

// Well-known development key (anvil account #0).
const (
	devKeyHex     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devKeyAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestParsePrivateKey(t *testing.T) {
	for _, in := range []string{devKeyHex, "0x" + devKeyHex, "0X" + devKeyHex, "  " + devKeyHex + "\n"} {
		key, err := ParsePrivateKey(in)
		if err != nil {
			t.Fatalf("ParsePrivateKey(%q) failed: %v", in, err)
		}
		if key.Address() != common.HexToAddress(devKeyAddress) {
			t.Errorf("Expected address %s, got %s", devKeyAddress, key.Address().Hex())
		}
	}
}

func TestParsePrivateKey_Invalid(t *testing.T) {
	if _, err := ParsePrivateKey(""); !errors.Is(err, ErrNoKey) {
		t.Errorf("Expected ErrNoKey for empty key, got %v", err)
	}
	if _, err := ParsePrivateKey("zz"); err == nil {
		t.Error("Expected error for non-hex key")
	}
	if _, err := ParsePrivateKey("0x1234"); err == nil {
		t.Error("Expected error for short key")
	}
}

func TestKey_StringDoesNotLeakSecret(t *testing.T) {
	key, err := ParsePrivateKey(devKeyHex)
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}

	for _, rendered := range []string{key.String(), fmt.Sprintf("%v", key), fmt.Sprintf("%#v", key)} {
		if strings.Contains(strings.ToLower(rendered), devKeyHex[:16]) {
			t.Errorf("Rendered key leaks secret: %s", rendered)
		}
	}
}

func TestSigner_SignIsDeterministic(t *testing.T) {
	key, err := ParsePrivateKey(devKeyHex)
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}
	signer := NewSigner(big.NewInt(31337))
	to := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	unsigned := types.NewTx(&types.LegacyTx{
		Nonce:    3,
		To:       &to,
		Gas:      300000,
		GasPrice: big.NewInt(1000000000),
		Data:     []byte{0xde, 0xad},
	})

	first, err := signer.Sign(unsigned, key)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	second, err := signer.Sign(unsigned, key)
	if err != nil {
		t.Fatalf("Sign (2nd call) failed: %v", err)
	}
	if first.Hash() != second.Hash() {
		t.Error("Signing the same descriptor twice produced different transactions")
	}

	sender, err := signer.Sender(first)
	if err != nil {
		t.Fatalf("Sender failed: %v", err)
	}
	if sender != key.Address() {
		t.Errorf("Expected sender %s, got %s", key.Address().Hex(), sender.Hex())
	}
	if first.Nonce() != 3 {
		t.Errorf("Expected nonce 3, got %d", first.Nonce())
	}
}

func TestSigner_NoKeyIsSigningError(t *testing.T) {
	signer := NewSigner(big.NewInt(1))
	tx := types.NewTx(&types.LegacyTx{Gas: 21000, GasPrice: big.NewInt(1)})

	_, err := signer.Sign(tx, nil)
	if !apperrors.Is(err, apperrors.KindSigning) {
		t.Fatalf("Expected SigningError, got %v", err)
	}
	if !errors.Is(err, ErrNoKey) {
		t.Errorf("Expected ErrNoKey to be wrapped, got %v", err)
	}
}
