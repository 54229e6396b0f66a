package agreement

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	"github.com/chainsafe/agreement-middleware/pkg/keys"
)

// Role identifies one of the two counterparties
type Role int

const (
	RoleA Role = iota + 1
	RoleB
)

func (r Role) String() string {
	switch r {
	case RoleA:
		return "A"
	case RoleB:
		return "B"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole accepts "a"/"b" in any case
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return RoleA, nil
	case "b":
		return RoleB, nil
	default:
		return 0, apperrors.ValidationError(nil, fmt.Sprintf("unknown party %q", s))
	}
}

// Party is a configured counterparty. The key never leaves this package.
type Party struct {
	Role    Role
	Address common.Address
	key     *keys.Key
}

// Snapshot is a read-only copy of the session
type Snapshot struct {
	PartyA       *common.Address
	PartyB       *common.Address
	Master       *common.Address
	Derivatives  []common.Address
	LastDeployed *common.Address
}

// Session holds the parties, the master agreement address and the derivatives
// deployed by this process. Reads of derivative state always go to the ledger.
type Session struct {
	mu          sync.RWMutex
	partyA      *Party
	partyB      *Party
	master      *common.Address
	derivatives []common.Address
	closed      bool
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{}
}

// ConfigureParties replaces both parties at once
func (s *Session) ConfigureParties(keyA, keyB *keys.Key) error {
	if keyA == nil || keyB == nil {
		return apperrors.ValidationError(nil, "keys for both parties are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errSessionClosed()
	}
	s.partyA = &Party{Role: RoleA, Address: keyA.Address(), key: keyA}
	s.partyB = &Party{Role: RoleB, Address: keyB.Address(), key: keyB}
	return nil
}

// ConfigureMaster replaces the master agreement address
func (s *Session) ConfigureMaster(addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errSessionClosed()
	}
	s.master = &addr
	return nil
}

// RecordDeployment appends addr to the roster and makes it the last deployed derivative
func (s *Session) RecordDeployment(addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errSessionClosed()
	}
	s.derivatives = append(s.derivatives, addr)
	return nil
}

// Party returns the party with the given role
func (s *Session) Party(role Role) (Party, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p *Party
	switch role {
	case RoleA:
		p = s.partyA
	case RoleB:
		p = s.partyB
	}
	if p == nil {
		return Party{}, false
	}
	return *p, true
}

// PartyByAddress returns the configured party whose address equals addr
func (s *Session) PartyByAddress(addr common.Address) (Party, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range []*Party{s.partyA, s.partyB} {
		if p != nil && p.Address == addr {
			return *p, true
		}
	}
	return Party{}, false
}

// Master returns the master agreement address
func (s *Session) Master() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.master == nil {
		return common.Address{}, false
	}
	return *s.master, true
}

// Snapshot copies the current session state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Derivatives: append([]common.Address(nil), s.derivatives...),
	}
	if s.partyA != nil {
		addr := s.partyA.Address
		snap.PartyA = &addr
	}
	if s.partyB != nil {
		addr := s.partyB.Address
		snap.PartyB = &addr
	}
	if s.master != nil {
		addr := *s.master
		snap.Master = &addr
	}
	if n := len(s.derivatives); n > 0 {
		addr := s.derivatives[n-1]
		snap.LastDeployed = &addr
	}
	return snap
}

// Close drops the keys. Further mutations fail.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.partyA = nil
	s.partyB = nil
}

func errSessionClosed() error {
	return apperrors.ConfigurationError(nil, "session is closed")
}
