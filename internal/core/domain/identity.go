package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Address identifies a wallet, a campaign record or a vault. Parties are
// always referenced by address; records never own other parties.
type Address = common.Address

// ZeroAddress is the unset identity.
var ZeroAddress Address

// ParseAddress decodes a 0x-prefixed hex address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return ZeroAddress, fmt.Errorf("%w: malformed address %q", ErrInvalidParameters, s)
	}
	return common.HexToAddress(s), nil
}

// CampaignAddress derives the storage key of the campaign identified by the
// (influencer, brand, name) triple. The same triple always yields the same
// address, so a second campaign with that triple cannot be allocated.
func CampaignAddress(influencer, brand Address, name string) Address {
	h := crypto.Keccak256([]byte("campaign"), influencer.Bytes(), brand.Bytes(), []byte(name))
	return common.BytesToAddress(h[12:])
}

// VaultAddress derives the token account that custodies a campaign deposit.
func VaultAddress(campaign Address) Address {
	h := crypto.Keccak256([]byte("vault"), campaign.Bytes())
	return common.BytesToAddress(h[12:])
}
