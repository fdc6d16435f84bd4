// Package oracle signs and verifies engagement metric reports. A report is
// authenticated by recovering the secp256k1 signer of its digest; the
// recovered address is the caller the escrow engine checks against the
// campaign oracle.
package oracle

import (
	"crypto/ecdsa"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"engage-escrow/internal/core/domain"
)

const digestDomain = "engage-escrow/metrics"

// ErrBadSignature is returned when a report signature cannot be recovered.
var ErrBadSignature = errors.New("invalid report signature")

// Report is a signed metrics submission for one campaign.
type Report struct {
	Campaign  domain.Address `json:"campaign"`
	Metrics   domain.Metrics `json:"metrics"`
	Signature hexutil.Bytes  `json:"signature"`
}

// Digest returns keccak256 over the domain tag, the campaign address and
// the four counters encoded as big-endian uint64.
func Digest(campaign domain.Address, m domain.Metrics) []byte {
	buf := make([]byte, 0, len(digestDomain)+common.AddressLength+4*8)
	buf = append(buf, digestDomain...)
	buf = append(buf, campaign.Bytes()...)
	for _, v := range []uint64{m.Likes, m.Comments, m.Views, m.Shares} {
		buf = binary.BigEndian.AppendUint64(buf, v)
	}
	return ethcrypto.Keccak256(buf)
}

// ParseKey loads a hex-encoded secp256k1 private key.
func ParseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	pkHex := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if pkHex == "" {
		return nil, errors.New("empty private key")
	}
	key, err := ethcrypto.HexToECDSA(pkHex)
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}
	return key, nil
}

// Sign produces a report for campaign signed with key.
func Sign(key *ecdsa.PrivateKey, campaign domain.Address, m domain.Metrics) (Report, error) {
	sig, err := ethcrypto.Sign(Digest(campaign, m), key)
	if err != nil {
		return Report{}, fmt.Errorf("sign report: %w", err)
	}
	return Report{Campaign: campaign, Metrics: m, Signature: sig}, nil
}

// Signer recovers the address that signed r.
func (r Report) Signer() (domain.Address, error) {
	if len(r.Signature) != ethcrypto.SignatureLength {
		return domain.ZeroAddress, fmt.Errorf("%w: want %d bytes, got %d", ErrBadSignature, ethcrypto.SignatureLength, len(r.Signature))
	}
	pub, err := ethcrypto.SigToPub(Digest(r.Campaign, r.Metrics), r.Signature)
	if err != nil {
		return domain.ZeroAddress, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// Address returns the oracle address controlled by key.
func Address(key *ecdsa.PrivateKey) domain.Address {
	return ethcrypto.PubkeyToAddress(key.PublicKey)
}
