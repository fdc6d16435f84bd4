package domain

// Owner tells who may debit an account.
type Owner string

const (
	// OwnerUser accounts are wallets controlled by a party.
	OwnerUser Owner = "user"
	// OwnerProgram accounts are vaults debited only by campaign transitions.
	OwnerProgram Owner = "program"
)

// Account is a ledger cell. Tokens is the payment token balance in base
// units; Lamports is the native balance used for storage deposits.
type Account struct {
	Address  Address `json:"address"`
	Owner    Owner   `json:"owner"`
	Tokens   uint64  `json:"tokens"`
	Lamports uint64  `json:"lamports"`
}

// NewWallet returns an empty user account.
func NewWallet(addr Address) *Account {
	return &Account{Address: addr, Owner: OwnerUser}
}

// Clone returns a copy safe to mutate.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}
