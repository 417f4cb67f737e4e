package auctionhouse

// AuthorityScope is an action an auction house authority can delegate to an
// auctioneer.
type AuthorityScope uint8

const (
	AuthorityScopeDeposit AuthorityScope = iota
	AuthorityScopeBuy
	AuthorityScopePublicBuy
	AuthorityScopeExecuteSale
	AuthorityScopeSell
	AuthorityScopeCancel
	AuthorityScopeWithdraw
)

const MaxNumScopes = 7

// AllAuthorityScopes is every scope an auctioneer can be granted.
var AllAuthorityScopes = []AuthorityScope{
	AuthorityScopeDeposit,
	AuthorityScopeBuy,
	AuthorityScopePublicBuy,
	AuthorityScopeExecuteSale,
	AuthorityScopeSell,
	AuthorityScopeCancel,
	AuthorityScopeWithdraw,
}

func (s AuthorityScope) String() string {
	switch s {
	case AuthorityScopeDeposit:
		return "deposit"
	case AuthorityScopeBuy:
		return "buy"
	case AuthorityScopePublicBuy:
		return "public_buy"
	case AuthorityScopeExecuteSale:
		return "execute_sale"
	case AuthorityScopeSell:
		return "sell"
	case AuthorityScopeCancel:
		return "cancel"
	case AuthorityScopeWithdraw:
		return "withdraw"
	}
	return "unknown"
}
