package auctionhouse

type InstructionType uint8

const (
	InstructionTypeUnknown InstructionType = iota
	InstructionTypeCreateAuctionHouse
	InstructionTypeDelegateAuctioneer
	InstructionTypeAuctioneerDeposit
	InstructionTypeAuctioneerPublicBuy
	InstructionTypeAuctioneerWithdraw
	InstructionTypeAuctioneerCancel
)

var (
	createAuctionHouseInstructionDiscriminator  = []byte{221, 66, 242, 159, 249, 206, 134, 241}
	delegateAuctioneerInstructionDiscriminator  = []byte{106, 178, 12, 122, 74, 173, 251, 222}
	auctioneerDepositInstructionDiscriminator   = []byte{79, 122, 37, 162, 120, 173, 57, 127}
	auctioneerPublicBuyInstructionDiscriminator = []byte{221, 239, 99, 240, 86, 46, 213, 126}
	auctioneerWithdrawInstructionDiscriminator  = []byte{85, 166, 219, 110, 168, 143, 180, 236}
	auctioneerCancelInstructionDiscriminator    = []byte{197, 97, 152, 196, 115, 204, 64, 215}
)

// GetInstructionType identifies an instruction by its discriminator.
func GetInstructionType(data []byte) InstructionType {
	switch {
	case hasDiscriminator(data, createAuctionHouseInstructionDiscriminator):
		return InstructionTypeCreateAuctionHouse
	case hasDiscriminator(data, delegateAuctioneerInstructionDiscriminator):
		return InstructionTypeDelegateAuctioneer
	case hasDiscriminator(data, auctioneerDepositInstructionDiscriminator):
		return InstructionTypeAuctioneerDeposit
	case hasDiscriminator(data, auctioneerPublicBuyInstructionDiscriminator):
		return InstructionTypeAuctioneerPublicBuy
	case hasDiscriminator(data, auctioneerWithdrawInstructionDiscriminator):
		return InstructionTypeAuctioneerWithdraw
	case hasDiscriminator(data, auctioneerCancelInstructionDiscriminator):
		return InstructionTypeAuctioneerCancel
	}
	return InstructionTypeUnknown
}

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeCreateAuctionHouse:
		return "CreateAuctionHouse"
	case InstructionTypeDelegateAuctioneer:
		return "DelegateAuctioneer"
	case InstructionTypeAuctioneerDeposit:
		return "AuctioneerDeposit"
	case InstructionTypeAuctioneerPublicBuy:
		return "AuctioneerPublicBuy"
	case InstructionTypeAuctioneerWithdraw:
		return "AuctioneerWithdraw"
	case InstructionTypeAuctioneerCancel:
		return "AuctioneerCancel"
	}
	return "Unknown"
}
