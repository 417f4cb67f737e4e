package rewardcenter

type InstructionType uint8

const (
	InstructionTypeUnknown InstructionType = iota
	InstructionTypeCreateRewardCenter
	InstructionTypeEditRewardCenter
	InstructionTypeCreateOffer
	InstructionTypeCloseOffer
	InstructionTypeAttribute
)

var (
	createRewardCenterInstructionDiscriminator = []byte{51, 138, 29, 157, 96, 169, 51, 139}
	editRewardCenterInstructionDiscriminator   = []byte{185, 238, 29, 159, 195, 37, 196, 120}
	createOfferInstructionDiscriminator        = []byte{237, 233, 192, 168, 248, 7, 249, 241}
	closeOfferInstructionDiscriminator         = []byte{191, 72, 67, 35, 239, 209, 97, 132}
	attributeInstructionDiscriminator          = []byte{242, 187, 207, 90, 187, 238, 242, 237}
)

// GetInstructionType identifies an instruction by its discriminator.
func GetInstructionType(data []byte) InstructionType {
	switch {
	case hasDiscriminator(data, createRewardCenterInstructionDiscriminator):
		return InstructionTypeCreateRewardCenter
	case hasDiscriminator(data, editRewardCenterInstructionDiscriminator):
		return InstructionTypeEditRewardCenter
	case hasDiscriminator(data, createOfferInstructionDiscriminator):
		return InstructionTypeCreateOffer
	case hasDiscriminator(data, closeOfferInstructionDiscriminator):
		return InstructionTypeCloseOffer
	case hasDiscriminator(data, attributeInstructionDiscriminator):
		return InstructionTypeAttribute
	}
	return InstructionTypeUnknown
}

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeCreateRewardCenter:
		return "CreateRewardCenter"
	case InstructionTypeEditRewardCenter:
		return "EditRewardCenter"
	case InstructionTypeCreateOffer:
		return "CreateOffer"
	case InstructionTypeCloseOffer:
		return "CloseOffer"
	case InstructionTypeAttribute:
		return "Attribute"
	}
	return "Unknown"
}
