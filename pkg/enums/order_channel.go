package enums

// OrderChannel identifies the checkout surface an order came through.
type OrderChannel string

const (
	OrderChannelStandard OrderChannel = "standard"
	OrderChannelWhatsApp OrderChannel = "whatsapp"
)

func (c OrderChannel) String() string {
	return string(c)
}

func (c OrderChannel) IsValid() bool {
	return c == OrderChannelStandard || c == OrderChannelWhatsApp
}
