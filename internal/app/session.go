package app

type sessionKey string

const (
	SessionKeyGuest        = sessionKey("guest")
	SessionKeyCustomerName = sessionKey("customerName")
)

func (s sessionKey) String() string {
	return string(s)
}
