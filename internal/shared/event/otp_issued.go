package event

// OTPIssuedDestination is the subject one-time code events are published to.
const OTPIssuedDestination string = "auth_otp_issued"

// OTPIssuedConsumerDelivery is the consumer name used by the delivery module.
const OTPIssuedConsumerDelivery string = "auth_otp_issued_delivery"

// OTPIssuedMessage is the payload published whenever a one-time code is issued.
//
// Code is the plaintext code; it crosses the broker so the delivery module can
// render it into an email or SMS. Only the hash is ever stored.
type OTPIssuedMessage struct {
	UserID      int64  `json:"user_id"`
	Identifier  string `json:"identifier"`
	Destination string `json:"destination"`
	Method      string `json:"method"`
	Code        string `json:"code"`
	Language    string `json:"language"`
	ExpiresAt   int64  `json:"expires_at"`
}
