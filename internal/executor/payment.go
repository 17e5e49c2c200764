package executor

import (
	"encoding/json"
)

// tfFullyCanonicalSig is always set. tfPartialPayment is never set, so the full amount must be delivered.
const tfFullyCanonicalSig uint32 = 0x80000000

// IssuedAmount is an issued currency amount on the wire.
type IssuedAmount struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	Value    string `json:"value"`
}

// PaymentAmount is either a drops string (XRP) or an issued currency amount.
type PaymentAmount struct {
	Drops  string
	Issued *IssuedAmount
}

func (a PaymentAmount) MarshalJSON() ([]byte, error) {
	if a.Issued != nil {
		return json.Marshal(a.Issued)
	}
	return json.Marshal(a.Drops)
}

func (a PaymentAmount) field() any {
	if a.Issued != nil {
		return map[string]any{
			"currency": a.Issued.Currency,
			"issuer":   a.Issued.Issuer,
			"value":    a.Issued.Value,
		}
	}
	return a.Drops
}

// Payment is the unsigned XRPL Payment transaction. Absent optional fields are omitted.
type Payment struct {
	TransactionType    string        `json:"TransactionType"`
	Account            string        `json:"Account"`
	Destination        string        `json:"Destination"`
	Amount             PaymentAmount `json:"Amount"`
	Fee                string        `json:"Fee"`
	Flags              uint32        `json:"Flags"`
	DestinationTag     *uint32       `json:"DestinationTag,omitempty"`
	LastLedgerSequence *uint32       `json:"LastLedgerSequence,omitempty"`
	Sequence           *uint32       `json:"Sequence,omitempty"`
}

// Fields returns the payment as the field map consumed by the binary codec.
func (p Payment) Fields() map[string]any {
	fields := map[string]any{
		"TransactionType": p.TransactionType,
		"Account":         p.Account,
		"Destination":     p.Destination,
		"Amount":          p.Amount.field(),
		"Fee":             p.Fee,
		"Flags":           int(p.Flags),
	}
	if p.DestinationTag != nil {
		fields["DestinationTag"] = int(*p.DestinationTag)
	}
	if p.LastLedgerSequence != nil {
		fields["LastLedgerSequence"] = int(*p.LastLedgerSequence)
	}
	if p.Sequence != nil {
		fields["Sequence"] = int(*p.Sequence)
	}
	return fields
}
