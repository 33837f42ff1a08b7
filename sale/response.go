package sale

import "github.com/bitfsorg/libmint-go/pool"

// Metadata is the extension attached to a registry mint.
type Metadata struct {
	Image string `json:"image"`
}

// RegistryMint instructs the external collectible registry at Contract to
// record Owner as the holder of TokenID.
type RegistryMint struct {
	Contract  string   `json:"contract"`
	TokenID   string   `json:"token_id"`
	Owner     string   `json:"owner"`
	TokenURI  string   `json:"token_uri"`
	Extension Metadata `json:"extension"`
}

// BankSend instructs the host to transfer Amount from the contract to ToAddress.
type BankSend struct {
	ToAddress string `json:"to_address"`
	Amount    Coins  `json:"amount"`
}

// Instruction is an outbound message for the host. Exactly one field is set.
type Instruction struct {
	Mint *RegistryMint `json:"mint,omitempty"`
	Send *BankSend     `json:"send,omitempty"`
}

// Attribute is a key/value pair describing what a request did.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is the result of a successful execute.
type Response struct {
	Instructions []Instruction `json:"instructions"`
	Attributes   []Attribute   `json:"attributes"`
}

func newResponse(action string) *Response {
	return &Response{Attributes: []Attribute{{Key: "action", Value: action}}}
}

func (r *Response) addAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r *Response) addMint(contract, owner string, item pool.Item) {
	r.Instructions = append(r.Instructions, Instruction{Mint: &RegistryMint{
		Contract:  contract,
		TokenID:   item.TokenID,
		Owner:     owner,
		TokenURI:  item.TokenURI,
		Extension: Metadata{Image: item.ImageURL},
	}})
}

func (r *Response) addSend(to string, coin Coin) {
	r.Instructions = append(r.Instructions, Instruction{Send: &BankSend{ToAddress: to, Amount: Coins{coin}}})
}

// Attribute returns the value of the first attribute named key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
