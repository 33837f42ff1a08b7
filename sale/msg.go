package sale

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/bitfsorg/libmint-go/revshare"
)

// InstantiateMsg sets up the contract.
type InstantiateMsg struct {
	Owner string `json:"owner"`
}

// CollectionConfig is the owner-supplied configuration of a collection.
type CollectionConfig struct {
	TotalSupply   uint64   `json:"total_supply" yaml:"total_supply"`
	Pool          []uint32 `json:"pool,omitempty" yaml:"pool"`
	BaseURL       string   `json:"base_url" yaml:"base_url"`
	ImageURL      string   `json:"image_url" yaml:"image_url"`
	DisplayName   string   `json:"display_name" yaml:"display_name"`
	Denom         string   `json:"denom" yaml:"denom"`
	PublicPrice   uint64   `json:"public_price,string" yaml:"public_price"`
	PrivatePrice  uint64   `json:"private_price,string" yaml:"private_price"`
	MaxPerUser    uint64   `json:"max_per_user" yaml:"max_per_user"`
	SaleStartTime int64    `json:"sale_start_time" yaml:"sale_start_time"`
	PublicOpen    bool     `json:"public_open" yaml:"public_open"`
	PrivateOpen   bool     `json:"private_open" yaml:"private_open"`
	FreeOpen      bool     `json:"free_open" yaml:"free_open"`
}

// WhiteUser grants a buyer a private-phase allowance.
type WhiteUser struct {
	Address string `json:"address" yaml:"address"`
	Count   uint64 `json:"count" yaml:"count"`
}

// MintMsg buys one item of a collection.
type MintMsg struct {
	Collection string `json:"collection"`
}

// ChangeOwnerMsg hands ownership to a new identity.
type ChangeOwnerMsg struct {
	Address string `json:"address"`
}

// AddCollectionMsg registers a collection with its beneficiaries.
// UpdateCollection uses the same shape.
type AddCollectionMsg struct {
	Beneficiaries []revshare.Beneficiary `json:"beneficiaries"`
	Collection    string                 `json:"collection"`
	Config        CollectionConfig       `json:"config"`
}

// SetMintFlagMsg sets the sale start time, in unix seconds.
type SetMintFlagMsg struct {
	Collection string `json:"collection"`
	StartTime  int64  `json:"start_time"`
}

// SetActiveMsg toggles the legacy is_active flag.
type SetActiveMsg struct {
	Collection string `json:"collection"`
	Flag       bool   `json:"flag"`
}

// AddFreeMinterMsg marks buyers as free-minters.
type AddFreeMinterMsg struct {
	Collection string   `json:"collection"`
	Addresses  []string `json:"addresses"`
}

// SwitchSaleTypeMsg overwrites the three phase flags.
type SwitchSaleTypeMsg struct {
	Collection  string `json:"collection"`
	PublicOpen  bool   `json:"public_open"`
	PrivateOpen bool   `json:"private_open"`
	FreeOpen    bool   `json:"free_open"`
}

// AddWhiteUsersMsg sets private-phase allowances.
type AddWhiteUsersMsg struct {
	Collection string      `json:"collection"`
	Users      []WhiteUser `json:"users"`
}

// ExecuteMsg is a state-changing request. Exactly one field is set.
type ExecuteMsg struct {
	Mint             *MintMsg           `json:"mint,omitempty"`
	ChangeOwner      *ChangeOwnerMsg    `json:"change_owner,omitempty"`
	AddCollection    *AddCollectionMsg  `json:"add_collection,omitempty"`
	UpdateCollection *AddCollectionMsg  `json:"update_collection,omitempty"`
	SetMintFlag      *SetMintFlagMsg    `json:"set_mint_flag,omitempty"`
	SetActive        *SetActiveMsg      `json:"set_active,omitempty"`
	AddFreeMinter    *AddFreeMinterMsg  `json:"add_free_minter,omitempty"`
	SwitchSaleType   *SwitchSaleTypeMsg `json:"switch_sale_type,omitempty"`
	AddWhiteUsers    *AddWhiteUsersMsg  `json:"add_white_users,omitempty"`
}

// CollectionQuery identifies a collection.
type CollectionQuery struct {
	Collection string `json:"collection"`
}

// BuyerQuery identifies a (collection, buyer) pair.
type BuyerQuery struct {
	Collection string `json:"collection"`
	Address    string `json:"address"`
}

// QueryMsg is a read-only request. Exactly one field is set.
type QueryMsg struct {
	GetStateInfo      *struct{}        `json:"get_state_info,omitempty"`
	GetCollectionInfo *BuyerQuery      `json:"get_collection_info,omitempty"`
	GetUserInfo       *BuyerQuery      `json:"get_user_info,omitempty"`
	GetAdminInfo      *CollectionQuery `json:"get_admin_info,omitempty"`
	GetWhitelistInfo  *BuyerQuery      `json:"get_whitelist_info,omitempty"`
	GetFreeMinterInfo *BuyerQuery      `json:"get_free_minter_info,omitempty"`
}

// Action returns the snake_case name of the variant that is set.
func (m ExecuteMsg) Action() (string, error) { return variant(m) }

// Action returns the snake_case name of the variant that is set.
func (m QueryMsg) Action() (string, error) { return variant(m) }

// ParseExecuteMsg decodes a JSON execute message, rejecting unknown
// variants and messages without exactly one variant.
func ParseExecuteMsg(data []byte) (ExecuteMsg, error) {
	var m ExecuteMsg
	if err := decodeStrict(data, &m); err != nil {
		return m, err
	}
	_, err := m.Action()
	return m, err
}

// ParseQueryMsg decodes a JSON query message.
func ParseQueryMsg(data []byte) (QueryMsg, error) {
	var m QueryMsg
	if err := decodeStrict(data, &m); err != nil {
		return m, err
	}
	_, err := m.Action()
	return m, err
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return nil
}

// variant returns the json name of the single non-nil pointer field of a
// tagged-union struct.
func variant(m any) (string, error) {
	v := reflect.ValueOf(m)
	t := v.Type()
	name := ""
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).IsNil() {
			continue
		}
		if name != "" {
			return "", fmt.Errorf("%w: more than one variant set", ErrInvalidMessage)
		}
		name = jsonName(t.Field(i))
	}
	if name == "" {
		return "", fmt.Errorf("%w: no variant set", ErrInvalidMessage)
	}
	return name, nil
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i]
		}
	}
	return tag
}
