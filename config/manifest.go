package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bitfsorg/libmint-go/revshare"
	"github.com/bitfsorg/libmint-go/sale"
)

// Manifest describes the sale to set up at genesis.
type Manifest struct {
	Owner       string               `yaml:"owner"`
	Collections []CollectionManifest `yaml:"collections"`
}

// CollectionManifest is one collection and its initial access lists.
type CollectionManifest struct {
	ID            string                 `yaml:"id"`
	Beneficiaries []revshare.Beneficiary `yaml:"beneficiaries"`
	Config        sale.CollectionConfig  `yaml:"config"`
	FreeMinters   []string               `yaml:"free_minters"`
	WhiteUsers    []sale.WhiteUser       `yaml:"white_users"`
}

// LoadManifest reads and parses a YAML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses a YAML manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if m.Owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidManifest)
	}
	seen := make(map[string]bool, len(m.Collections))
	for i, c := range m.Collections {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: collection %d has no id", ErrInvalidManifest, i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: duplicate collection %q", ErrInvalidManifest, c.ID)
		}
		seen[c.ID] = true
	}
	return &m, nil
}

// Instantiate returns the message that creates the contract.
func (m *Manifest) Instantiate() sale.InstantiateMsg {
	return sale.InstantiateMsg{Owner: m.Owner}
}

// Messages returns the owner's execute messages that register every
// collection, in manifest order, followed by its access lists.
func (m *Manifest) Messages() []sale.ExecuteMsg {
	var msgs []sale.ExecuteMsg
	for _, c := range m.Collections {
		msgs = append(msgs, sale.ExecuteMsg{AddCollection: &sale.AddCollectionMsg{
			Beneficiaries: c.Beneficiaries,
			Collection:    c.ID,
			Config:        c.Config,
		}})
		if len(c.FreeMinters) > 0 {
			msgs = append(msgs, sale.ExecuteMsg{AddFreeMinter: &sale.AddFreeMinterMsg{
				Collection: c.ID,
				Addresses:  c.FreeMinters,
			}})
		}
		if len(c.WhiteUsers) > 0 {
			msgs = append(msgs, sale.ExecuteMsg{AddWhiteUsers: &sale.AddWhiteUsersMsg{
				Collection: c.ID,
				Users:      c.WhiteUsers,
			}})
		}
	}
	return msgs
}
