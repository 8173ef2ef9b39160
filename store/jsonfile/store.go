// Package jsonfile persists a plant's register caches to a directory of
// JSON files, one per slave address, using each cache's own
// ToJSON/FromJSON round trip — the default persistence backend documented
// alongside the wire protocol.
package jsonfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/plant"
	"github.com/Moonlight-Companies/givenergy-modbus/register"
)

// Store persists register caches under dir, one file per slave address
// named "<addr>.json".
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it if it doesn't exist.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(addr common.SlaveAddress) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.json", addr))
}

// Save writes every cache known to p to its own file.
func (s *Store) Save(p *plant.Plant) error {
	for _, addr := range p.Addresses() {
		c, ok := p.Cache(addr)
		if !ok {
			continue
		}
		data, err := c.ToJSON()
		if err != nil {
			return fmt.Errorf("jsonfile: encode slave 0x%02x: %w", addr, err)
		}
		if err := os.WriteFile(s.pathFor(addr), data, 0o644); err != nil {
			return fmt.Errorf("jsonfile: write slave 0x%02x: %w", addr, err)
		}
	}
	return nil
}

// Load reads addr's persisted cache, if a file for it exists. It returns
// (nil, false, nil) when there is no snapshot yet.
func (s *Store) Load(addr common.SlaveAddress) (*register.Cache, bool, error) {
	data, err := os.ReadFile(s.pathFor(addr))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("jsonfile: read slave 0x%02x: %w", addr, err)
	}
	c := register.NewCache()
	if err := c.FromJSON(data); err != nil {
		return nil, false, fmt.Errorf("jsonfile: decode slave 0x%02x: %w", addr, err)
	}
	return c, true, nil
}
