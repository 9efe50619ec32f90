package order

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a JSON object of order id to Order, the same shape the
// import endpoint accepts.
func LoadFile(path string) (map[string]Order, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var orders map[string]Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return orders, nil
}
