package models

import (
	"fmt"
	"slices"
	"strings"
)

// Network identifies an Aptos network.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
	NetworkDevnet  Network = "devnet"
)

// DefaultNetwork is used when no network is supplied.
const DefaultNetwork = NetworkTestnet

// AllNetworks returns every known network in display order.
func AllNetworks() []Network {
	return []Network{NetworkMainnet, NetworkTestnet, NetworkDevnet}
}

// IsValid checks if the network is a known value.
func (n Network) IsValid() bool {
	return slices.Contains(AllNetworks(), n)
}

// String returns the network identifier.
func (n Network) String() string {
	return string(n)
}

// ParseNetwork converts user input into a Network. Matching is case-insensitive.
func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(s)))
	if !n.IsValid() {
		return "", fmt.Errorf("unknown network %q: must be one of: mainnet, testnet, devnet", s)
	}
	return n, nil
}
