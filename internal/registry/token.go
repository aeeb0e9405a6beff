package registry

// TokenRecord describes one fungible asset on the target chain.
// Field order here fixes the key order of every serialized record.
type TokenRecord struct {
	ChainID  int64  `json:"chainId"`
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI,omitempty"` // absent at fetch time, required for validation
}

// RawRecord mirrors TokenRecord with pointer fields so the validator can
// tell a missing key from a zero value.
type RawRecord struct {
	ChainID  *int64  `json:"chainId"`
	Address  *string `json:"address"`
	Name     *string `json:"name"`
	Symbol   *string `json:"symbol"`
	Decimals *int    `json:"decimals"`
	LogoURI  *string `json:"logoURI"`
}

// Version is the semantic version of a generated registry.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// ListMeta holds the fixed metadata stamped onto every generated registry.
type ListMeta struct {
	Name     string
	LogoURI  string
	Keywords []string
	Version  Version
}

// Registry is the aggregate token list document. Struct order fixes the
// output key order (name, logoURI, keywords, timestamp, tokens, version)
// so unchanged inputs produce minimal diffs.
type Registry struct {
	Name      string        `json:"name"`
	LogoURI   string        `json:"logoURI"`
	Keywords  []string      `json:"keywords"`
	Timestamp string        `json:"timestamp"`
	Tokens    []TokenRecord `json:"tokens"`
	Version   Version       `json:"version"`
}
