// Package fetch pulls per-field ERC-20 metadata from a ledger endpoint.
package fetch

import (
	"context"
	"log/slog"

	"monad-token-registry/internal/evm"
	"monad-token-registry/internal/registry"
	"monad-token-registry/internal/retry"
)

// Fetcher reads token metadata over an established ledger connection.
type Fetcher struct {
	client   evm.Client
	chainID  int64
	retryCfg retry.Config
	log      *slog.Logger
}

// New creates a fetcher stamping chainID onto every record it produces.
func New(client evm.Client, chainID int64, retryCfg retry.Config, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		client:   client,
		chainID:  chainID,
		retryCfg: retryCfg,
		log:      log,
	}
}

// FetchToken reads name, symbol and decimals for addr, each under its
// own independent retry budget so an already-fetched field is never
// re-attempted because a later one failed. addr must already be in
// canonical checksummed form. If any field exhausts its budget, no
// record is returned at all.
func (f *Fetcher) FetchToken(ctx context.Context, addr string) (*registry.TokenRecord, error) {
	name, err := retry.Do(func() (string, error) {
		return evm.TokenName(ctx, f.client, addr)
	}, f.retryCfg, "fetch name")
	if err != nil {
		return nil, err
	}
	f.log.Debug("fetched field", "field", "name", "address", addr, "value", name)

	symbol, err := retry.Do(func() (string, error) {
		return evm.TokenSymbol(ctx, f.client, addr)
	}, f.retryCfg, "fetch symbol")
	if err != nil {
		return nil, err
	}
	f.log.Debug("fetched field", "field", "symbol", "address", addr, "value", symbol)

	decimals, err := retry.Do(func() (uint8, error) {
		return evm.TokenDecimals(ctx, f.client, addr)
	}, f.retryCfg, "fetch decimals")
	if err != nil {
		return nil, err
	}
	f.log.Debug("fetched field", "field", "decimals", "address", addr, "value", decimals)

	return &registry.TokenRecord{
		ChainID:  f.chainID,
		Address:  addr,
		Name:     name,
		Symbol:   symbol,
		Decimals: int(decimals),
	}, nil
}
