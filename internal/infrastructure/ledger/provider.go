package ledger

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/ports"
)

// ProviderConfig selects and tunes the network.
type ProviderConfig struct {
	// ForceDev always uses the local network, whatever the caller asks for.
	ForceDev   bool
	DevNodeURL string
	Production Network
	Options    Options
}

// Provider creates the gateway on first use and hands out the same one
// afterwards. A failed creation is retried on the next call.
type Provider struct {
	cfg ProviderConfig
	log zerolog.Logger

	mu sync.Mutex
	gw *Gateway
}

func NewProvider(cfg ProviderConfig, log zerolog.Logger) *Provider {
	if cfg.Production.BlockchainRID == "" {
		cfg.Production = ProductionNetwork()
	}
	if cfg.Options.HTTPClient == nil {
		cfg.Options.HTTPClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Provider{cfg: cfg, log: log}
}

// Gateway returns the process-wide gateway. The dev flag only matters for the
// call that creates it.
func (p *Provider) Gateway(ctx context.Context, devMode bool) (ports.AuthGateway, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gw != nil {
		return p.gw, nil
	}

	network := p.cfg.Production
	if devMode || p.cfg.ForceDev {
		network = ResolveDevNetwork(ctx, p.cfg.Options.HTTPClient, p.cfg.DevNodeURL, p.log)
	}
	client, err := NewClient(network, p.cfg.Options, p.log)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to create ledger client")
		return nil, err
	}
	p.gw = NewGateway(client, p.log)
	p.log.Info().
		Str("blockchain_rid", network.BlockchainRID).
		Strs("nodes", network.NodeURLs).
		Bool("dev", devMode || p.cfg.ForceDev).
		Msg("ledger client created")
	return p.gw, nil
}

// Ready reports whether the gateway has been created.
func (p *Provider) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gw != nil
}
