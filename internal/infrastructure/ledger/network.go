package ledger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// ProductionBlockchainRID identifies the voucher dapp on the public network.
	ProductionBlockchainRID = "56B4895B43D7507C3113406A91CA44113CA626CE7FA0B635F716678E394734B7"
	// DevNodeURL is the local single-node test network.
	DevNodeURL = "http://localhost:7740"
	// fallbackRID is used when the local node cannot report its chain.
	fallbackRID = "0"
)

// Network is the chain a client talks to and the nodes serving it.
type Network struct {
	BlockchainRID string
	NodeURLs      []string
}

// ProductionNetwork returns the public network's fixed configuration.
func ProductionNetwork() Network {
	return Network{
		BlockchainRID: ProductionBlockchainRID,
		NodeURLs: []string{
			"https://node0.projectnet.chromia.dev:7740",
			"https://node1.projectnet.chromia.dev:7740",
			"https://node2.projectnet.chromia.dev:7740",
			"https://node3.projectnet.chromia.dev:7740",
		},
	}
}

// ResolveDevNetwork asks the local node for the RID of its first chain. Any
// failure falls back to "0" so the client can still be created.
func ResolveDevNetwork(ctx context.Context, hc *http.Client, nodeURL string, log zerolog.Logger) Network {
	if nodeURL == "" {
		nodeURL = DevNodeURL
	}
	nodeURL = strings.TrimRight(nodeURL, "/")
	net := Network{BlockchainRID: fallbackRID, NodeURLs: []string{nodeURL}}

	rid, err := fetchRID(ctx, hc, nodeURL)
	if err != nil {
		log.Warn().Err(err).Str("node", nodeURL).Msg("could not resolve dev blockchain rid, using fallback")
		return net
	}
	net.BlockchainRID = rid
	return net
}

func fetchRID(ctx context.Context, hc *http.Client, nodeURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nodeURL+"/brid/iid_0", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("brid request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("brid request returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	rid := strings.TrimSpace(string(body))
	if rid == "" {
		return "", fmt.Errorf("empty blockchain rid")
	}
	return rid, nil
}
