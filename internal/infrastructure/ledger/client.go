// Package ledger is a client for the voucher dapp's ledger nodes: read-only
// queries, signed transaction submission with confirmation polling, and the
// account/session flows built on top of them.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultPollInterval   = 500 * time.Millisecond
	defaultConfirmTimeout = 60 * time.Second
	maxResponseBytes      = 4 << 20
)

// Tx statuses reported by a node.
const (
	statusConfirmed = "confirmed"
	statusRejected  = "rejected"
	statusWaiting   = "waiting"
	statusUnknown   = "unknown"
)

// ErrConfirmTimeout is returned when a transaction is still pending after the
// confirmation timeout.
var ErrConfirmTimeout = errors.New("ledger: transaction not confirmed in time")

// RemoteError is an error reported by a node, such as a failed query or a
// rejected transaction. Its message is the ledger's own text.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("ledger: %s (status %d)", e.Message, e.StatusCode)
}

// Observer is told about every query and transaction, for metrics.
type Observer func(kind string, elapsed time.Duration, err error)

// Options tunes a Client. Zero values pick defaults.
type Options struct {
	HTTPClient     *http.Client
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
	Observer       Observer
}

// Client talks to one blockchain through a pool of nodes. When a node is
// unreachable or answers with a server error the next one is tried; the last
// healthy node is preferred for later requests.
type Client struct {
	network        Network
	hc             *http.Client
	pollInterval   time.Duration
	confirmTimeout time.Duration
	observe        Observer
	log            zerolog.Logger

	mu        sync.Mutex
	preferred int
}

// NewClient validates the network and returns a client for it.
func NewClient(network Network, opts Options, log zerolog.Logger) (*Client, error) {
	if network.BlockchainRID == "" {
		return nil, errors.New("ledger: blockchain rid is required")
	}
	if len(network.NodeURLs) == 0 {
		return nil, errors.New("ledger: at least one node url is required")
	}
	nodes := make([]string, len(network.NodeURLs))
	for i, u := range network.NodeURLs {
		nodes[i] = strings.TrimRight(u, "/")
	}
	network.NodeURLs = nodes

	c := &Client{
		network:        network,
		hc:             opts.HTTPClient,
		pollInterval:   opts.PollInterval,
		confirmTimeout: opts.ConfirmTimeout,
		observe:        opts.Observer,
		log:            log,
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: defaultRequestTimeout}
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.confirmTimeout <= 0 {
		c.confirmTimeout = defaultConfirmTimeout
	}
	return c, nil
}

func (c *Client) Network() Network {
	return c.network
}

// Query runs a read-only query and decodes its JSON result into out.
func (c *Client) Query(ctx context.Context, name string, args map[string]any, out any) (err error) {
	start := time.Now()
	defer func() { c.report("query:"+name, start, err) }()

	payload := make(map[string]any, len(args)+1)
	for k, v := range args {
		payload[k] = v
	}
	payload["type"] = name
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode query %s: %w", name, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/query/"+c.network.BlockchainRID, body)
	if err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("decode query %s: %w", name, err)
	}
	return nil
}

// SendTransaction posts a signed transaction and waits for it to be confirmed.
func (c *Client) SendTransaction(ctx context.Context, tx *Transaction) (receipt *domain.Receipt, err error) {
	start := time.Now()
	defer func() { c.report("tx", start, err) }()

	rid, err := tx.RID()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]any{"tx": tx})
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	if _, err := c.do(ctx, http.MethodPost, "/tx/"+c.network.BlockchainRID, body); err != nil {
		return nil, fmt.Errorf("submit transaction: %w", err)
	}
	return c.awaitConfirmation(ctx, rid)
}

type txStatus struct {
	Status       string `json:"status"`
	RejectReason string `json:"rejectReason"`
}

func (c *Client) awaitConfirmation(ctx context.Context, rid domain.HexBytes) (*domain.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	path := fmt.Sprintf("/tx/%s/%s/status", c.network.BlockchainRID, rid)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		resp, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrConfirmTimeout
			}
			return nil, fmt.Errorf("poll transaction: %w", err)
		}
		var st txStatus
		if err := json.Unmarshal(resp, &st); err != nil {
			return nil, fmt.Errorf("decode transaction status: %w", err)
		}

		switch st.Status {
		case statusConfirmed:
			return &domain.Receipt{TxRID: rid, Status: st.Status}, nil
		case statusRejected:
			return nil, &RemoteError{StatusCode: http.StatusOK, Message: st.RejectReason}
		case statusWaiting, statusUnknown:
		default:
			c.log.Warn().Str("status", st.Status).Str("tx", rid.String()).Msg("unexpected transaction status")
		}

		select {
		case <-ctx.Done():
			return nil, ErrConfirmTimeout
		case <-ticker.C:
		}
	}
}

// do sends the request to each node in turn, starting with the preferred one,
// until one of them answers with something other than a server error.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	c.mu.Lock()
	first := c.preferred
	c.mu.Unlock()

	var lastErr error
	n := len(c.network.NodeURLs)
	for i := 0; i < n; i++ {
		idx := (first + i) % n
		node := c.network.NodeURLs[idx]

		resp, err := c.send(ctx, method, node+path, body)
		if err == nil {
			c.mu.Lock()
			c.preferred = idx
			c.mu.Unlock()
			return resp, nil
		}

		var remote *RemoteError
		if errors.As(err, &remote) && remote.StatusCode < http.StatusInternalServerError {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn().Err(err).Str("node", node).Msg("ledger node failed, trying next")
		lastErr = err
	}
	return nil, fmt.Errorf("all %d nodes failed: %w", n, lastErr)
}

func (c *Client) send(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage extracts the node's {"error": "..."} text, or the raw body.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}

func (c *Client) report(kind string, start time.Time, err error) {
	if c.observe != nil {
		c.observe(kind, time.Since(start), err)
	}
}
