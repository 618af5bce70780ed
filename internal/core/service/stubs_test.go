package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
)

const (
	brandAccountHex = "b1b1"
	userAccountHex  = "c1c1"
)

// ---------------------------------------------------------------------------
// Ledger session stub
// ---------------------------------------------------------------------------

type queryFunc func(args map[string]any) (any, error)

type callRecord struct {
	name string
	args []any
}

// stubSession answers queries from a table and records every call. Results
// go through JSON like the real client so decoding is exercised too.
type stubSession struct {
	account domain.HexBytes
	expires time.Time

	mu      sync.Mutex
	queries map[string]queryFunc
	callErr map[string]error
	calls   []callRecord
	asked   []string
}

func newStubSession(account string) *stubSession {
	id, _ := domain.ParseHexBytes(account)
	return &stubSession{
		account: id,
		expires: time.Now().Add(domain.SessionTTL),
		queries: make(map[string]queryFunc),
		callErr: make(map[string]error),
	}
}

func (s *stubSession) AccountID() domain.HexBytes { return s.account }
func (s *stubSession) ExpiresAt() time.Time       { return s.expires }

func (s *stubSession) on(name string, fn queryFunc) *stubSession {
	s.mu.Lock()
	s.queries[name] = fn
	s.mu.Unlock()
	return s
}

func (s *stubSession) returns(name string, result any) *stubSession {
	return s.on(name, func(map[string]any) (any, error) { return result, nil })
}

func (s *stubSession) fails(name string, err error) *stubSession {
	return s.on(name, func(map[string]any) (any, error) { return nil, err })
}

func (s *stubSession) Query(_ context.Context, name string, args map[string]any, out any) error {
	s.mu.Lock()
	s.asked = append(s.asked, name)
	fn, ok := s.queries[name]
	s.mu.Unlock()
	if !ok {
		return errors.New("unknown query " + name)
	}
	res, err := fn(args)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *stubSession) Call(_ context.Context, name string, args ...any) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, callRecord{name: name, args: args})
	if err := s.callErr[name]; err != nil {
		return nil, err
	}
	return &domain.Receipt{TxRID: domain.HexBytes{0x01}, Status: "confirmed"}, nil
}

func (s *stubSession) askedFor(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, q := range s.asked {
		if q == name {
			n++
		}
	}
	return n
}

func (s *stubSession) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// ---------------------------------------------------------------------------
// Wallet and gateway stubs
// ---------------------------------------------------------------------------

type stubKeyStore struct{ id domain.HexBytes }

func (k stubKeyStore) ID() domain.HexBytes { return k.id }
func (k stubKeyStore) SignMessage(_ context.Context, msg []byte) ([]byte, error) {
	return append([]byte("sig:"), msg...), nil
}

type stubWallet struct {
	err error
}

func (w stubWallet) Connect(context.Context) (ports.KeyStore, error) {
	if w.err != nil {
		return nil, w.err
	}
	return stubKeyStore{id: domain.HexBytes{0xaa, 0xbb}}, nil
}

type stubGateway struct {
	accounts    []domain.WalletAccount
	accountsErr error
	session     *stubSession
	loginErr    error
	registerErr error

	loginCfg   domain.LoginConfig
	registered *domain.Operation
	loggedInAs domain.HexBytes

	// onRegister runs inside Register before it returns.
	onRegister    func()
	mu            sync.Mutex
	registerCalls int
}

func (g *stubGateway) registerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.registerCalls
}

func (g *stubGateway) Accounts(context.Context, ports.KeyStore) ([]domain.WalletAccount, error) {
	return g.accounts, g.accountsErr
}

func (g *stubGateway) Login(_ context.Context, _ ports.KeyStore, accountID domain.HexBytes, cfg domain.LoginConfig) (ports.Session, error) {
	g.loginCfg = cfg
	g.loggedInAs = accountID
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.session, nil
}

func (g *stubGateway) Register(_ context.Context, _ ports.KeyStore, cfg domain.LoginConfig, op domain.Operation) (ports.Session, error) {
	g.mu.Lock()
	g.loginCfg = cfg
	g.registered = &op
	g.registerCalls++
	g.mu.Unlock()
	if g.onRegister != nil {
		g.onRegister()
	}
	if g.registerErr != nil {
		return nil, g.registerErr
	}
	return g.session, nil
}

type stubGatewayProvider struct {
	gw      *stubGateway
	err     error
	devSeen []bool
}

func (p *stubGatewayProvider) Gateway(_ context.Context, devMode bool) (ports.AuthGateway, error) {
	p.devSeen = append(p.devSeen, devMode)
	if p.err != nil {
		return nil, p.err
	}
	return p.gw, nil
}

// ---------------------------------------------------------------------------
// Notifier, activity and guard stubs
// ---------------------------------------------------------------------------

type recordingNotifier struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, note domain.Notification) {
	n.mu.Lock()
	n.items = append(n.items, note)
	n.mu.Unlock()
}

func (n *recordingNotifier) all() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.items...)
}

func (n *recordingNotifier) errors() []domain.Notification {
	var out []domain.Notification
	for _, note := range n.all() {
		if note.Level == domain.NotifyError {
			out = append(out, note)
		}
	}
	return out
}

type stubActivityRepo struct {
	mu      sync.Mutex
	entries []domain.Activity
	err     error
}

func (r *stubActivityRepo) Record(_ context.Context, a domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, a)
	return r.err
}

type stubGuard struct {
	mu       sync.Mutex
	held     map[string]string
	err      error
	released []string
}

func newStubGuard() *stubGuard { return &stubGuard{held: make(map[string]string)} }

func (g *stubGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", false, g.err
	}
	if _, ok := g.held[key]; ok {
		return "", false, nil
	}
	token := "token-" + key
	g.held[key] = token
	return token, true, nil
}

func (g *stubGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[key] == token {
		delete(g.held, key)
	}
	g.released = append(g.released, key)
	return nil
}
