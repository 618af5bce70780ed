package ledger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/wallet"
)

const testRID = "AB12"

// fakeNode is a single ledger node. Queries are answered from a table,
// transactions are signature-checked and recorded.
type fakeNode struct {
	t *testing.T

	mu        sync.Mutex
	queries   map[string]func(args map[string]any) (any, int)
	txs       []Transaction
	pending   int // status polls answered with "waiting" before confirming
	rejectMsg string
	hits      int
	seenQuery []map[string]any
}

func newFakeNode(t *testing.T) (*fakeNode, *httptest.Server) {
	n := &fakeNode{t: t, queries: make(map[string]func(map[string]any) (any, int))}
	srv := httptest.NewServer(n)
	t.Cleanup(srv.Close)
	return n, srv
}

func (n *fakeNode) answer(name string, result any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queries[name] = func(map[string]any) (any, int) { return result, http.StatusOK }
}

func (n *fakeNode) setPending(polls int) {
	n.mu.Lock()
	n.pending = polls
	n.mu.Unlock()
}

func (n *fakeNode) reject(reason string) {
	n.mu.Lock()
	n.rejectMsg = reason
	n.mu.Unlock()
}

func (n *fakeNode) lastTx() Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.txs) == 0 {
		n.t.Fatal("no transaction received")
	}
	return n.txs[len(n.txs)-1]
}

func (n *fakeNode) queryArgs(i int) map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i >= len(n.seenQuery) {
		n.t.Fatalf("query %d was not received", i)
	}
	return n.seenQuery[i]
}

func (n *fakeNode) hitCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.hits
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hits++

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/brid/iid_0":
		fmt.Fprint(w, testRID+"\n")

	case r.Method == http.MethodPost && r.URL.Path == "/query/"+testRID:
		var args map[string]any
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
			http.Error(w, `{"error":"bad json"}`, http.StatusBadRequest)
			return
		}
		n.seenQuery = append(n.seenQuery, args)
		name, _ := args["type"].(string)
		fn, ok := n.queries[name]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"error":"Unknown query: %s"}`, name)
			return
		}
		res, code := fn(args)
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(res)

	case r.Method == http.MethodPost && r.URL.Path == "/tx/"+testRID:
		var body struct {
			Tx Transaction `json:"tx"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":"bad tx"}`, http.StatusBadRequest)
			return
		}
		if err := verifySignatures(body.Tx); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"error":%q}`, err.Error())
			return
		}
		n.txs = append(n.txs, body.Tx)
		fmt.Fprint(w, "{}")

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/tx/"+testRID+"/") && strings.HasSuffix(r.URL.Path, "/status"):
		switch {
		case n.pending > 0:
			n.pending--
			fmt.Fprint(w, `{"status":"waiting"}`)
		case n.rejectMsg != "":
			fmt.Fprintf(w, `{"status":"rejected","rejectReason":%q}`, n.rejectMsg)
		default:
			fmt.Fprint(w, `{"status":"confirmed"}`)
		}

	default:
		http.NotFound(w, r)
	}
}

func verifySignatures(tx Transaction) error {
	if len(tx.Signers) == 0 || len(tx.Signers) != len(tx.Signatures) {
		return fmt.Errorf("signer/signature mismatch")
	}
	rid, err := tx.RID()
	if err != nil {
		return err
	}
	for i, signer := range tx.Signers {
		addr, err := wallet.RecoverAddress(rid, tx.Signatures[i])
		if err != nil {
			return err
		}
		if !domain.HexBytes(addr.Bytes()).Equal(signer) {
			return fmt.Errorf("bad signature for signer %s", signer)
		}
	}
	return nil
}
