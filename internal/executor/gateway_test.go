package executor

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vultisig/xrpl-executor/internal/xrp"
)

const (
	addrRequireTag = "rE6jo1LZNZeD3iexQ6DnfCREEWZ9aUweVy"
	addrMissing    = "rfe8yiZUymRPx35BEwGjhfkaLmgNsTytxT"
	addrSource     = "rPizsaGotY3WV3vPMCY6PUH7FhzFi8QeJN"
	addrGenesis    = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	addrIssuer     = "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
)

// fakeGateway serves canned node answers and counts calls per method.
type fakeGateway struct {
	mu    sync.Mutex
	calls map[string]int

	accounts map[string]*xrp.AccountInfo
	lines    map[string]*xrp.AccountLines
	state    *xrp.ServerState
	txs      map[string]*xrp.TxResult
	submit   *xrp.SubmitResult
	err      error

	submitted []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		calls:    map[string]int{},
		accounts: map[string]*xrp.AccountInfo{},
		lines:    map[string]*xrp.AccountLines{},
		txs:      map[string]*xrp.TxResult{},
	}
}

func (g *fakeGateway) record(method string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[method]++
}

func (g *fakeGateway) count(method string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[method]
}

func (g *fakeGateway) total() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

func (g *fakeGateway) AccountInfo(ctx context.Context, address string) (*xrp.AccountInfo, error) {
	g.record("account_info")
	if g.err != nil {
		return nil, g.err
	}
	if info, ok := g.accounts[address]; ok {
		return info, nil
	}
	return &xrp.AccountInfo{Address: address, Found: false}, nil
}

func (g *fakeGateway) AccountLines(ctx context.Context, address string) (*xrp.AccountLines, error) {
	g.record("account_lines")
	if g.err != nil {
		return nil, g.err
	}
	if lines, ok := g.lines[address]; ok {
		return lines, nil
	}
	return &xrp.AccountLines{Address: address, Found: false}, nil
}

func (g *fakeGateway) ServerState(ctx context.Context) (*xrp.ServerState, error) {
	g.record("server_state")
	if g.err != nil {
		return nil, g.err
	}
	return g.state, nil
}

func (g *fakeGateway) Tx(ctx context.Context, hash string) (*xrp.TxResult, error) {
	g.record("tx")
	if g.err != nil {
		return nil, g.err
	}
	if tx, ok := g.txs[hash]; ok {
		return tx, nil
	}
	return &xrp.TxResult{Hash: hash, Found: false}, nil
}

func (g *fakeGateway) Submit(ctx context.Context, txBlob string) (*xrp.SubmitResult, error) {
	g.record("submit")
	if g.err != nil {
		return nil, g.err
	}
	g.mu.Lock()
	g.submitted = append(g.submitted, txBlob)
	g.mu.Unlock()
	return g.submit, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeMetrics struct {
	broadcasts []string
	builds     []string
	feeDrops   []int64
}

func (m *fakeMetrics) RecordBroadcast(class, _ string) { m.broadcasts = append(m.broadcasts, class) }
func (m *fakeMetrics) RecordBuild(outcome string)      { m.builds = append(m.builds, outcome) }
func (m *fakeMetrics) RecordFeeEstimate(drops int64)   { m.feeDrops = append(m.feeDrops, drops) }
