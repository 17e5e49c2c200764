package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vultisig/xrpl-executor/internal/executor"
	"github.com/vultisig/xrpl-executor/internal/xrp"
)

type stubServices struct {
	disease string
	info    *executor.IntegrationInfo

	validity    executor.AddressValidationResult
	gotTagType  *executor.AddressTagType
	gotTag      string
	fee         executor.Fee
	built       *executor.BuiltTransaction
	gotBuildReq executor.BuildTransferAmountRequest
	ack         executor.Ack
	gotSigned   string
	state       executor.TransactionState

	err error
}

func (s *stubServices) GetDisease(context.Context) string { return s.disease }

func (s *stubServices) GetInfo(context.Context) (*executor.IntegrationInfo, error) {
	return s.info, s.err
}

func (s *stubServices) Validate(_ context.Context, _ string, tagType *executor.AddressTagType, tag string) (executor.AddressValidationResult, error) {
	s.gotTagType, s.gotTag = tagType, tag
	return s.validity, s.err
}

func (s *stubServices) Estimate(context.Context) (executor.Fee, error) {
	return s.fee, s.err
}

func (s *stubServices) Build(_ context.Context, req executor.BuildTransferAmountRequest) (*executor.BuiltTransaction, error) {
	s.gotBuildReq = req
	return s.built, s.err
}

func (s *stubServices) Broadcast(_ context.Context, signed string) (executor.Ack, error) {
	s.gotSigned = signed
	return s.ack, s.err
}

func (s *stubServices) GetState(context.Context, string) (executor.TransactionState, error) {
	return s.state, s.err
}

func newTestServer(stub *stubServices) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(Config{}, "xrpl-executor", "1.0.0", Services{
		Addresses: stub,
		Fees:      stub,
		Builder:   stub,
		Broadcast: stub,
		States:    stub,
		Health:    stub,
		Info:      stub,
	}, logger)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIsAlive(t *testing.T) {
	stub := &stubServices{}
	rec := do(t, newTestServer(stub), http.MethodGet, "/api/isalive", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"xrpl-executor","version":"1.0.0","disease":""}`, rec.Body.String())

	stub.disease = "Node state is unexpected: syncing"
	rec = do(t, newTestServer(stub), http.MethodGet, "/api/isalive", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Node state is unexpected: syncing")
}

func TestIntegrationInfo(t *testing.T) {
	stub := &stubServices{info: &executor.IntegrationInfo{
		Blockchain: executor.BlockchainInfo{
			LatestBlockNumber: 42,
			LatestBlockMoment: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		Dependencies: map[string]executor.DependencyInfo{
			executor.NodeDependency: {RunningVersion: version.Must(version.NewVersion("2.2.3"))},
		},
	}}

	rec := do(t, newTestServer(stub), http.MethodGet, "/api/integration-info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"blockchain": {"latestBlockNumber": 42, "latestBlockMoment": "2024-01-02T03:04:05Z"},
		"dependencies": {"rippled": {"runningVersion": "2.2.3", "latestVersion": null}}
	}`, rec.Body.String())
}

func TestAddressValidity(t *testing.T) {
	stub := &stubServices{validity: executor.AddressRequiredTagMissed}

	rec := do(t, newTestServer(stub), http.MethodGet, "/api/addresses/rE6jo1LZNZeD3iexQ6DnfCREEWZ9aUweVy/validity?tagType=number&tag=12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":"requiredTagMissed"}`, rec.Body.String())
	require.NotNil(t, stub.gotTagType)
	assert.Equal(t, executor.AddressTagTypeNumber, *stub.gotTagType)
	assert.Equal(t, "12", stub.gotTag)

	rec = do(t, newTestServer(stub), http.MethodGet, "/api/addresses/rE6jo1LZNZeD3iexQ6DnfCREEWZ9aUweVy/validity", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, stub.gotTagType)
}

func TestEstimate(t *testing.T) {
	stub := &stubServices{fee: executor.Fee{
		Asset:  executor.Asset{ID: executor.NativeAssetID},
		Amount: decimal.RequireFromString("0.000012"),
	}}

	rec := do(t, newTestServer(stub), http.MethodPost, "/api/transactions/estimated/transfer-amount", `{"transfers":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"estimatedFees":[{"asset":{"id":"XRP"},"amount":"0.000012"}]}`, rec.Body.String())
}

func TestBuild(t *testing.T) {
	stub := &stubServices{built: &executor.BuiltTransaction{
		Payment: executor.Payment{
			TransactionType: "Payment",
			Account:         "rPizsaGotY3WV3vPMCY6PUH7FhzFi8QeJN",
			Destination:     "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
			Amount:          executor.PaymentAmount{Drops: "1000000"},
			Fee:             "12",
			Flags:           0x80000000,
		},
		Blob: "1200",
	}}

	body := `{
		"transfers": [{
			"sourceAddress": "rPizsaGotY3WV3vPMCY6PUH7FhzFi8QeJN",
			"destinationAddress": "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
			"destinationAddressTag": "7",
			"asset": {"id": "XRP"},
			"amount": "1"
		}],
		"fees": [{"asset": {"id": "XRP"}, "amount": "0.000012"}],
		"expiration": {"afterBlockNumber": 100}
	}`

	rec := do(t, newTestServer(stub), http.MethodPost, "/api/transactions/built/transfer-amount", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"transactionContext": "1200",
		"payment": {
			"TransactionType": "Payment",
			"Account": "rPizsaGotY3WV3vPMCY6PUH7FhzFi8QeJN",
			"Destination": "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
			"Amount": "1000000",
			"Fee": "12",
			"Flags": 2147483648
		}
	}`, rec.Body.String())

	req := stub.gotBuildReq
	require.Len(t, req.Transfers, 1)
	require.NotNil(t, req.Transfers[0].DestinationAddressTag)
	assert.Equal(t, "7", *req.Transfers[0].DestinationAddressTag)
	assert.True(t, decimal.NewFromInt(1).Equal(req.Transfers[0].Amount))
	require.NotNil(t, req.Expiration)
	require.NotNil(t, req.Expiration.AfterBlockNumber)
	assert.Equal(t, uint32(100), *req.Expiration.AfterBlockNumber)
}

func TestBroadcast(t *testing.T) {
	stub := &stubServices{ack: executor.Ack{TransactionID: "ABCD"}}

	rec := do(t, newTestServer(stub), http.MethodPost, "/api/transactions/broadcasted", `{"signed":"1200"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"transactionId":"ABCD"}`, rec.Body.String())
	assert.Equal(t, "1200", stub.gotSigned)
}

func TestTransactionState(t *testing.T) {
	stub := &stubServices{state: executor.TransactionStateMined}

	rec := do(t, newTestServer(stub), http.MethodGet, "/api/transactions/ABCD/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"state":"mined"}`, rec.Body.String())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        &executor.RequestValidationError{Message: "exactly one transfer is supported, got 2"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"exactly one transfer is supported, got 2"}`,
		},
		{
			name:       "not enough balance",
			err:        &executor.TransactionBuildingError{Code: executor.NotEnoughBalance, Message: "low"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"low","errorCode":"notEnoughBalance"}`,
		},
		{
			name:       "rebuild required",
			err:        &executor.TransactionBroadcastingError{Code: executor.RebuildRequired, Message: "past seq"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"past seq","errorCode":"rebuildRequired"}`,
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubServices{err: tt.err}
			rec := do(t, newTestServer(stub), http.MethodGet, "/api/transactions/ABCD/state", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestErrorMapping_Gateway(t *testing.T) {
	node := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer node.Close()

	_, gwErr := xrp.NewClient(node.URL, xrp.WithRetry(1, time.Millisecond)).Tx(context.Background(), "ABCD")
	require.Error(t, gwErr)

	stub := &stubServices{err: gwErr}
	rec := do(t, newTestServer(stub), http.MethodGet, "/api/transactions/ABCD/state", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestBadRequestBody(t *testing.T) {
	rec := do(t, newTestServer(&stubServices{}), http.MethodPost, "/api/transactions/broadcasted", `{"signed":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"invalid request body"}`, rec.Body.String())
}
