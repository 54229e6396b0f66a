package service

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/agreement-middleware/pkg/agreement"
	"github.com/chainsafe/agreement-middleware/pkg/agreement/service/mocks"
	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
)

var (
	derivativeAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	txHash         = common.HexToHash("0xabc1")
)

type successBody struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorBody struct {
	Error string          `json:"error"`
	Kind  string          `json:"kind"`
	Code  int             `json:"code"`
	Data  json.RawMessage `json:"data"`
}

func newTestServer(svc Service) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, svc, zap.NewNop())
	return r
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder) successBody {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got successBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "success", got.Status)
	return got
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder, status int) errorBody {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var got errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, status, got.Code)
	return got
}

func TestHTTP_SetAccounts_TrimsFields(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		ConfigureParties(mock.Anything, "0xaa", "0xbb").
		Return(&agreement.PartiesResult{PartyA: common.HexToAddress("0x01"), PartyB: common.HexToAddress("0x02")}, nil)

	rec := postForm(t, newTestServer(svc), "/set_accounts", url.Values{
		"party_a_pk": {"  0xaa "},
		"party_b_pk": {"0xbb\n"},
	})

	got := decodeSuccess(t, rec)
	assert.Equal(t, "Accounts set successfully!", got.Message)
	assert.Contains(t, string(got.Data), strings.ToLower("0x0000000000000000000000000000000000000001"))
}

func TestHTTP_SetAccounts_MissingKey(t *testing.T) {
	svc := mocks.NewService(t)

	rec := postForm(t, newTestServer(svc), "/set_accounts", url.Values{
		"party_a_pk": {"0xaa"},
		"party_b_pk": {"   "},
	})

	got := decodeError(t, rec, http.StatusBadRequest)
	assert.Equal(t, "party_b_pk is required", got.Error)
	assert.Equal(t, "ValidationError", got.Kind)
}

func TestHTTP_SetMaster_JSONBody(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		ConfigureMaster(mock.Anything, derivativeAddr.Hex()).
		Return(&agreement.MasterResult{Master: derivativeAddr}, nil)

	req := httptest.NewRequest(http.MethodPost, "/set_master",
		bytes.NewBufferString(`{"master_address":" `+derivativeAddr.Hex()+` "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestServer(svc).ServeHTTP(rec, req)

	got := decodeSuccess(t, rec)
	assert.Equal(t, "Master Agreement contract address set successfully", got.Message)
}

func TestHTTP_InvalidJSON(t *testing.T) {
	svc := mocks.NewService(t)

	req := httptest.NewRequest(http.MethodPost, "/set_master", bytes.NewBufferString("{invalid"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestServer(svc).ServeHTTP(rec, req)

	got := decodeError(t, rec, http.StatusBadRequest)
	assert.True(t, strings.HasPrefix(got.Error, "invalid JSON: "), got.Error)
}

func TestHTTP_ReportEvent_PicksPayloadByKind(t *testing.T) {
	cases := []struct {
		kind    string
		payload string
	}{
		{agreement.KindDefault, "missed margin call"},
		{agreement.KindBankruptcy, "chapter 11"},
		{agreement.KindPaymentFailed, "42"},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			svc := mocks.NewService(t)
			svc.EXPECT().
				ReportEvent(mock.Anything, agreement.ReportRequest{
					Reporter:   "0x01",
					Kind:       tc.kind,
					Derivative: "0x02",
					Payload:    tc.payload,
				}).
				Return(&agreement.TxResult{TxHash: txHash}, nil)

			rec := postForm(t, newTestServer(svc), "/report_event", url.Values{
				"reporter":          {"0x01"},
				"event_type":        {tc.kind},
				"report_derivative": {"0x02"},
				"reason":            {"missed margin call"},
				"details":           {"chapter 11"},
				"obligation_id":     {"42"},
			})

			got := decodeSuccess(t, rec)
			assert.Equal(t, tc.kind+" event reported successfully! Transaction receipt: "+txHash.Hex(), got.Message)
		})
	}
}

func TestHTTP_ReportEvent_UnknownKindReachesService(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		ReportEvent(mock.Anything, mock.MatchedBy(func(req agreement.ReportRequest) bool {
			return req.Kind == "settlement" && req.Payload == ""
		})).
		Return(nil, apperrors.ValidationError(nil, `unknown event type "settlement"`))

	rec := postForm(t, newTestServer(svc), "/report_event", url.Values{
		"reporter":          {"0x01"},
		"event_type":        {"settlement"},
		"report_derivative": {"0x02"},
		"reason":            {"x"},
	})

	got := decodeError(t, rec, http.StatusBadRequest)
	assert.Equal(t, "ValidationError", got.Kind)
}

func TestHTTP_ProposeTermination_PerParty(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		ProposeTermination(mock.Anything, agreement.RoleA, "0xaaa").
		Return(&agreement.ProposalResult{TxResult: agreement.TxResult{TxHash: txHash}, ProposalID: big.NewInt(7)}, nil)
	svc.EXPECT().
		ProposeTermination(mock.Anything, agreement.RoleB, "0xbbb").
		Return(&agreement.ProposalResult{TxResult: agreement.TxResult{TxHash: txHash}}, nil)
	h := newTestServer(svc)

	got := decodeSuccess(t, postForm(t, h, "/propose_termination_a", url.Values{"propose_derivative_a": {"0xaaa"}}))
	assert.Equal(t, "Party A successfully proposed termination! Proposal ID: 7", got.Message)

	got = decodeSuccess(t, postForm(t, h, "/propose_termination_b", url.Values{"propose_derivative_b": {"0xbbb"}}))
	assert.Equal(t, "Party B successfully proposed termination, but Proposal ID was not parsed.", got.Message)
}

func TestHTTP_VoteTermination_UsesPartyField(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		VoteTermination(mock.Anything, agreement.RoleB, "7").
		Return(&agreement.TxResult{TxHash: txHash}, nil)

	rec := postForm(t, newTestServer(svc), "/vote_termination_b", url.Values{
		"proposal_id_a": {"1"},
		"proposal_id_b": {" 7 "},
	})

	got := decodeSuccess(t, rec)
	assert.Equal(t, "Party B voted successfully! Transaction receipt: "+txHash.Hex(), got.Message)
}

func TestHTTP_ServiceErrorKindsMapToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{apperrors.ConfigurationError(nil, "parties are not configured"), http.StatusPreconditionFailed, "ConfigurationError"},
		{apperrors.SigningError(nil, "no key configured for reporter"), http.StatusForbidden, "SigningError"},
		{apperrors.RevertedError(nil, "transaction reverted"), http.StatusUnprocessableEntity, "RevertedError"},
		{apperrors.FinalityTimeoutError(nil, "finality not reached"), http.StatusGatewayTimeout, "FinalityTimeoutError"},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			svc := mocks.NewService(t)
			svc.EXPECT().
				ClearBalance(mock.Anything, agreement.ClearRequest{Derivative: "0x01", AmountA: "1", AmountB: "2"}).
				Return(nil, tc.err)

			rec := postForm(t, newTestServer(svc), "/clear_balance", url.Values{
				"clear_derivative": {"0x01"},
				"amount_a":         {"1"},
				"amount_b":         {"2"},
			})

			got := decodeError(t, rec, tc.status)
			assert.Equal(t, tc.kind, got.Kind)
		})
	}
}

func TestHTTP_DeployDerivative_PartialFailureCarriesResult(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		DeployDerivative(mock.Anything, agreement.DeployRequest{
			SourcePath: "contracts/Swap.sol",
			PartyA:     "0x01",
			PartyB:     "0x02",
			Deposit:    "1.5",
		}).
		Return(&agreement.DeployResult{Address: derivativeAddr}, apperrors.ConfigurationError(nil, "session is closed"))

	rec := postForm(t, newTestServer(svc), "/deploy_derivative", url.Values{
		"derivative_path": {"contracts/Swap.sol"},
		"deploy_party_a":  {"0x01"},
		"deploy_party_b":  {"0x02"},
		"deposit_amount":  {"1.5"},
	})

	got := decodeError(t, rec, http.StatusPreconditionFailed)
	assert.Equal(t, "session is closed", got.Error)
	assert.Contains(t, string(got.Data), strings.ToLower(derivativeAddr.Hex()))
}

func TestHTTP_DeployDerivative_Success(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		DeployDerivative(mock.Anything, mock.Anything).
		Return(&agreement.DeployResult{Address: derivativeAddr, Deposit: big.NewInt(0)}, nil)

	rec := postForm(t, newTestServer(svc), "/deploy_derivative", url.Values{
		"derivative_path": {"contracts/Swap.sol"},
	})

	got := decodeSuccess(t, rec)
	assert.Equal(t, "Derivative contract deployed successfully! Address: "+derivativeAddr.Hex(), got.Message)
}

func TestHTTP_QueryBalance_RequiresAddress(t *testing.T) {
	svc := mocks.NewService(t)

	rec := postForm(t, newTestServer(svc), "/query_balance", url.Values{})

	got := decodeError(t, rec, http.StatusBadRequest)
	assert.Equal(t, "query_derivative_balance is required", got.Error)
}

func TestHTTP_QueryTermination(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		QueryTermination(mock.Anything, derivativeAddr.Hex()).
		Return(&agreement.DerivativeContract{Address: derivativeAddr, Terminated: true}, nil)

	rec := postForm(t, newTestServer(svc), "/query_termination", url.Values{
		"query_derivative_termination": {derivativeAddr.Hex()},
	})

	got := decodeSuccess(t, rec)
	assert.Equal(t, "Derivative contract "+derivativeAddr.Hex()+" termination status: Terminated", got.Message)
}

func TestHTTP_Overview(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		Overview(mock.Anything).
		Return(&agreement.Overview{Derivatives: []common.Address{derivativeAddr}, LedgerLive: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	newTestServer(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got agreement.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.LedgerLive)
	assert.Equal(t, []common.Address{derivativeAddr}, got.Derivatives)
}
