package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chainsafe/agreement-middleware/pkg/agreement"
	apperrors "github.com/chainsafe/agreement-middleware/pkg/app/errors"
	apphttp "github.com/chainsafe/agreement-middleware/pkg/app/http"
)

const maxBodyBytes = 1 << 20

// Response is the body written for successful requests
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service  Service
	logger   *zap.Logger
	validate *validator.Validate
}

// RegisterRoutes registers the agreement endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service:  service,
		logger:   logger,
		validate: newValidator(),
	}

	r.Get("/", apphttp.HandleError(h.overview))
	r.Post("/set_accounts", apphttp.HandleError(h.setAccounts))
	r.Post("/set_master", apphttp.HandleError(h.setMaster))
	r.Post("/deploy_derivative", apphttp.HandleError(h.deployDerivative))
	r.Post("/register_derivative_contract", apphttp.HandleError(h.registerDerivative))
	r.Post("/report_event", apphttp.HandleError(h.reportEvent))
	r.Post("/propose_termination_a", apphttp.HandleError(h.proposeTermination(agreement.RoleA, "propose_derivative_a")))
	r.Post("/propose_termination_b", apphttp.HandleError(h.proposeTermination(agreement.RoleB, "propose_derivative_b")))
	r.Post("/vote_termination_a", apphttp.HandleError(h.voteTermination(agreement.RoleA, "proposal_id_a")))
	r.Post("/vote_termination_b", apphttp.HandleError(h.voteTermination(agreement.RoleB, "proposal_id_b")))
	r.Post("/clear_balance", apphttp.HandleError(h.clearBalance))
	r.Post("/query_balance", apphttp.HandleError(h.queryBalance))
	r.Post("/query_termination", apphttp.HandleError(h.queryTermination))
}

// Field names in validation messages are the form names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type setAccountsForm struct {
	PartyAPK string `form:"party_a_pk" validate:"required,max=132"`
	PartyBPK string `form:"party_b_pk" validate:"required,max=132"`
}

type setMasterForm struct {
	MasterAddress string `form:"master_address" validate:"required,max=128"`
}

// Presence of addresses is left to the orchestrator so that configuration
// errors are reported before field errors.
type deployForm struct {
	DerivativePath string `form:"derivative_path" validate:"max=4096"`
	PartyA         string `form:"deploy_party_a" validate:"max=128"`
	PartyB         string `form:"deploy_party_b" validate:"max=128"`
	DepositAmount  string `form:"deposit_amount" validate:"max=96"`
}

type registerForm struct {
	Derivative string `form:"derivative_contract" validate:"max=128"`
	PartyA     string `form:"party_a_input" validate:"max=128"`
	PartyB     string `form:"party_b_input" validate:"max=128"`
}

type reportForm struct {
	Reporter     string `form:"reporter" validate:"max=128"`
	EventType    string `form:"event_type" validate:"max=32"`
	Derivative   string `form:"report_derivative" validate:"max=128"`
	Reason       string `form:"reason" validate:"max=4096"`
	Details      string `form:"details" validate:"max=4096"`
	ObligationID string `form:"obligation_id" validate:"max=80"`
}

type clearForm struct {
	Derivative string `form:"clear_derivative" validate:"max=128"`
	AmountA    string `form:"amount_a" validate:"max=80"`
	AmountB    string `form:"amount_b" validate:"max=80"`
}

type queryBalanceForm struct {
	Derivative string `form:"query_derivative_balance" validate:"required,max=128"`
}

type queryTerminationForm struct {
	Derivative string `form:"query_derivative_termination" validate:"max=128"`
}

func (h *HTTP) overview(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.Overview(r.Context())
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) setAccounts(w http.ResponseWriter, r *http.Request) error {
	values, err := readValues(r)
	if err != nil {
		return err
	}
	form := setAccountsForm{
		PartyAPK: values.Get("party_a_pk"),
		PartyBPK: values.Get("party_b_pk"),
	}
	if err := h.check(form); err != nil {
		return err
	}

	resp, err := h.service.ConfigureParties(r.Context(), form.PartyAPK, form.PartyBPK)
	if err != nil {
		return err
	}
	writeSuccess(w, "Accounts set successfully!", resp)
	return nil
}

func (h *HTTP) setMaster(w http.ResponseWriter, r *http.Request) error {
	values, err := readValues(r)
	if err != nil {
		return err
	}
	form := setMasterForm{MasterAddress: values.Get("master_address")}
	if err := h.check(form); err != nil {
		return err
	}

	resp, err := h.service.ConfigureMaster(r.Context(), form.MasterAddress)
	if err != nil {
		return err
	}
	writeSuccess(w, "Master Agreement contract address set successfully", resp)
	return nil
}

func (h *HTTP) deployDerivative(w http.ResponseWriter, r *http.Request) error {
	values, err := readValues(r)
	if err != nil {
		return err
	}
	form := deployForm{
		DerivativePath: values.Get("derivative_path"),
		PartyA:         values.Get("deploy_party_a"),
		PartyB:         values.Get("deploy_party_b"),
		DepositAmount:  values.Get("deposit_amount"),
	}
	if err := h.check(form); err != nil {
		return err
	}

	resp, err := h.service.DeployDerivative(r.Context(), agreement.DeployRequest{
		SourcePath: form.DerivativePath,
		PartyA:     form.PartyA,
		PartyB:     form.PartyB,
		Deposit:    form.DepositAmount,
	})
	if err != nil {
		if resp != nil {
			// deployed, but the session could not record it
			apphttp.WriteError(w, err, resp)
			return nil
		}
		return err
	}
	writeSuccess(w, "Derivative contract deployed successfully! Address: "+resp.Address.Hex(), resp)
	return nil
}

func (h *HTTP) registerDerivative(w http.ResponseWriter, r *http.Request) error {
	values, err := readValues(r)
	if err != nil {
		return err
	}
	form := registerForm{
		Derivative: values.Get("derivative_contract"),
		PartyA:     values.Get("party_a_input"),
		PartyB:     values.Get("party_b_input"),
	}
	if err := h.check(form); err != nil {
		return err
	}

	resp, err := h.service.RegisterDerivative(r.Context(), agreement.RegisterRequest{
		Derivative: form.Derivative,
		PartyA:     form.PartyA,
		PartyB:     form.PartyB,
	})
	if err != nil {
		return err
	}
	writeSuccess(w, "Derivative contract registered successfully! Transaction receipt: "+resp.TxHash.Hex(), resp)
	return nil
}

func (h *HTTP) reportEvent(w http.ResponseWriter, r *http.Request) error {
	values, err := readValues(r)
	if err != nil {
		return err
	}
	form := reportForm{
		Reporter:     values.Get("reporter"),
		EventType:    values.Get("event_type"),
		Derivative:   values.Get("report_derivative"),
		Reason:       values.Get("reason"),
		Details:      values.Get("details"),
		ObligationID: values.Get("obligation_id"),
	}
	if err := h.check(form); err != nil {
		return err
	}

	resp, err := h.service.ReportEvent(r.Context(), agreement.ReportRequest{
		Reporter:   form.Reporter,
		Kind:       form.EventType,
		Derivative: form.Derivative,
		Payload:    form.payload(),
	})
	if err != nil {
		return err
	}
	writeSuccess(w, fmt.Sprintf("%s event reported successfully! Transaction receipt: %s", form.EventType, resp.TxHash.Hex()), resp)
	return nil
}

// payload picks the field the selected event kind carries
func (f reportForm) payload() string {
	switch f.EventType {
	case agreement.KindDefault:
		return f.Reason
	case agreement.KindBankruptcy:
		return f.Details
	case agreement.KindPaymentFailed:
		return f.ObligationID
	default:
		return ""
	}
}

func (h *HTTP) proposeTermination(role agreement.Role, field string) apphttp.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		values, err := readValues(r)
		if err != nil {
			return err
		}

		resp, err := h.service.ProposeTermination(r.Context(), role, values.Get(field))
		if err != nil {
			return err
		}
		if !resp.ProposalKnown() {
			writeSuccess(w, fmt.Sprintf("Party %s successfully proposed termination, but Proposal ID was not parsed.", role), resp)
			return nil
		}
		writeSuccess(w, fmt.Sprintf("Party %s successfully proposed termination! Proposal ID: %s", role, resp.ProposalID), resp)
		return nil
	}
}

func (h *HTTP) voteTermination(role agreement.Role, field string) apphttp.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		values, err := readValues(r)
		if err != nil {
			return err
		}

		resp, err := h.service.VoteTermination(r.Context(), role, values.Get(field))
		if err != nil {
			return err
		}
		writeSuccess(w, fmt.Sprintf("Party %s voted successfully! Transaction receipt: %s", role, resp.TxHash.Hex()), resp)
		return nil
	}
}

func (h *HTTP) clearBalance(w http.ResponseWriter, r *http.Request) error {
	values, err := readValues(r)
	if err != nil {
		return err
	}
	form := clearForm{
		Derivative: values.Get("clear_derivative"),
		AmountA:    values.Get("amount_a"),
		AmountB:    values.Get("amount_b"),
	}
	if err := h.check(form); err != nil {
		return err
	}

	resp, err := h.service.ClearBalance(r.Context(), agreement.ClearRequest{
		Derivative: form.Derivative,
		AmountA:    form.AmountA,
		AmountB:    form.AmountB,
	})
	if err != nil {
		return err
	}
	writeSuccess(w, "Balance cleared successfully! Transaction receipt: "+resp.TxHash.Hex(), resp)
	return nil
}

func (h *HTTP) queryBalance(w http.ResponseWriter, r *http.Request) error {
	values, err := readValues(r)
	if err != nil {
		return err
	}
	form := queryBalanceForm{Derivative: values.Get("query_derivative_balance")}
	if err := h.check(form); err != nil {
		return err
	}

	resp, err := h.service.QueryBalance(r.Context(), form.Derivative)
	if err != nil {
		return err
	}
	writeSuccess(w, fmt.Sprintf("Derivative contract %s balance: %s Ether", resp.Derivative.Hex(), resp.Ether.String()), resp)
	return nil
}

func (h *HTTP) queryTermination(w http.ResponseWriter, r *http.Request) error {
	values, err := readValues(r)
	if err != nil {
		return err
	}
	form := queryTerminationForm{Derivative: values.Get("query_derivative_termination")}
	if err := h.check(form); err != nil {
		return err
	}

	resp, err := h.service.QueryTermination(r.Context(), form.Derivative)
	if err != nil {
		return err
	}
	status := "Not terminated"
	if resp.Terminated {
		status = "Terminated"
	}
	writeSuccess(w, fmt.Sprintf("Derivative contract %s termination status: %s", resp.Address.Hex(), status), resp)
	return nil
}

func (h *HTTP) check(form any) error {
	err := h.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.ValidationError(err, "invalid request")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.ValidationError(nil, fe.Field()+" is required")
	case "max":
		return apperrors.ValidationError(nil, fe.Field()+" is too long")
	default:
		return apperrors.ValidationError(nil, fe.Field()+" is invalid")
	}
}

// readValues accepts url-encoded forms and flat JSON objects. Values are trimmed.
func readValues(r *http.Request) (url.Values, error) {
	values := url.Values{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return nil, apperrors.ValidationError(err, "failed to read request")
		}
		var fields map[string]string
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, apperrors.ValidationError(err, "invalid JSON")
		}
		for k, v := range fields {
			values.Set(k, strings.TrimSpace(v))
		}
		return values, nil
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	parse := r.ParseForm
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parse = func() error { return r.ParseMultipartForm(maxBodyBytes) }
	}
	if err := parse(); err != nil {
		return nil, apperrors.ValidationError(err, "invalid form")
	}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			values.Set(k, strings.TrimSpace(v[0]))
		}
	}
	return values, nil
}

func writeSuccess(w http.ResponseWriter, message string, data any) {
	apphttp.WriteJSON(w, http.StatusOK, &Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}
