package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"registration-module/config"
	"registration-module/errors"
	"registration-module/http/response"
	"registration-module/logger"
	"registration-module/models"
	"registration-module/services"
	"registration-module/utils"
)

// PaymentHandler serves payment initiation and the PayU postback routes.
type PaymentHandler struct {
	cfg    config.Config
	store  Store
	events EventPublisher
	mailer *services.Mailer
}

// NewPaymentHandler wires the handler with its dependencies.
func NewPaymentHandler(cfg config.Config, store Store, events EventPublisher, mailer *services.Mailer) *PaymentHandler {
	return &PaymentHandler{cfg: cfg, store: store, events: events, mailer: mailer}
}

type createPaymentRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Profession string `json:"profession"`
	State      string `json:"state"`
	Batch      string `json:"batch"`
	Language   string `json:"language"`
	Amount     string `json:"amount"`
	Referral   string `json:"referral"`
}

type createPaymentResponse struct {
	Key         string `json:"key"`
	TxnID       string `json:"txnid"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	Firstname   string `json:"firstname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	SURL        string `json:"surl"`
	FURL        string `json:"furl"`
	Hash        string `json:"hash"`
}

// CreatePayment validates the applicant, writes an INITIATED row and returns
// the signed payload the client submits to PayU.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.cfg.BackendURL == "" {
		logger.Error("CRITICAL: BACKEND_URL is not set in environment variables!")
		response.SendAppError(w, errors.NewConfigError("Server configuration error"))
		return
	}
	if h.cfg.PayUMerchantKey == "" || h.cfg.PayUMerchantSalt == "" {
		logger.Error("CRITICAL: PayU merchant credentials are not configured!")
		response.SendAppError(w, errors.NewConfigError("Server configuration error"))
		return
	}

	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.SendAppError(w, errors.NewInvalidParamsError("Invalid request body"))
		return
	}

	required := map[string]string{
		"name":       req.Name,
		"email":      req.Email,
		"phone":      req.Phone,
		"profession": req.Profession,
		"state":      req.State,
		"batch":      req.Batch,
	}
	order := []string{"name", "email", "phone", "profession", "state", "batch"}
	if missing := utils.MissingFields(required, order); len(missing) > 0 {
		response.SendAppError(w, errors.NewInvalidParamsError("Missing required fields"))
		return
	}

	amount := req.Amount
	if amount == "" {
		amount = h.cfg.DefaultAmount
	}

	reg := &models.Registration{
		TxnID:         services.NewTxnID(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Profession:    req.Profession,
		State:         req.State,
		Batch:         req.Batch,
		Language:      req.Language,
		Amount:        amount,
		PaymentStatus: models.StatusInitiated,
	}
	if req.Referral != "" {
		reg.Referral = &req.Referral
	}

	if err := h.store.InsertRegistration(r.Context(), reg); err != nil {
		logger.Error("Database error inserting registration: %v", err)
		response.SendAppError(w, errors.E(errors.Internal, "Database error", err))
		return
	}

	hash := services.RequestHash(services.PaymentRequest{
		Key:         h.cfg.PayUMerchantKey,
		TxnID:       reg.TxnID,
		Amount:      reg.Amount,
		ProductInfo: h.cfg.ProductInfo,
		Firstname:   reg.Name,
		Email:       reg.Email,
	}, h.cfg.PayUMerchantSalt)

	go h.events.PaymentInitiated(reg)

	response.SendJSON(w, http.StatusOK, createPaymentResponse{
		Key:         h.cfg.PayUMerchantKey,
		TxnID:       reg.TxnID,
		Amount:      reg.Amount,
		ProductInfo: h.cfg.ProductInfo,
		Firstname:   reg.Name,
		Email:       reg.Email,
		Phone:       reg.Phone,
		SURL:        h.cfg.BackendURL + "/payu-success",
		FURL:        h.cfg.BackendURL + "/payu-failure",
		Hash:        hash,
	})
}

// postbackField reads a field from the form body, falling back to the query
// string. PayU delivers postbacks over either transport.
func postbackField(r *http.Request, key string) string {
	if v := r.PostFormValue(key); v != "" {
		return v
	}
	return r.URL.Query().Get(key)
}

// verifiedPostback checks the inbound response hash when verification is
// enabled. Unverifiable postbacks are reported but never block the redirect.
func (h *PaymentHandler) verifiedPostback(r *http.Request, status string) bool {
	if !h.cfg.VerifyCallback {
		return true
	}

	ok := services.VerifyResponseHash(services.PaymentRequest{
		Key:         postbackField(r, "key"),
		TxnID:       postbackField(r, "txnid"),
		Amount:      postbackField(r, "amount"),
		ProductInfo: postbackField(r, "productinfo"),
		Firstname:   postbackField(r, "firstname"),
		Email:       postbackField(r, "email"),
	}, h.cfg.PayUMerchantSalt, status, postbackField(r, "hash"))
	if !ok {
		logger.Warn("Rejecting postback with invalid hash. txnid=%s", postbackField(r, "txnid"))
	}
	return ok
}

// PayUSuccess handles the gateway success postback: marks the row SUCCESS,
// records the gateway transaction id and redirects to the frontend.
func (h *PaymentHandler) PayUSuccess(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	txnid := postbackField(r, "txnid")
	mihpayid := postbackField(r, "mihpayid")
	status := postbackField(r, "status")

	if h.cfg.FrontendURL == "" {
		logger.Error("CRITICAL: FRONTEND_URL is not set!")
		http.Error(w, "Configuration Error: FRONTEND_URL missing", http.StatusInternalServerError)
		return
	}

	if txnid != "" && status == "success" && h.verifiedPostback(r, status) {
		var payuTxnID *string
		if mihpayid != "" {
			payuTxnID = &mihpayid
		}

		rows, err := h.store.MarkPaymentSuccess(r.Context(), txnid, payuTxnID)
		if err != nil {
			logger.Error("Database error updating payment status: %v", err)
			response.SendAppError(w, errors.E(errors.Internal, "Database error", err))
			return
		}

		if rows > 0 {
			go h.events.PaymentSuccess(txnid, mihpayid)
			go h.notifyRegistrant(txnid)
		}
	}

	http.Redirect(w, r, h.cfg.FrontendURL+"/success", http.StatusFound)
}

// PayUFailure handles the gateway failure postback: marks the row FAILED and
// redirects. A missing FRONTEND_URL falls back to the root path here, which
// the success route treats as a hard failure; both behaviors are pinned.
func (h *PaymentHandler) PayUFailure(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	txnid := postbackField(r, "txnid")

	if txnid != "" && h.verifiedPostback(r, postbackField(r, "status")) {
		rows, err := h.store.MarkPaymentFailed(r.Context(), txnid)
		if err != nil {
			logger.Error("Database error updating payment status: %v", err)
			response.SendAppError(w, errors.E(errors.Internal, "Database error", err))
			return
		}
		if rows > 0 {
			go h.events.PaymentFailed(txnid)
		}
	}

	target := "/"
	if h.cfg.FrontendURL != "" {
		target = h.cfg.FrontendURL + "/failure"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// notifyRegistrant loads the paid registration and emails the confirmation.
// Runs off the request path; the single synchronous store round-trip per
// callback is preserved.
func (h *PaymentHandler) notifyRegistrant(txnid string) {
	if h.mailer == nil || !h.mailer.Enabled() {
		return
	}

	reg, err := h.store.GetRegistration(context.Background(), txnid)
	if err != nil {
		logger.Warn("Could not load registration %s for confirmation email: %v", txnid, err)
		return
	}
	services.SendPaymentConfirmation(h.mailer, reg)
}
