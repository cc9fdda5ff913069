package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/francescoattisano63-source/cyber-omega-guardian/logging"
	"github.com/francescoattisano63-source/cyber-omega-guardian/risk"
	"github.com/francescoattisano63-source/cyber-omega-guardian/subscription"
	"github.com/francescoattisano63-source/cyber-omega-guardian/vetting"
)

const (
	msgDomainRequired = "Domain is required"
	msgDomainInvalid  = "Input non valido: inserire un dominio o IP valido"
	msgEmailRequired  = "Email is required"
	msgEmailInvalid   = "Input non valido: inserire un indirizzo email valido"
	msgQuestionnaire  = "Questionario incompleto: compilare tutti i campi obbligatori"

	maxBodyBytes = 64 << 10
)

// Checker is the subset of vetting.Checker used by the handlers.
type Checker interface {
	CheckDomain(ctx context.Context, domain string) vetting.DomainReport
	CheckEmail(ctx context.Context, email string) vetting.EmailReport
}

type Handler struct {
	checker Checker
	metrics *Metrics
	log     logging.Logger
}

func NewHandler(checker Checker, metrics *Metrics, log logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Handler{checker: checker, metrics: metrics, log: log}
}

type domainRequest struct {
	Domain inputText `json:"domain"`
}

type emailRequest struct {
	Email inputText `json:"email"`
}

// inputText accepts any JSON value for a text field so a wrong type fails
// validation instead of decoding. Falsy values (null, false, 0) read as
// empty; other non-strings keep their JSON text.
type inputText string

func (t *inputText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = inputText(s)
		return nil
	}
	raw := string(b)
	switch raw {
	case "null", "false":
		*t = ""
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == 0 {
		*t = ""
		return nil
	}
	*t = inputText(raw)
	return nil
}

// decodeBody rejects bodies that are not a single JSON value.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// ParseDomain normalizes and validates a domain-or-IP input.
func ParseDomain(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", required(msgDomainRequired)
	}
	domain := vetting.NormalizeDomain(raw)
	if !vetting.IsValidDomainOrIP(domain) {
		return "", invalid(msgDomainInvalid)
	}
	return domain, nil
}

// ParseEmail trims and validates an email input.
func ParseEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", required(msgEmailRequired)
	}
	if !vetting.IsValidEmail(email) {
		return "", invalid(msgEmailInvalid)
	}
	return email, nil
}

// CheckDomain responds with the report for the normalized domain, which is
// also the value echoed in the "domain" field.
func (h *Handler) CheckDomain(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Warn("check-domain: bad request body", logging.Err(err))
		writeError(w, err)
		return
	}

	domain, err := ParseDomain(string(req.Domain))
	if err != nil {
		writeError(w, err)
		return
	}

	report := h.checker.CheckDomain(r.Context(), domain)
	if h.metrics != nil {
		h.metrics.ObserveRisk("domain", report.RiskAssessment.Level)
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Warn("check-email: bad request body", logging.Err(err))
		writeError(w, err)
		return
	}

	email, err := ParseEmail(string(req.Email))
	if err != nil {
		writeError(w, err)
		return
	}

	report := h.checker.CheckEmail(r.Context(), email)
	if h.metrics != nil {
		h.metrics.ObserveRisk("email", report.RiskAssessment.Level)
	}
	writeJSON(w, http.StatusOK, report)
}

// Assessment scores a completed security questionnaire.
func (h *Handler) Assessment(w http.ResponseWriter, r *http.Request) {
	var q risk.Questionnaire
	if err := decodeBody(r, &q); err != nil {
		h.log.Warn("assessment: bad request body", logging.Err(err))
		writeError(w, err)
		return
	}
	if !q.Complete() {
		writeError(w, required(msgQuestionnaire))
		return
	}
	writeJSON(w, http.StatusOK, risk.ScorePosture(q))
}

func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, subscription.Plans())
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
