// Package httpapi exposes the advisory HTTP surface over the server
// package's Issue/Dispense/Verify operations, using the Go 1.22
// `http.ServeMux` method+pattern router rather than a third-party web
// framework.
package httpapi

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/vsdl-gov/delegation-engine/group"
	"github.com/vsdl-gov/delegation-engine/proof"
	"github.com/vsdl-gov/delegation-engine/server"
)

// API wires a server.State to the HTTP surface. BaseURL is prefixed onto
// issued delegation URLs ("<base>/delegate/<token>").
type API struct {
	state   *server.State
	baseURL string
	log     zerolog.Logger
}

// New builds an API around the given state.
func New(state *server.State, baseURL string, log zerolog.Logger) *API {
	return &API{state: state, baseURL: baseURL, log: log}
}

// Handler builds the http.Handler exposing every route this service offers.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token/create", a.handleIssue)
	mux.HandleFunc("GET /delegate/{token}", a.handleDispense)
	mux.HandleFunc("POST /verify", a.handleVerify)
	mux.HandleFunc("GET /generators", a.handleGenerators)
	mux.HandleFunc("GET /policies", a.handlePolicies)
	return mux
}

type createTokenRequest struct {
	RecordID  string `json:"recordId"`
	PolicyID  string `json:"policyId"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

type createTokenResponse struct {
	TokenID      string           `json:"tokenId"`
	Token        string           `json:"token"`
	URL          string           `json:"url"`
	ExpiresAt    time.Time        `json:"expiresAt"`
	Cryptography cryptographyView `json:"cryptography"`
}

type cryptographyView struct {
	RecordCommitment string `json:"recordCommitment"`
	PolicyHash       string `json:"policyHash"`
}

func (a *API) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req createTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.RecordID == "" || req.PolicyID == "" || req.ExpiresIn <= 0 {
		writeJSONError(w, http.StatusBadRequest, "recordId, policyId, and a positive expiresIn are required")
		return
	}

	ttl := time.Duration(req.ExpiresIn) * time.Second
	issued, err := a.state.Issue(r.Context(), req.RecordID, req.PolicyID, ttl)
	if err != nil {
		writeError(w, a.log, err)
		return
	}

	resp := createTokenResponse{
		TokenID:   issued.TokenID,
		Token:     issued.Token,
		URL:       a.baseURL + "/delegate/" + url.PathEscape(issued.Token),
		ExpiresAt: issued.ExpiresAt,
		Cryptography: cryptographyView{
			RecordCommitment: issued.Commitment,
			PolicyHash:       issued.PolicyHash,
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

type dispenseResponse struct {
	FilteredRecord map[string]string        `json:"filteredRecord"`
	Actions        []string                 `json:"actions"`
	Proof          proof.WirePartitionProof `json:"proof"`
}

func (a *API) handleDispense(w http.ResponseWriter, r *http.Request) {
	tok := r.PathValue("token")
	if tok == "" {
		writeJSONError(w, http.StatusBadRequest, "missing token")
		return
	}

	dispensed, err := a.state.Dispense(r.Context(), tok)
	if err != nil {
		writeError(w, a.log, err)
		return
	}

	writeJSON(w, http.StatusOK, dispenseResponse{
		FilteredRecord: dispensed.FilteredRecord,
		Actions:        dispensed.Actions,
		Proof:          dispensed.Proof.ToWire(),
	})
}

type verifyRequest struct {
	RecordCommitment string              `json:"recordCommitment"`
	HiddenCommitment string              `json:"hiddenCommitment"`
	VisibleFields    []proof.WireOpening `json:"visibleFields"`
}

type verifyResponse struct {
	Valid             bool   `json:"valid"`
	RecomputedVisible string `json:"recomputedVisible"`
	Verification      string `json:"verification"`
}

func (a *API) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	wire := proof.WirePartitionProof{
		RecordCommitment: req.RecordCommitment,
		HiddenCommitment: req.HiddenCommitment,
		Openings:         req.VisibleFields,
	}
	p, err := proof.FromWire(wire)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed proof")
		return
	}

	result, err := server.Verify(r.Context(), p.RecordCommitment, p)
	if err != nil {
		writeError(w, a.log, err)
		return
	}

	status := "verification-failed"
	if result.Valid {
		status = "ok"
	}
	writeJSON(w, http.StatusOK, verifyResponse{
		Valid:             result.Valid,
		RecomputedVisible: hex.EncodeToString(group.Encode(result.RecomputedVisible)),
		Verification:      status,
	})
}

type generatorsResponse struct {
	G     string `json:"G"`
	H     string `json:"H"`
	Curve string `json:"curve"`
}

func (a *API) handleGenerators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, generatorsResponse{
		G:     hex.EncodeToString(group.Encode(group.G())),
		H:     hex.EncodeToString(group.Encode(group.H)),
		Curve: "secp256k1",
	})
}

type policiesResponse struct {
	Policies []policyView `json:"policies"`
}

type policyView struct {
	ID      string   `json:"id"`
	Visible []string `json:"visible"`
	Hidden  []string `json:"hidden"`
	Actions []string `json:"actions"`
}

func (a *API) handlePolicies(w http.ResponseWriter, r *http.Request) {
	policies := a.state.Catalog().List()
	views := make([]policyView, 0, len(policies))
	for _, p := range policies {
		views = append(views, policyView{ID: p.ID, Visible: p.Visible, Hidden: p.Hidden, Actions: p.Actions})
	}
	writeJSON(w, http.StatusOK, policiesResponse{Policies: views})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, server.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, server.ErrInvalidPolicy):
		writeJSONError(w, http.StatusBadRequest, "invalid policy")
	case errors.Is(err, server.ErrInvalidToken):
		writeJSONError(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, server.ErrMalformed):
		writeJSONError(w, http.StatusBadRequest, "malformed request")
	case errors.Is(err, server.ErrPolicyRecordMismatch):
		log.Error().Err(err).Msg("policy does not cover record")
		writeJSONError(w, http.StatusInternalServerError, "policy misconfiguration")
	default:
		log.Error().Err(err).Msg("internal error")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
