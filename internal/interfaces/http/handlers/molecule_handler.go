package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/turtacn/rdkit-go/internal/application/molecule"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
)

// MoleculeHandler serves the /api/v1 chemistry endpoints.
type MoleculeHandler struct {
	svc    molecule.Service
	logger logging.Logger
}

func NewMoleculeHandler(svc molecule.Service, logger logging.Logger) *MoleculeHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MoleculeHandler{svc: svc, logger: logger.Named("handler")}
}

// VersionResponse is the body of GET /api/v1/version.
type VersionResponse struct {
	RDKit string `json:"rdkit"`
}

func (h *MoleculeHandler) Version(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Version(r.Context())
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, VersionResponse{RDKit: v})
}

func (h *MoleculeHandler) Canonical(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Canonicalize)
}

func (h *MoleculeHandler) Convert(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Convert)
}

func (h *MoleculeHandler) Match(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Match)
}

func (h *MoleculeHandler) Fingerprint(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Fingerprint)
}

func (h *MoleculeHandler) Similarity(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Similarity)
}

func (h *MoleculeHandler) Standardize(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Standardize)
}

func (h *MoleculeHandler) Fragments(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Fragments)
}

func (h *MoleculeHandler) Descriptors(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Descriptors)
}

func (h *MoleculeHandler) Batch(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, h.svc.Batch)
}

// Depict answers with raw SVG when the client accepts image/svg+xml and
// with {"svg": ...} otherwise.
func (h *MoleculeHandler) Depict(w http.ResponseWriter, r *http.Request) {
	var in molecule.DepictInput
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	res, err := h.svc.Depict(r.Context(), &in)
	h.writeSVG(w, r, res, err)
}

func (h *MoleculeHandler) DepictReaction(w http.ResponseWriter, r *http.Request) {
	var in molecule.DepictReactionInput
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	res, err := h.svc.DepictReaction(r.Context(), &in)
	h.writeSVG(w, r, res, err)
}

func (h *MoleculeHandler) writeSVG(w http.ResponseWriter, r *http.Request, res *molecule.DepictResult, err error) {
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "image/svg+xml") {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(res.SVG))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// serve decodes the body into In, calls fn, and writes its result.
func serve[In, Out any](h *MoleculeHandler, w http.ResponseWriter, r *http.Request, fn func(context.Context, *In) (*Out, error)) {
	var in In
	if err := decodeJSON(r, &in); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	out, err := fn(r.Context(), &in)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

//Personal.AI order the ending
