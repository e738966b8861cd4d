package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evetools/killfeed/domain/schema"
)

// idParams is the shared schema for numeric resource IDs. Every lookup
// route validates against the same constraint: a positive integer path
// segment, coerced before use.
var idParams = schema.Schema{
	Fields: []schema.Field{schema.PositiveInt("id")},
}

// resourceID validates the {id} path parameter. On failure it writes the
// 400 response and returns false; domain logic is never reached.
func (h *Handler) resourceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	res := idParams.Validate(map[string]string{
		"id": chi.URLParam(r, "id"),
	})
	if !res.Valid() {
		if h.metrics != nil {
			h.metrics.ValidationFailures.WithLabelValues(r.URL.Path).Inc()
		}
		writeFieldErrors(w, res.Errors())
		return 0, false
	}
	return res.Int("id"), true
}

// GetKillmail returns a single killmail by ID.
func (h *Handler) GetKillmail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	k, err := h.lookups.Killmail(r.Context(), id)
	if err != nil {
		h.countLookup("killmail", err)
		writeError(w, h.logger, err)
		return
	}
	h.countLookup("killmail", nil)
	writeJSON(w, http.StatusOK, k)
}

// RedirectKillmail redirects the bare killmail URL to its canonical ESI
// sibling. Validation only; the store is never queried.
func (h *Handler) RedirectKillmail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, "/killmail/"+strconv.FormatInt(id, 10)+"/esi", http.StatusTemporaryRedirect)
}

// GetCharacter returns a single character by ID.
func (h *Handler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	c, err := h.lookups.Character(r.Context(), id)
	if err != nil {
		h.countLookup("character", err)
		writeError(w, h.logger, err)
		return
	}
	h.countLookup("character", nil)
	writeJSON(w, http.StatusOK, c)
}

// GetCorporation returns a single corporation by ID.
func (h *Handler) GetCorporation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	c, err := h.lookups.Corporation(r.Context(), id)
	if err != nil {
		h.countLookup("corporation", err)
		writeError(w, h.logger, err)
		return
	}
	h.countLookup("corporation", nil)
	writeJSON(w, http.StatusOK, c)
}

// GetAlliance returns a single alliance by ID.
func (h *Handler) GetAlliance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	a, err := h.lookups.Alliance(r.Context(), id)
	if err != nil {
		h.countLookup("alliance", err)
		writeError(w, h.logger, err)
		return
	}
	h.countLookup("alliance", nil)
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) countLookup(resource string, err error) {
	if h.metrics == nil {
		return
	}
	outcome := "found"
	switch {
	case err == nil:
	case isNotFound(err):
		outcome = "missing"
	default:
		outcome = "error"
	}
	h.metrics.LookupsTotal.WithLabelValues(resource, outcome).Inc()
}
