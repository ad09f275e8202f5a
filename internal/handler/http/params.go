package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/utils"
)

// userIDFromRequest returns the authenticated user's ID placed into the
// request context by the auth middleware. A missing ID means the handler was
// reached without the middleware; the request is rejected with 401.
func (h *Handler) userIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user id in request context")
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// uuidURLParam extracts a URL parameter and checks that it is a well-formed
// UUID. Validating here keeps malformed identifiers away from the database,
// where a bad uuid literal would surface as a query error instead of a clean
// not-found.
func uuidURLParam(r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if uuid.Validate(id) != nil {
		return "", false
	}
	return id, true
}
