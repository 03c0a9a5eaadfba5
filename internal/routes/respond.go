package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/haguru/elibrary/internal/covers"
	"github.com/haguru/elibrary/internal/dberrors"
	"github.com/haguru/elibrary/internal/libraryservice"
	"github.com/haguru/elibrary/internal/metrics"
	"github.com/haguru/elibrary/internal/models/dto"
	"github.com/haguru/elibrary/internal/userservice"
	"github.com/haguru/elibrary/internal/validation"
)

// knownErrors maps service sentinels onto the status and message sent to clients.
var knownErrors = []struct {
	err     error
	status  int
	message string
}{
	{userservice.ErrEmailTaken, http.StatusConflict, MsgEmailTaken},
	{userservice.ErrMissingCredentials, http.StatusBadRequest, MsgMissingCredentials},
	{userservice.ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials},
	{userservice.ErrUserNotFound, http.StatusNotFound, MsgUserNotFound},
	{userservice.ErrInvalidID, http.StatusBadRequest, fmt.Sprintf(MsgInvalidIDFormat, EntityUser)},
	{libraryservice.ErrInvalidBookID, http.StatusBadRequest, fmt.Sprintf(MsgInvalidIDFormat, EntityBook)},
	{libraryservice.ErrInvalidLoanID, http.StatusBadRequest, fmt.Sprintf(MsgInvalidIDFormat, EntityLoan)},
	{libraryservice.ErrInvalidPostID, http.StatusBadRequest, fmt.Sprintf(MsgInvalidIDFormat, EntityPost)},
	{libraryservice.ErrInvalidReviewID, http.StatusBadRequest, fmt.Sprintf(MsgInvalidIDFormat, EntityReview)},
	{libraryservice.ErrBookNotFound, http.StatusNotFound, MsgBookNotFound},
	{libraryservice.ErrBookDoesNotExist, http.StatusConflict, MsgBookDoesNotExist},
	{libraryservice.ErrLoanNotFound, http.StatusNotFound, MsgLoanNotFound},
	{libraryservice.ErrPostNotFound, http.StatusNotFound, MsgPostNotFound},
	{libraryservice.ErrReviewNotFound, http.StatusNotFound, MsgReviewNotFound},
	{libraryservice.ErrAuthorNotFound, http.StatusConflict, MsgAuthorNotFound},
	{covers.ErrNotImage, http.StatusBadRequest, MsgOnlyImages},
	{covers.ErrTooLarge, http.StatusRequestEntityTooLarge, MsgImageTooLarge},
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, status int, message, details string) {
	r.writeJSON(w, status, &dto.MessageResponseDTO{Message: message, Details: details})
}

// handleError writes the response for a failed service call. action completes the
// sentence "An error occurred while ..." for failures nothing else explains.
func (r *Route) handleError(w http.ResponseWriter, req *http.Request, entity, action string, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		r.Logger.Warn("validation failed", "entity", verr.Entity, "errors", strings.Join(verr.Messages, ", "))
		r.writeJSON(w, http.StatusBadRequest, &dto.ValidationErrorResponseDTO{Errors: verr.Messages})
		return
	}

	for _, known := range knownErrors {
		if errors.Is(err, known.err) {
			r.Logger.Info(ErrRequestFailed, "path", req.URL.Path, "status", known.status, "error", err)
			r.errorResponse(w, known.status, known.message, "")
			return
		}
	}

	var perr *dberrors.PersistenceError
	if errors.As(err, &perr) {
		status := dberrors.HTTPStatus(perr)
		r.Metrics.IncCounterVec(metrics.PersistenceErrorsTotal, perr.Entity, perr.Kind.String())
		r.Logger.Error(ErrRequestFailed, "path", req.URL.Path, "entity", perr.Entity, "op", perr.Op,
			"kind", perr.Kind.String(), "code", string(perr.Code), "error", err)
		if status == http.StatusServiceUnavailable {
			w.Header().Set(RetryAfter, dberrors.RetryAfterSeconds)
		}
		r.errorResponse(w, status, perr.Message, "")
		return
	}

	r.Logger.Error(ErrRequestFailed, "path", req.URL.Path, "entity", entity, "error", err)
	r.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf(MsgUnexpectedFormat, action), err.Error())
}

// decodeJSON checks the Content-Type and decodes the request body into dst. It writes the
// 400 response itself and reports whether the handler may continue.
func (r *Route) decodeJSON(w http.ResponseWriter, req *http.Request, dst interface{}) bool {
	if !strings.HasPrefix(req.Header.Get(ContentType), ContentTypeJson) {
		r.Logger.Warn(fmt.Sprintf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)), "path", req.URL.Path)
		r.errorResponse(w, http.StatusBadRequest, MsgInvalidContentType, "")
		return false
	}
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		r.errorResponse(w, http.StatusBadRequest, MsgInvalidRequestBody, err.Error())
		return false
	}
	return true
}

// pathID parses the {id} wildcard. Malformed and non-positive ids get a 400 naming entity.
func (r *Route) pathID(w http.ResponseWriter, req *http.Request, entity string) (int64, bool) {
	id, err := strconv.ParseInt(req.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		r.errorResponse(w, http.StatusBadRequest, fmt.Sprintf(MsgInvalidIDFormat, entity), "")
		return 0, false
	}
	return id, true
}
