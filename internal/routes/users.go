package routes

import (
	"errors"
	"net/http"

	"github.com/haguru/elibrary/internal/metrics"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/models/dto"
	"github.com/haguru/elibrary/internal/userservice"
	"github.com/haguru/elibrary/internal/validation"
)

// Welcome answers the users root with a plain text greeting.
func (r *Route) Welcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(ContentType, ContentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(MsgWelcome))
}

// Register handles user registration requests.
func (r *Route) Register(w http.ResponseWriter, req *http.Request) {
	signupRequest := &dto.UserSignupRequestDTO{}
	if !r.decodeJSON(w, req, signupRequest) {
		r.Metrics.IncCounterVec(metrics.SignupsTotal, metrics.ResultRejected)
		return
	}

	user := models.NewUser(signupRequest.Name, signupRequest.Email, signupRequest.Password)
	if _, err := r.Services.Users.Register(req.Context(), user); err != nil {
		r.Metrics.IncCounterVec(metrics.SignupsTotal, signupResult(err))
		r.handleError(w, req, EntityUser, "processing your request", err)
		return
	}

	r.Metrics.IncCounterVec(metrics.SignupsTotal, metrics.ResultSuccess)
	r.writeJSON(w, http.StatusOK, &dto.UserSignupResponseDTO{Message: MsgUserRegistered})
}

func signupResult(err error) string {
	var verr *validation.Error
	if errors.As(err, &verr) || errors.Is(err, userservice.ErrEmailTaken) {
		return metrics.ResultRejected
	}
	return metrics.ResultError
}

// Login handles user login requests and returns the user without its stored secret.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	loginRequest := &dto.LoginRequestDTO{}
	if !r.decodeJSON(w, req, loginRequest) {
		r.Metrics.IncCounterVec(metrics.LoginsTotal, metrics.ResultRejected)
		return
	}

	if err := r.validator.Struct(loginRequest); err != nil {
		r.Metrics.IncCounterVec(metrics.LoginsTotal, metrics.ResultRejected)
		r.errorResponse(w, http.StatusBadRequest, MsgMissingCredentials, "")
		return
	}

	user, err := r.Services.Users.Login(req.Context(), loginRequest.Email, loginRequest.Password)
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, userservice.ErrInvalidCredentials) || errors.Is(err, userservice.ErrMissingCredentials) {
			result = metrics.ResultRejected
		}
		r.Metrics.IncCounterVec(metrics.LoginsTotal, result)
		r.handleError(w, req, EntityUser, "processing your request", err)
		return
	}

	r.Metrics.IncCounterVec(metrics.LoginsTotal, metrics.ResultSuccess)
	r.writeJSON(w, http.StatusOK, dto.NewUserResponseDTO(user))
}

// UpdateRating moves one of the rating counters of a user by one.
func (r *Route) UpdateRating(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityUser)
	if !ok {
		return
	}

	update := &dto.RatingUpdateRequestDTO{}
	if !r.decodeJSON(w, req, update) {
		return
	}

	user, err := r.Services.Users.UpdateRating(req.Context(), id, update.Positive, update.Increment)
	if err != nil {
		r.handleError(w, req, EntityUser, "updating the rating", err)
		return
	}
	r.writeJSON(w, http.StatusOK, dto.NewUserResponseDTO(user))
}
