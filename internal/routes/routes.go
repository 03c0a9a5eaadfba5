package routes

import (
	"net/http"

	"github.com/haguru/elibrary/internal/interfaces"

	structValidator "github.com/go-playground/validator/v10"
)

// Services groups the collaborators the handlers call into.
type Services struct {
	Users   interfaces.UserService
	Books   interfaces.BookService
	Loans   interfaces.LoanService
	Posts   interfaces.PostService
	Reviews interfaces.ReviewService
}

type Route struct {
	Metrics   interfaces.Metrics
	Services  Services
	Logger    interfaces.Logger
	validator *structValidator.Validate
}

// Endpoint is one handler and the ServeMux pattern it is served under. RateLimited
// endpoints are wrapped with the rate limiter by the caller.
type Endpoint struct {
	Pattern     string
	Handler     http.HandlerFunc
	RateLimited bool
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, services Services, logger interfaces.Logger,
	validator *structValidator.Validate,
) *Route {
	return &Route{
		Metrics:   metrics,
		Services:  services,
		Logger:    logger,
		validator: validator,
	}
}

// Endpoints lists every API handler.
func (r *Route) Endpoints() []Endpoint {
	return []Endpoint{
		{Pattern: UsersWelcomeRouteAPI, Handler: r.Welcome},
		{Pattern: RegisterRouteAPI, Handler: r.Register, RateLimited: true},
		{Pattern: LoginRouteAPI, Handler: r.Login, RateLimited: true},
		{Pattern: RatingRouteAPI, Handler: r.UpdateRating},

		{Pattern: AddBookRouteAPI, Handler: r.AddBook},
		{Pattern: AllBooksRouteAPI, Handler: r.GetAllBooks},
		{Pattern: GetBookRouteAPI, Handler: r.GetBook},
		{Pattern: UpdateBookRouteAPI, Handler: r.UpdateBook},
		{Pattern: DeleteBookRouteAPI, Handler: r.DeleteBook},

		{Pattern: AddLoanRouteAPI, Handler: r.AddLoan},
		{Pattern: AllLoansRouteAPI, Handler: r.GetAllLoans},
		{Pattern: GetLoanRouteAPI, Handler: r.GetLoan},
		{Pattern: UpdateLoanRouteAPI, Handler: r.UpdateLoan},
		{Pattern: DeleteLoanRouteAPI, Handler: r.DeleteLoan},

		{Pattern: AddPostRouteAPI, Handler: r.AddPost},
		{Pattern: AllPostsRouteAPI, Handler: r.GetAllPosts},
		{Pattern: GetPostRouteAPI, Handler: r.GetPost},
		{Pattern: DeletePostRouteAPI, Handler: r.DeletePost},

		{Pattern: AddReviewRouteAPI, Handler: r.AddReview},
		{Pattern: AllReviewsRouteAPI, Handler: r.GetAllReviews},
		{Pattern: GetReviewRouteAPI, Handler: r.GetReview},
		{Pattern: UpdateReviewRouteAPI, Handler: r.UpdateReview},
		{Pattern: DeleteReviewRouteAPI, Handler: r.DeleteReview},
	}
}
