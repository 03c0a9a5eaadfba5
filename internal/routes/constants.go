package routes

const (
	// API route patterns
	MetricsRouteAPI = "GET /metrics"

	UsersWelcomeRouteAPI = "GET /api/users/{$}"
	RegisterRouteAPI     = "POST /api/users/register"
	LoginRouteAPI        = "POST /api/users/login"
	RatingRouteAPI       = "PUT /api/users/{id}/rating"

	AddBookRouteAPI    = "POST /api/books/addBook"
	AllBooksRouteAPI   = "GET /api/books/allBooks"
	GetBookRouteAPI    = "GET /api/books/{id}"
	UpdateBookRouteAPI = "PUT /api/books/{id}"
	DeleteBookRouteAPI = "DELETE /api/books/{id}"

	AddLoanRouteAPI    = "POST /api/loans/addLoan"
	AllLoansRouteAPI   = "GET /api/loans/allLoans"
	GetLoanRouteAPI    = "GET /api/loans/{id}"
	UpdateLoanRouteAPI = "PUT /api/loans/{id}"
	DeleteLoanRouteAPI = "DELETE /api/loans/{id}"

	AddPostRouteAPI    = "POST /api/posts/{$}"
	AllPostsRouteAPI   = "GET /api/posts/{$}"
	GetPostRouteAPI    = "GET /api/posts/{id}"
	DeletePostRouteAPI = "DELETE /api/posts/{id}"

	AddReviewRouteAPI    = "POST /api/reviews/addReview"
	AllReviewsRouteAPI   = "GET /api/reviews/allReviews"
	GetReviewRouteAPI    = "GET /api/reviews/{id}"
	UpdateReviewRouteAPI = "PUT /api/reviews/{id}"
	DeleteReviewRouteAPI = "DELETE /api/reviews/{id}"

	// Content-Type constants
	ContentType          = "Content-Type"
	ContentTypeJson      = "application/json"
	ContentTypeText      = "text/plain; charset=utf-8"
	ContentTypeMultipart = "multipart/form-data"
	RetryAfter           = "Retry-After"

	// multipart form field holding the cover image
	ImageFormField = "image"

	// entity names used in messages and metric labels
	EntityUser   = "user"
	EntityBook   = "book"
	EntityLoan   = "loan"
	EntityPost   = "post"
	EntityReview = "review"

	// message constants
	MsgWelcome              = "Welcome to the API! Please use /api/users/register to register."
	MsgUserRegistered       = "User registered successfully."
	MsgInvalidCredentials   = "Invalid email or password."
	MsgMissingCredentials   = "Email and password are required."
	MsgEmailTaken           = "A user with this email already exists."
	MsgUserNotFound         = "User not found."
	MsgBookNotFound         = "Book not found."
	MsgBookDoesNotExist     = "Book does not exist."
	MsgLoanNotFound         = "Loan not found."
	MsgPostNotFound         = "Post not found."
	MsgReviewNotFound       = "Review not found."
	MsgAuthorNotFound       = "Author does not exist."
	MsgImageRequired        = "Image file is required."
	MsgOnlyImages           = "Only image files are allowed."
	MsgImageTooLarge        = "Image file is too large."
	MsgInvalidIDFormat      = "Invalid %s ID"
	MsgUnexpectedFormat     = "An error occurred while %s."
	MsgInvalidRequestBody   = "Invalid request body"
	MsgInvalidContentType   = "Request Content-Type must be application/json"
	MsgInvalidMultipartForm = "Request must be a multipart form"

	// Error messages
	ErrFailedToEncodeResponse   = "failed to encode response"
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrRequestFailed            = "request failed"
)
