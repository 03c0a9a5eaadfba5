package routes

import (
	"net/http"

	"github.com/haguru/elibrary/internal/models"
)

func (r *Route) AddLoan(w http.ResponseWriter, req *http.Request) {
	loan := &models.Loan{}
	if !r.decodeJSON(w, req, loan) {
		return
	}
	loan.ID = 0

	created, err := r.Services.Loans.CreateLoan(req.Context(), loan)
	if err != nil {
		r.handleError(w, req, EntityLoan, "creating the loan", err)
		return
	}
	r.writeJSON(w, http.StatusCreated, created)
}

func (r *Route) GetAllLoans(w http.ResponseWriter, req *http.Request) {
	loans, err := r.Services.Loans.GetAllLoans(req.Context())
	if err != nil {
		r.handleError(w, req, EntityLoan, "retrieving loans", err)
		return
	}
	r.writeJSON(w, http.StatusOK, nonNil(loans))
}

func (r *Route) GetLoan(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityLoan)
	if !ok {
		return
	}
	loan, err := r.Services.Loans.GetLoanByID(req.Context(), id)
	if err != nil {
		r.handleError(w, req, EntityLoan, "retrieving the loan", err)
		return
	}
	r.writeJSON(w, http.StatusOK, loan)
}

func (r *Route) UpdateLoan(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityLoan)
	if !ok {
		return
	}
	loan := &models.Loan{}
	if !r.decodeJSON(w, req, loan) {
		return
	}
	loan.ID = id

	updated, err := r.Services.Loans.UpdateLoan(req.Context(), loan)
	if err != nil {
		r.handleError(w, req, EntityLoan, "updating the loan", err)
		return
	}
	r.writeJSON(w, http.StatusOK, updated)
}

func (r *Route) DeleteLoan(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityLoan)
	if !ok {
		return
	}
	if err := r.Services.Loans.DeleteLoan(req.Context(), id); err != nil {
		r.handleError(w, req, EntityLoan, "deleting the loan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddPost creates a post. The author must be an existing user.
func (r *Route) AddPost(w http.ResponseWriter, req *http.Request) {
	post := &models.Post{}
	if !r.decodeJSON(w, req, post) {
		return
	}
	post.ID = 0

	created, err := r.Services.Posts.CreatePost(req.Context(), post)
	if err != nil {
		r.handleError(w, req, EntityPost, "creating the post", err)
		return
	}
	r.writeJSON(w, http.StatusCreated, created)
}

// GetAllPosts returns every post, newest first.
func (r *Route) GetAllPosts(w http.ResponseWriter, req *http.Request) {
	posts, err := r.Services.Posts.GetAllPosts(req.Context())
	if err != nil {
		r.handleError(w, req, EntityPost, "retrieving posts", err)
		return
	}
	r.writeJSON(w, http.StatusOK, nonNil(posts))
}

func (r *Route) GetPost(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityPost)
	if !ok {
		return
	}
	post, err := r.Services.Posts.GetPostByID(req.Context(), id)
	if err != nil {
		r.handleError(w, req, EntityPost, "retrieving the post", err)
		return
	}
	r.writeJSON(w, http.StatusOK, post)
}

func (r *Route) DeletePost(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityPost)
	if !ok {
		return
	}
	if err := r.Services.Posts.DeletePost(req.Context(), id); err != nil {
		r.handleError(w, req, EntityPost, "deleting the post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *Route) AddReview(w http.ResponseWriter, req *http.Request) {
	review := &models.Review{}
	if !r.decodeJSON(w, req, review) {
		return
	}
	review.ID = 0

	created, err := r.Services.Reviews.AddReview(req.Context(), review)
	if err != nil {
		r.handleError(w, req, EntityReview, "creating the review", err)
		return
	}
	r.writeJSON(w, http.StatusCreated, created)
}

func (r *Route) GetAllReviews(w http.ResponseWriter, req *http.Request) {
	reviews, err := r.Services.Reviews.GetAllReviews(req.Context())
	if err != nil {
		r.handleError(w, req, EntityReview, "retrieving reviews", err)
		return
	}
	r.writeJSON(w, http.StatusOK, nonNil(reviews))
}

func (r *Route) GetReview(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityReview)
	if !ok {
		return
	}
	review, err := r.Services.Reviews.GetReviewByID(req.Context(), id)
	if err != nil {
		r.handleError(w, req, EntityReview, "retrieving the review", err)
		return
	}
	r.writeJSON(w, http.StatusOK, review)
}

func (r *Route) UpdateReview(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityReview)
	if !ok {
		return
	}
	review := &models.Review{}
	if !r.decodeJSON(w, req, review) {
		return
	}
	review.ID = id

	updated, err := r.Services.Reviews.UpdateReview(req.Context(), review)
	if err != nil {
		r.handleError(w, req, EntityReview, "updating the review", err)
		return
	}
	r.writeJSON(w, http.StatusOK, updated)
}

func (r *Route) DeleteReview(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityReview)
	if !ok {
		return
	}
	if err := r.Services.Reviews.DeleteReview(req.Context(), id); err != nil {
		r.handleError(w, req, EntityReview, "deleting the review", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// nonNil makes empty listings encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
