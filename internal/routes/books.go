package routes

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-viper/mapstructure/v2"

	"github.com/haguru/elibrary/internal/covers"
	"github.com/haguru/elibrary/internal/models"
	"github.com/haguru/elibrary/internal/models/dto"
	"github.com/haguru/elibrary/internal/validation"
)

// maxFormBytes bounds an add-book request: one cover plus the text fields.
const maxFormBytes = covers.MaxCoverBytes + 1<<20

// AddBook handles multipart book creation: the text fields describe the book and one file
// part carries its cover.
func (r *Route) AddBook(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxFormBytes)
	if err := req.ParseMultipartForm(maxFormBytes); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		r.errorResponse(w, status, MsgInvalidMultipartForm, err.Error())
		return
	}
	defer func() { _ = req.MultipartForm.RemoveAll() }()

	book, err := decodeBookForm(req.MultipartForm.Value)
	if err != nil {
		r.errorResponse(w, http.StatusBadRequest, MsgInvalidRequestBody, err.Error())
		return
	}

	header := coverFile(req.MultipartForm)
	if header == nil {
		r.Logger.Warn("no image file provided", "title", book.Title)
		r.errorResponse(w, http.StatusBadRequest, MsgImageRequired, "")
		return
	}

	// Reject invalid fields before the cover is written anywhere.
	book.ImagePath = header.Filename
	if err := validation.BookSchema.Check(book); err != nil {
		r.handleError(w, req, EntityBook, "creating the book", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		r.handleError(w, req, EntityBook, "creating the book", err)
		return
	}
	defer file.Close()

	path, err := r.Services.Books.SaveCover(req.Context(), header.Filename, file)
	if err != nil {
		r.handleError(w, req, EntityBook, "creating the book", err)
		return
	}
	book.ImagePath = path

	created, err := r.Services.Books.AddBook(req.Context(), book)
	if err != nil {
		r.handleError(w, req, EntityBook, "creating the book", err)
		return
	}
	r.Logger.Info("Book created with image", "ID", created.ID, "title", created.Title)
	r.writeJSON(w, http.StatusCreated, created)
}

// decodeBookForm maps the first value of each form field onto a book.
func decodeBookForm(values map[string][]string) (*models.Book, error) {
	fields := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}

	form := &dto.BookFormDTO{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           form,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, err
	}
	return form.ToBook(), nil
}

// coverFile returns the image part, falling back to the first file of any field.
func coverFile(form *multipart.Form) *multipart.FileHeader {
	if files := form.File[ImageFormField]; len(files) > 0 {
		return files[0]
	}
	for _, files := range form.File {
		if len(files) > 0 {
			return files[0]
		}
	}
	return nil
}

// GetAllBooks returns every book with its cover inlined.
func (r *Route) GetAllBooks(w http.ResponseWriter, req *http.Request) {
	books, err := r.Services.Books.GetAllBooks(req.Context())
	if err != nil {
		r.handleError(w, req, EntityBook, "retrieving books", err)
		return
	}

	response := make([]*dto.BookResponseDTO, 0, len(books))
	for _, book := range books {
		response = append(response, dto.NewBookResponseDTO(book, r.Services.Books.CoverDataURI(req.Context(), book)))
	}
	r.writeJSON(w, http.StatusOK, response)
}

func (r *Route) GetBook(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityBook)
	if !ok {
		return
	}

	book, err := r.Services.Books.GetBookByID(req.Context(), id)
	if err != nil {
		r.handleError(w, req, EntityBook, "retrieving the book", err)
		return
	}
	r.writeJSON(w, http.StatusOK, dto.NewBookResponseDTO(book, r.Services.Books.CoverDataURI(req.Context(), book)))
}

// UpdateBook replaces the descriptive fields of a book from a JSON body.
func (r *Route) UpdateBook(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityBook)
	if !ok {
		return
	}

	book := &models.Book{}
	if !r.decodeJSON(w, req, book) {
		return
	}
	book.ID = id

	updated, err := r.Services.Books.UpdateBook(req.Context(), book)
	if err != nil {
		r.handleError(w, req, EntityBook, "updating the book", err)
		return
	}
	r.writeJSON(w, http.StatusOK, updated)
}

func (r *Route) DeleteBook(w http.ResponseWriter, req *http.Request) {
	id, ok := r.pathID(w, req, EntityBook)
	if !ok {
		return
	}

	if err := r.Services.Books.DeleteBook(req.Context(), id); err != nil {
		r.handleError(w, req, EntityBook, "deleting the book", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
