package cats

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"cat-adoption/internal/domain/adoption"
	"cat-adoption/internal/platform/logger"
	"cat-adoption/internal/ports/images"

	"github.com/go-chi/chi/v5"
)

// Observer recibe eventos del handler (métricas). Puede ser nil.
type Observer interface {
	CatAdded(chance float64)
	CatDeleted()
}

type HandlerDeps struct {
	Log            logger.Logger
	Observer       Observer
	MaxUploadBytes int64
}

func RegisterRoutes(r chi.Router, svc *Service, deps HandlerDeps) {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 32 << 20
	}
	log := deps.Log.With(map[string]any{"module": "cats"})

	r.Route("/api/cats", func(cr chi.Router) {
		cr.Get("/", listCatsHandler(svc, log))
		cr.Post("/add", addCatHandler(svc, log, deps.Observer, deps.MaxUploadBytes))
		cr.Get("/{catID}", getCatHandler(svc, log))
		cr.Delete("/{catID}/delete", deleteCatHandler(svc, log, deps.Observer))
	})

	r.Get("/static/uploads/{filename}", imageHandler(svc))
}

const picturesField = "pictures"

type catResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	AgeDays         int       `json:"age_days"`
	Gender          string    `json:"gender"`
	Sterilized      string    `json:"sterilized"`
	PrimaryBreed    string    `json:"primary_breed"`
	PrimaryColor    string    `json:"primary_color"`
	IntakeType      string    `json:"intake_type"`
	IntakeCondition string    `json:"intake_condition"`
	Status          Status    `json:"status"`
	AdoptionChance  float64   `json:"adoption_chance"`
	Images          []string  `json:"images"`
	CreatedAt       time.Time `json:"created_at"`
}

type addCatResponse struct {
	Message        string  `json:"message"`
	ID             int64   `json:"id"`
	AdoptionChance float64 `json:"adoption_chance"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listCatsHandler godoc
// @Summary      List cats
// @Description  All cats with their image filenames, ordered by id.
// @Tags         cats
// @Produce      json
// @Success      200  {array}   catResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/cats [get]
func listCatsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, log, "list cats", err)
			return
		}

		out := make([]catResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCatResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getCatHandler godoc
// @Summary  Get a cat
// @Tags     cats
// @Produce  json
// @Param    catID  path      int  true  "Cat ID"
// @Success  200    {object}  catResponse
// @Failure  400    {object}  errorResponse
// @Failure  404    {object}  errorResponse
// @Router   /api/cats/{catID} [get]
func getCatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := catIDParam(w, r)
		if !ok {
			return
		}
		c, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, log, "get cat", err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

// addCatHandler godoc
// @Summary      Add a cat
// @Description  Stores the cat, its pictures and the predicted adoption chance.
// @Tags         cats
// @Accept       multipart/form-data
// @Produce      json
// @Param        name              formData  string  true   "Name"
// @Param        age_days          formData  int     true   "Age in days"
// @Param        gender            formData  string  false  "Male, Female, Unknown"
// @Param        sterilized        formData  string  false  "Yes, No, Unknown"
// @Param        primary_breed     formData  string  false  "Primary breed"
// @Param        primary_color     formData  string  false  "Primary color"
// @Param        intake_type       formData  string  false  "Intake type"
// @Param        intake_condition  formData  string  false  "Intake condition"
// @Param        status            formData  string  false  "available, adopted"
// @Param        pictures          formData  file    false  "Pictures"
// @Success      201  {object}  addCatResponse
// @Failure      400  {object}  errorResponse
// @Failure      413  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/cats/add [post]
func addCatHandler(svc *Service, log logger.Logger, obs Observer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooBig *http.MaxBytesError
			switch {
			case errors.As(err, &tooBig):
				writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
				return
			case errors.Is(err, http.ErrNotMultipart):
				// form urlencoded sin fotos
				if err := r.ParseForm(); err != nil {
					writeError(w, http.StatusBadRequest, "invalid form")
					return
				}
			default:
				writeError(w, http.StatusBadRequest, "invalid form")
				return
			}
		}
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}

		uploads, closeAll, err := formUploads(r.MultipartForm)
		defer closeAll()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid picture upload")
			return
		}

		c, err := svc.Add(r.Context(), AddInput{
			Name:   r.FormValue("name"),
			Status: r.FormValue("status"),
			Features: adoption.RawCatInput{
				AgeDays:         r.FormValue(adoption.FieldAgeDays),
				Gender:          r.FormValue(adoption.FieldGender),
				Sterilized:      r.FormValue(adoption.FieldSterilized),
				PrimaryBreed:    r.FormValue(adoption.FieldPrimaryBreed),
				PrimaryColor:    r.FormValue(adoption.FieldPrimaryColor),
				IntakeType:      r.FormValue(adoption.FieldIntakeType),
				IntakeCondition: r.FormValue(adoption.FieldIntakeCondition),
			},
			Images: uploads,
		})
		if err != nil {
			writeServiceError(w, log, "add cat", err)
			return
		}

		if obs != nil {
			obs.CatAdded(c.AdoptionChance)
		}
		log.Info("cat added", map[string]any{
			"cat_id":          c.ID,
			"adoption_chance": c.AdoptionChance,
			"images":          len(c.Images),
		})

		writeJSON(w, http.StatusCreated, addCatResponse{
			Message:        "Cat added successfully",
			ID:             c.ID,
			AdoptionChance: c.AdoptionChance,
		})
	}
}

// deleteCatHandler godoc
// @Summary  Delete a cat
// @Description  Deletes the cat, its image rows and the stored image files.
// @Tags     cats
// @Produce  json
// @Param    catID  path      int  true  "Cat ID"
// @Success  200    {object}  messageResponse
// @Failure  400    {object}  errorResponse
// @Failure  404    {object}  errorResponse
// @Failure  500    {object}  errorResponse
// @Router   /api/cats/{catID}/delete [delete]
func deleteCatHandler(svc *Service, log logger.Logger, obs Observer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := catIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, log, "delete cat", err)
			return
		}

		if obs != nil {
			obs.CatDeleted()
		}
		log.Info("cat deleted", map[string]any{"cat_id": id})
		writeJSON(w, http.StatusOK, messageResponse{Message: "Cat deleted successfully"})
	}
}

// imageHandler godoc
// @Summary  Serve an uploaded picture
// @Tags     images
// @Param    filename  path  string  true  "Stored filename"
// @Success  200
// @Failure  404  {object}  errorResponse
// @Router   /static/uploads/{filename} [get]
func imageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		f, err := svc.OpenImage(name)
		if err != nil {
			if errors.Is(err, images.ErrNotFound) {
				writeError(w, http.StatusNotFound, "image not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		defer f.Close()

		http.ServeContent(w, r, name, time.Time{}, f)
	}
}

// formUploads abre cada archivo de "pictures". closeAll siempre es seguro de llamar.
func formUploads(form *multipart.Form) ([]Upload, func(), error) {
	var opened []io.Closer
	closeAll := func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}
	if form == nil {
		return nil, closeAll, nil
	}

	out := make([]Upload, 0, len(form.File[picturesField]))
	for _, fh := range form.File[picturesField] {
		if fh == nil || fh.Filename == "" {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		opened = append(opened, f)
		out = append(out, Upload{Filename: fh.Filename, Content: f})
	}
	return out, closeAll, nil
}

func catIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "catID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "cat id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeServiceError traduce la taxonomía de errores a status HTTP.
func writeServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	var verr *adoption.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "cat not found")
	default:
		log.Error(op+" failed", map[string]any{"error": err})
		writeError(w, http.StatusInternalServerError, "An error occurred while processing the request.")
	}
}

func toCatResponse(c Cat) catResponse {
	imgs := c.Images
	if imgs == nil {
		imgs = []string{}
	}
	return catResponse{
		ID:              c.ID,
		Name:            c.Name,
		AgeDays:         c.AgeDays,
		Gender:          c.Gender,
		Sterilized:      c.Sterilized,
		PrimaryBreed:    c.PrimaryBreed,
		PrimaryColor:    c.PrimaryColor,
		IntakeType:      c.IntakeType,
		IntakeCondition: c.IntakeCondition,
		Status:          c.Status,
		AdoptionChance:  c.AdoptionChance,
		Images:          imgs,
		CreatedAt:       c.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
