package cats

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"cat-adoption/internal/domain/adoption"
	"cat-adoption/internal/ports/images"
)

// Scorer calcula la chance de adopción (porcentaje) para un input crudo.
type Scorer interface {
	EncodeAndScore(in adoption.RawCatInput) (float64, error)
}

type Service struct {
	repo   Repository
	images images.Store
	scorer Scorer
	now    func() time.Time
}

func NewService(repo Repository, imgs images.Store, scorer Scorer) *Service {
	return &Service{
		repo:   repo,
		images: imgs,
		scorer: scorer,
		now:    time.Now,
	}
}

// Add valida y puntúa antes de tocar el storage; si el insert falla,
// borra los archivos que alcanzó a escribir.
func (s *Service) Add(ctx context.Context, in AddInput) (Cat, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Cat{}, &adoption.ValidationError{Field: "name", Reason: "required"}
	}

	age, err := adoption.ParseAgeDays(in.Features.AgeDays)
	if err != nil {
		return Cat{}, err
	}

	chance, err := s.scorer.EncodeAndScore(in.Features)
	if err != nil {
		return Cat{}, err
	}

	status := Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusAvailable
	}

	f := in.Features
	c := Cat{
		Name:            name,
		AgeDays:         age,
		Gender:          strings.TrimSpace(f.Gender),
		Sterilized:      strings.TrimSpace(f.Sterilized),
		PrimaryBreed:    strings.TrimSpace(f.PrimaryBreed),
		PrimaryColor:    strings.TrimSpace(f.PrimaryColor),
		IntakeType:      strings.TrimSpace(f.IntakeType),
		IntakeCondition: strings.TrimSpace(f.IntakeCondition),
		Status:          status,
		AdoptionChance:  chance,
		Images:          make([]string, 0, len(in.Images)),
		CreatedAt:       s.now(),
	}

	for _, up := range in.Images {
		if up.Content == nil || strings.TrimSpace(up.Filename) == "" {
			continue
		}
		stored, err := s.images.Save(ctx, up.Filename, up.Content)
		if err != nil {
			s.removeImages(c.Images)
			return Cat{}, &StoreError{Op: "save image", Err: err}
		}
		c.Images = append(c.Images, stored)
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		s.removeImages(c.Images)
		return Cat{}, &StoreError{Op: "insert cat", Err: err}
	}
	c.ID = id
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Cat, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list cats", Err: err}
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Cat, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Cat{}, ErrNotFound
		}
		return Cat{}, &StoreError{Op: "get cat", Err: err}
	}
	return c, nil
}

// Delete borra el registro y después los archivos. Archivos ya ausentes no son error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	files, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return &StoreError{Op: "delete cat", Err: err}
	}

	var errs []error
	for _, name := range files {
		if err := s.images.Remove(name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &StoreError{Op: "remove images", Err: errors.Join(errs...)}
	}
	return nil
}

// OpenImage abre un archivo guardado para servirlo.
func (s *Service) OpenImage(name string) (io.ReadSeekCloser, error) {
	return s.images.Open(name)
}

// best effort: el error original es el que importa al caller
func (s *Service) removeImages(names []string) {
	for _, n := range names {
		_ = s.images.Remove(n)
	}
}
