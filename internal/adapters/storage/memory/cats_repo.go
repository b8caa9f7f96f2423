package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"cat-adoption/internal/domain/cats"
)

type catRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]cats.Cat
}

// NewCatRepo es el repo sin DB (dev y tests). Los ids arrancan en 1.
func NewCatRepo() cats.Repository {
	return &catRepo{
		byID: make(map[int64]cats.Cat),
	}
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.Name) == "" {
		return 0, errors.New("cat name required")
	}
	r.nextID++
	c.ID = r.nextID
	c.Images = append([]string(nil), c.Images...)
	r.byID[c.ID] = c
	return c.ID, nil
}

func (r *catRepo) List(ctx context.Context) ([]cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, clone(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *catRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return clone(c), nil
}

func (r *catRepo) Delete(ctx context.Context, id int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, cats.ErrNotFound
	}
	delete(r.byID, id)
	return c.Images, nil
}

func clone(c cats.Cat) cats.Cat {
	c.Images = append([]string{}, c.Images...)
	return c
}
