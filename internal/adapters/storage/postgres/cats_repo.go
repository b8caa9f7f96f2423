package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cat-adoption/internal/domain/cats"

	"github.com/jmoiron/sqlx"
)

type catRow struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	AgeDays         int       `db:"age_days"`
	Gender          string    `db:"gender"`
	Sterilized      string    `db:"sterilized"`
	PrimaryBreed    string    `db:"primary_breed"`
	PrimaryColor    string    `db:"primary_color"`
	IntakeType      string    `db:"intake_type"`
	IntakeCondition string    `db:"intake_condition"`
	Status          string    `db:"status"`
	AdoptionChance  float64   `db:"adoption_chance"`
	CreatedAt       time.Time `db:"created_at"`
}

type imageRow struct {
	CatID     int64  `db:"cat_id"`
	ImagePath string `db:"image_path"`
}

const catColumns = `id, name, age_days, gender, sterilized, primary_breed, primary_color,
	intake_type, intake_condition, status, adoption_chance, created_at`

type CatsRepo struct {
	db *sqlx.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: sqlx.NewDb(db, "pgx")}
}

var _ cats.Repository = (*CatsRepo)(nil)

// Create inserta el gato y sus imágenes en una sola transacción.
func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO cats (
			name, age_days, gender, sterilized,
			primary_breed, primary_color, intake_type, intake_condition,
			status, adoption_chance, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		c.Name,
		c.AgeDays,
		c.Gender,
		c.Sterilized,
		c.PrimaryBreed,
		c.PrimaryColor,
		c.IntakeType,
		c.IntakeCondition,
		string(c.Status),
		c.AdoptionChance,
		c.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, img := range c.Images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cat_images (cat_id, image_path) VALUES ($1, $2)`, id, img); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CatsRepo) List(ctx context.Context) ([]cats.Cat, error) {
	var rows []catRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+catColumns+` FROM cats ORDER BY id`); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []cats.Cat{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	byCat, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]cats.Cat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(byCat[row.ID]))
	}
	return out, nil
}

func (r *CatsRepo) GetByID(ctx context.Context, id int64) (cats.Cat, error) {
	var row catRow
	err := r.db.GetContext(ctx, &row, `SELECT `+catColumns+` FROM cats WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, err
	}

	byCat, err := r.imagesFor(ctx, []int64{id})
	if err != nil {
		return cats.Cat{}, err
	}
	return row.toDomain(byCat[id]), nil
}

// Delete devuelve los archivos que tenía el gato; cat_images cae por cascade.
func (r *CatsRepo) Delete(ctx context.Context, id int64) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	files := []string{}
	if err := tx.SelectContext(ctx, &files,
		`SELECT image_path FROM cat_images WHERE cat_id = $1 ORDER BY id`, id); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, cats.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *CatsRepo) imagesFor(ctx context.Context, ids []int64) (map[int64][]string, error) {
	q, args, err := sqlx.In(`SELECT cat_id, image_path FROM cat_images WHERE cat_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}

	var rows []imageRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}

	out := make(map[int64][]string, len(ids))
	for _, row := range rows {
		out[row.CatID] = append(out[row.CatID], row.ImagePath)
	}
	return out, nil
}

func (row catRow) toDomain(imgs []string) cats.Cat {
	if imgs == nil {
		imgs = []string{}
	}
	return cats.Cat{
		ID:              row.ID,
		Name:            row.Name,
		AgeDays:         row.AgeDays,
		Gender:          row.Gender,
		Sterilized:      row.Sterilized,
		PrimaryBreed:    row.PrimaryBreed,
		PrimaryColor:    row.PrimaryColor,
		IntakeType:      row.IntakeType,
		IntakeCondition: row.IntakeCondition,
		Status:          cats.Status(row.Status),
		AdoptionChance:  row.AdoptionChance,
		Images:          imgs,
		CreatedAt:       row.CreatedAt,
	}
}
