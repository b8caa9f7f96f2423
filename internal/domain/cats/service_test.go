package cats

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"cat-adoption/internal/domain/adoption"
	"cat-adoption/internal/ports/images"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	nextID    int64
	byID      map[int64]Cat
	createErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Cat{}}
}

func (r *testRepo) Create(ctx context.Context, c Cat) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.nextID++
	c.ID = r.nextID
	r.byID[c.ID] = c
	return c.ID, nil
}

func (r *testRepo) List(ctx context.Context) ([]Cat, error) {
	out := make([]Cat, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Cat, error) {
	c, ok := r.byID[id]
	if !ok {
		return Cat{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) ([]string, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.byID, id)
	return c.Images, nil
}

type testImages struct {
	files   map[string]string
	n       int
	saveErr error
}

func newTestImages() *testImages {
	return &testImages{files: map[string]string{}}
}

func (s *testImages) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.n++
	name := strings.Repeat("x", s.n) + "_" + originalName
	s.files[name] = string(b)
	return name, nil
}

func (s *testImages) Open(name string) (io.ReadSeekCloser, error) {
	v, ok := s.files[name]
	if !ok {
		return nil, images.ErrNotFound
	}
	return nopSeekCloser{strings.NewReader(v)}, nil
}

func (s *testImages) Remove(name string) error {
	delete(s.files, name)
	return nil
}

type nopSeekCloser struct{ *strings.Reader }

func (nopSeekCloser) Close() error { return nil }

type stubScorer struct {
	chance float64
	calls  int
}

func (s *stubScorer) EncodeAndScore(in adoption.RawCatInput) (float64, error) {
	s.calls++
	if _, err := adoption.ParseAgeDays(in.AgeDays); err != nil {
		return 0, err
	}
	return s.chance, nil
}

func newTestService() (*Service, *testRepo, *testImages, *stubScorer) {
	repo := newTestRepo()
	imgs := newTestImages()
	sc := &stubScorer{chance: 73.5}
	svc := NewService(repo, imgs, sc)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, repo, imgs, sc
}

func validInput() AddInput {
	return AddInput{
		Name: "  Milo ",
		Features: adoption.RawCatInput{
			AgeDays:         "365",
			Gender:          "Male",
			Sterilized:      "Yes",
			PrimaryBreed:    "Domestic Shorthair",
			PrimaryColor:    "Black",
			IntakeType:      "Stray",
			IntakeCondition: "Normal",
		},
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_AddStoresCatAndImages(t *testing.T) {
	svc, repo, imgs, _ := newTestService()

	in := validInput()
	in.Images = []Upload{
		{Filename: "a.jpg", Content: strings.NewReader("A")},
		{Filename: "", Content: strings.NewReader("ignored")},
		{Filename: "b.png", Content: nil},
		{Filename: "c.gif", Content: strings.NewReader("C")},
	}

	c, err := svc.Add(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "Milo", c.Name)
	assert.Equal(t, 365, c.AgeDays)
	assert.Equal(t, StatusAvailable, c.Status)
	assert.Equal(t, 73.5, c.AdoptionChance)
	assert.Len(t, c.Images, 2)
	assert.Len(t, imgs.files, 2)
	assert.Equal(t, 2026, c.CreatedAt.Year())

	stored, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Images, stored.Images)
}

func TestService_AddKeepsExplicitStatus(t *testing.T) {
	svc, _, _, _ := newTestService()

	in := validInput()
	in.Status = "adopted"
	c, err := svc.Add(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, StatusAdopted, c.Status)
}

func TestService_AddValidationWritesNothing(t *testing.T) {
	cases := map[string]func(*AddInput){
		"missing name": func(in *AddInput) { in.Name = "  " },
		"bad age":      func(in *AddInput) { in.Features.AgeDays = "abc" },
		"negative age": func(in *AddInput) { in.Features.AgeDays = "-3" },
		"empty age":    func(in *AddInput) { in.Features.AgeDays = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, imgs, _ := newTestService()
			in := validInput()
			in.Images = []Upload{{Filename: "a.jpg", Content: strings.NewReader("A")}}
			mutate(&in)

			_, err := svc.Add(context.Background(), in)
			var verr *adoption.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Empty(t, repo.byID)
			assert.Empty(t, imgs.files)
		})
	}
}

func TestService_AddCleansImagesWhenInsertFails(t *testing.T) {
	svc, repo, imgs, _ := newTestService()
	repo.createErr = errors.New("db down")

	in := validInput()
	in.Images = []Upload{{Filename: "a.jpg", Content: strings.NewReader("A")}}

	_, err := svc.Add(context.Background(), in)
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "insert cat", serr.Op)
	assert.Empty(t, imgs.files)
}

func TestService_AddImageSaveFailure(t *testing.T) {
	svc, repo, imgs, _ := newTestService()
	imgs.saveErr = errors.New("disk full")

	in := validInput()
	in.Images = []Upload{{Filename: "a.jpg", Content: strings.NewReader("A")}}

	_, err := svc.Add(context.Background(), in)
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "save image", serr.Op)
	assert.Empty(t, repo.byID)
}

func TestService_DeleteRemovesFiles(t *testing.T) {
	svc, _, imgs, _ := newTestService()

	in := validInput()
	in.Images = []Upload{{Filename: "a.jpg", Content: strings.NewReader("A")}}
	c, err := svc.Add(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, imgs.files, 1)

	require.NoError(t, svc.Delete(context.Background(), c.ID))
	assert.Empty(t, imgs.files)

	_, err = svc.GetByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteUnknown(t *testing.T) {
	svc, _, _, _ := newTestService()
	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListOrderedByID(t *testing.T) {
	svc, _, _, _ := newTestService()
	for _, n := range []string{"Milo", "Luna", "Tom"} {
		in := validInput()
		in.Name = n
		_, err := svc.Add(context.Background(), in)
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Milo", list[0].Name)
	assert.Equal(t, "Tom", list[2].Name)
}

func TestService_OpenImage(t *testing.T) {
	svc, _, _, _ := newTestService()

	in := validInput()
	in.Images = []Upload{{Filename: "a.jpg", Content: strings.NewReader("A")}}
	c, err := svc.Add(context.Background(), in)
	require.NoError(t, err)

	f, err := svc.OpenImage(c.Images[0])
	require.NoError(t, err)
	b, _ := io.ReadAll(f)
	assert.Equal(t, "A", string(b))

	_, err = svc.OpenImage("nope.jpg")
	assert.ErrorIs(t, err, images.ErrNotFound)
}
