package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/validator"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"uppercase and spaces", "  Pensamento   Computacional  ", "pensamento-computacional"},
		{"punctuation stripped", "O que é? Algoritmos!", "o-que-algoritmos"},
		{"underscores become hyphens", "snake_case_title", "snake-case-title"},
		{"collapses hyphens", "a -- b", "a-b"},
		{"leading and trailing separators", "-- title --", "title"},
		{"empty", "???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	slug := Slugify("Introdução aos Algoritmos")
	assert.Equal(t, slug, Slugify(slug))
}

func newPostService(t *testing.T) (PostService, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	return NewPostService(repo, testLogger(), validator.New()), repo
}

func TestCreatePostDerivesSlug(t *testing.T) {
	service, _ := newPostService(t)

	post, err := service.Create(context.Background(), &validator.PostCreateRequest{
		Title:   "Como Ensinar Algoritmos",
		Content: "conteúdo",
		Excerpt: "resumo",
	})
	require.NoError(t, err)
	assert.Equal(t, "como-ensinar-algoritmos", post.Slug)
	assert.Equal(t, models.DefaultPostAuthor, post.Author)
	assert.False(t, post.PublishedAt.IsZero())
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	service, _ := newPostService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, &validator.PostCreateRequest{
		Title:   "Como Ensinar Algoritmos",
		Content: "conteúdo",
		Excerpt: "resumo",
	})
	require.NoError(t, err)

	// Different punctuation, same slug.
	_, err = service.Create(ctx, &validator.PostCreateRequest{
		Title:   "Como ensinar algoritmos?",
		Content: "outro conteúdo",
		Excerpt: "outro resumo",
	})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestUpdatePostRenamesSlug(t *testing.T) {
	service, _ := newPostService(t)
	ctx := context.Background()

	post, err := service.Create(ctx, &validator.PostCreateRequest{
		Title:   "Título Antigo",
		Content: "conteúdo",
		Excerpt: "resumo",
	})
	require.NoError(t, err)

	newTitle := "Título Novo"
	updated, err := service.Update(ctx, post.Slug, &validator.PostUpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "ttulo-novo", updated.Slug)

	_, err = service.GetBySlug(ctx, "ttulo-antigo")
	assert.ErrorIs(t, err, ErrPostNotFound)

	found, err := service.GetBySlug(ctx, updated.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Título Novo", found.Title)
}

func TestDeletePost(t *testing.T) {
	service, _ := newPostService(t)
	ctx := context.Background()

	post, err := service.Create(ctx, &validator.PostCreateRequest{
		Title:   "Para Apagar",
		Content: "conteúdo",
		Excerpt: "resumo",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, post.Slug))
	assert.ErrorIs(t, service.Delete(ctx, post.Slug), ErrPostNotFound)
}
