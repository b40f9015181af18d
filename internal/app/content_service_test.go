package app

import (
	"context"
	"testing"

	"company_site_backend/internal/domain/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContentRepo struct {
	content.Repository
	created *content.Message
}

func (r *stubContentRepo) CreateMessage(ctx context.Context, m *content.Message) error {
	m.ID = 1
	r.created = m
	return nil
}

func TestSubmitMessage_NormalizesAndStores(t *testing.T) {
	repo := &stubContentRepo{}
	svc := NewContentService(repo, testLogger())

	m, err := svc.SubmitMessage(context.Background(), MessageInput{
		FullName: "  Sara Tesfaye ",
		Email:    " Sara@Example.COM ",
		Content:  " Hello there ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Sara Tesfaye", m.FullName)
	assert.Equal(t, "sara@example.com", m.Email)
	assert.Equal(t, "Hello there", m.Content)
	assert.False(t, m.IsRead)
	require.NotNil(t, repo.created)
}

func TestSubmitMessage_RequiredFields(t *testing.T) {
	svc := NewContentService(&stubContentRepo{}, testLogger())

	tests := []MessageInput{
		{Email: "a@b.c", Content: "hi"},
		{FullName: "A", Content: "hi"},
		{FullName: "A", Email: "a@b.c"},
		{FullName: "  ", Email: "a@b.c", Content: "hi"},
	}

	for _, input := range tests {
		_, err := svc.SubmitMessage(context.Background(), input)
		assert.Error(t, err)
	}
}
