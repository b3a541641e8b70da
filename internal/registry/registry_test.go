package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

type fakeLister struct {
	sources []domain.Source
	err     error
}

func (f *fakeLister) ListCustomSources(ctx context.Context, ownerID string, onlyEnabled bool) ([]domain.Source, error) {
	return f.sources, f.err
}

func TestSourcesFor_AllCategoriesReturnsEveryBuiltin(t *testing.T) {
	r := New(nil)

	all, err := r.SourcesFor(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, r.BuiltinCount())

	// The literal "all" spelling is the same request.
	allLiteral, err := r.SourcesFor(context.Background(), "", "all")
	require.NoError(t, err)
	assert.Equal(t, len(all), len(allLiteral))
}

func TestSourcesFor_FiltersByCategory(t *testing.T) {
	r := New(nil)

	sports, err := r.SourcesFor(context.Background(), "", "sports")
	require.NoError(t, err)
	require.NotEmpty(t, sports)
	for _, s := range sports {
		assert.Equal(t, domain.CategorySports, s.Category)
	}
}

func TestSourcesFor_MergesEnabledCustomSources(t *testing.T) {
	custom := &fakeLister{sources: []domain.Source{
		{ID: "c1", Name: "My Blog", FeedURL: "https://blog.example/feed", Category: domain.CategoryTech, OwnerID: "u1", Enabled: true},
	}}
	r := New(custom)

	tech, err := r.SourcesFor(context.Background(), "u1", "tech")
	require.NoError(t, err)

	var found bool
	for _, s := range tech {
		if s.ID == "c1" {
			found = true
		}
	}
	assert.True(t, found, "custom source merged into the set")
}

func TestSourcesFor_CustomSourceCategoryMismatchIsExcluded(t *testing.T) {
	custom := &fakeLister{sources: []domain.Source{
		{ID: "c1", Name: "My Blog", Category: domain.CategoryTech, OwnerID: "u1", Enabled: true},
	}}
	r := New(custom)

	sports, err := r.SourcesFor(context.Background(), "u1", "sports")
	require.NoError(t, err)
	for _, s := range sports {
		assert.NotEqual(t, "c1", s.ID)
	}
}

func TestSourcesFor_DegradesWhenCustomListingFails(t *testing.T) {
	custom := &fakeLister{err: errors.New("db down")}
	r := New(custom)

	all, err := r.SourcesFor(context.Background(), "u1", "")
	require.NoError(t, err, "custom failure must not fail the request")
	assert.Len(t, all, r.BuiltinCount())
}

func TestSourcesFor_AnonymousRequestsSkipCustomSources(t *testing.T) {
	custom := &fakeLister{sources: []domain.Source{
		{ID: "c1", Name: "My Blog", Category: domain.CategoryTech, OwnerID: "u1", Enabled: true},
	}}
	r := New(custom)

	all, err := r.SourcesFor(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, r.BuiltinCount())
}

func TestLoadConfig_AppendsValidSourcesAndSkipsUnknownCategories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	yaml := `sources:
  - name: "Extra Tech"
    url: "https://extra.example/feed"
    category: "tech"
  - name: "Bogus"
    url: "https://bogus.example/feed"
    category: "astrology"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	r := New(nil)
	before := r.BuiltinCount()

	require.NoError(t, r.LoadConfig(path))
	assert.Equal(t, before+1, r.BuiltinCount())
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	r := New(nil)
	assert.NoError(t, r.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestBuiltinSources_AreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range BuiltinSources {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.FeedURL)
		assert.True(t, domain.ValidCategory(s.Category), "source %s has category %q", s.Name, s.Category)
		assert.False(t, seen[s.ID], "duplicate source ID %s", s.ID)
		seen[s.ID] = true
	}
}
