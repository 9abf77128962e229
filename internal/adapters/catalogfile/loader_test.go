package catalogfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

func TestLoadFile_Valid(t *testing.T) {
	// Act
	c, err := catalogfile.LoadFile("testdata/valid.yaml")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	house, err := c.GetDefinition("house_small")
	require.NoError(t, err)
	assert.Equal(t, catalog.CategoryHousing, house.Category)
	assert.Equal(t, 1, house.MaxTier())
	assert.Equal(t, 0.5, house.Cost.Items[0].ReturnPercentage)
	assert.Equal(t, catalog.Currency("gold"), house.Cost.Currencies[0].Kind)
	assert.True(t, house.Demolition.Demolishable)

	well, err := c.GetDefinition("well")
	require.NoError(t, err)
	assert.False(t, well.Demolition.Demolishable)
	assert.Equal(t, 1.0, well.Footprint.Height)
	assert.True(t, well.Functionality.ProducesItems())
}

func TestLoadFile_ShippedCatalog(t *testing.T) {
	c, err := catalogfile.LoadFile("../../../configs/buildings.yaml")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, c.Len(), 8)
	for _, category := range catalog.AllCategories() {
		assert.NotEmpty(t, c.ByCategory(category), "no building in %s", category)
	}
}

func TestLoadFile_Rejections(t *testing.T) {
	tests := []struct {
		file    string
		wantErr string
	}{
		{file: "testdata/bad_schema.yaml", wantErr: "does not match schema"},
		{file: "testdata/cheaper_tier.yaml", wantErr: "tier 2 is cheaper than tier 1"},
		{file: "testdata/duplicate_ids.yaml", wantErr: "invalid catalog"},
		{file: "testdata/missing.yaml", wantErr: "failed to read catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := catalogfile.LoadFile(tt.file)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := catalogfile.Parse([]byte("version: 1\nbuildings: []\ncolour: red\n"))

	assert.ErrorContains(t, err, "does not match schema")
}
