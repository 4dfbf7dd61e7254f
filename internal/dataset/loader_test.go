package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sift-money/sift/internal/common"
)

func TestRead(t *testing.T) {
	t.Run("parses description and category columns", func(t *testing.T) {
		csv := "description,category\nstarbucks coffee,Dining\nshell gas station,Transport\n"

		records, err := Read(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "starbucks coffee", records[0].Description)
		assert.Equal(t, "Dining", records[0].Category)
		assert.Equal(t, "Transport", records[1].Category)
	})

	t.Run("header matching is case-insensitive", func(t *testing.T) {
		csv := "Description,CATEGORY\nnetflix,Entertainment\n"

		records, err := Read(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "netflix", records[0].Description)
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		csv := "date,description,category,notes\n2024-01-02,uber trip,Transport,weekend\n"

		records, err := Read(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "uber trip", records[0].Description)
		assert.Equal(t, "Transport", records[0].Category)
	})

	t.Run("optional amount column is parsed", func(t *testing.T) {
		csv := "description,category,amount\ncoffee,Dining,4.75\ngas,Transport,\n"

		records, err := Read(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.True(t, records[0].HasAmount)
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("4.75")))
		assert.False(t, records[1].HasAmount)
	})

	t.Run("ragged rows become missing fields", func(t *testing.T) {
		csv := "description,category\nonly a description\n"

		records, err := Read(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "", records[0].Category)
	})

	t.Run("missing description column fails fast", func(t *testing.T) {
		csv := "name,category\ncoffee,Dining\n"

		_, err := Read(strings.NewReader(csv))
		require.Error(t, err)
		assert.True(t, common.IsDataError(err))
		assert.Contains(t, err.Error(), "description")
	})

	t.Run("missing category column fails fast", func(t *testing.T) {
		csv := "description,label\ncoffee,Dining\n"

		_, err := Read(strings.NewReader(csv))
		require.Error(t, err)
		assert.True(t, common.IsDataError(err))
		assert.Contains(t, err.Error(), "category")
	})

	t.Run("empty file is a data error", func(t *testing.T) {
		_, err := Read(strings.NewReader(""))
		require.Error(t, err)
		assert.True(t, common.IsDataError(err))
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrInputNotFound))
	})

	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "transactions.csv")
		content := "description,category\nstarbucks,Dining\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		records, err := Load(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "starbucks", records[0].Description)
	})
}

func TestLoadDescriptions(t *testing.T) {
	t.Run("reads descriptions only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.csv")
		content := "description\nstarbucks downtown\n\nshell station\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		descs, err := LoadDescriptions(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"starbucks downtown", "shell station"}, descs)
	})

	t.Run("missing column", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.csv")
		require.NoError(t, os.WriteFile(path, []byte("name\nfoo\n"), 0o600))

		_, err := LoadDescriptions(path)
		require.Error(t, err)
		assert.True(t, common.IsDataError(err))
	})
}
