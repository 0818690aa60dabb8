package schoolyear

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "franvarocli/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    SchoolYear
		wantErr bool
	}{
		{input: "2025-2026", want: SchoolYear{Start: 2025, End: 2026}},
		{input: "1999-2000", want: SchoolYear{Start: 1999, End: 2000}},
		{input: "2025/2026", wantErr: true},
		{input: "2025-2027", wantErr: true},
		{input: "2026-2025", wantErr: true},
		{input: "2025-26", wantErr: true},
		{input: "", wantErr: true},
		{input: "20a5-2026", wantErr: true},
		{input: "+025-0026", wantErr: true},
		{input: " 2025-2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidSchoolYear))
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
				assert.False(t, IsValid(tt.input))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParse_Reason(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"2025/2026", ErrMalformed},
		{"2025-26", ErrMalformed},
		{"20a5-2026", ErrNotDigits},
		{"2025-2027", ErrNotConsecutive},
		{"2026-2025", ErrNotConsecutive},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSchoolYear_Next(t *testing.T) {
	assert.Equal(t, "2026-2027", SchoolYear{Start: 2025, End: 2026}.Next().String())
}

func TestScaffold(t *testing.T) {
	dataDir := t.TempDir()

	layout, err := Scaffold(dataDir, "2025-2026")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dataDir, "raw", "franvaro", "2025-2026"), layout.RawDir)
	assert.Equal(t, filepath.Join(dataDir, "output", "2025-2026"), layout.OutputDir)

	for _, dir := range []string{layout.RawDir, layout.OutputDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		keep, err := os.ReadFile(filepath.Join(dir, ".gitkeep"))
		require.NoError(t, err)
		assert.Contains(t, string(keep), "2025-2026")
	}

	// Running twice is fine.
	_, err = Scaffold(dataDir, "2025-2026")
	assert.NoError(t, err)
}

func TestScaffold_InvalidYearCreatesNothing(t *testing.T) {
	for _, year := range []string{"2025/2026", "2025-2027"} {
		t.Run(year, func(t *testing.T) {
			dataDir := t.TempDir()

			_, err := Scaffold(dataDir, year)
			require.Error(t, err)

			entries, err := os.ReadDir(dataDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}
