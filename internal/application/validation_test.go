package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusboard/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		wantMsg   string
	}{
		{name: "valid value", fieldName: "name", value: "Work"},
		{name: "empty string", fieldName: "name", value: "", wantErr: true, wantMsg: "name is required"},
		{name: "whitespace only", fieldName: "title", value: "   ", wantErr: true, wantMsg: "title is required"},
		{name: "formatted field", fieldName: "tabID", value: "", wantErr: true, wantMsg: "tab ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr), "expected ValidationError, got %T", err)
			assert.Equal(t, tt.fieldName, valErr.Field)
			assert.Equal(t, tt.wantMsg, valErr.Message)
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("noteID", 1))

	err := ValidateID("noteID", 0)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Message, "note ID must be positive")

	assert.Error(t, ValidateID("tabID", -3))
}

func TestValidateChildParent(t *testing.T) {
	tests := []struct {
		name    string
		parent  domain.Note
		wantErr bool
	}{
		{"categorical top-level", domain.Note{ID: 1, Type: domain.NoteTypeCategorical}, false},
		{"basic", domain.Note{ID: 1, Type: domain.NoteTypeBasic}, true},
		{"categorical child", domain.Note{ID: 2, Type: domain.NoteTypeCategorical, ParentID: domain.Ptr[int64](1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChildParent(tt.parent)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrNotCategorical)
		})
	}
}

func TestReorderError(t *testing.T) {
	cause := errors.New("disk full")
	err := &ReorderError{Scope: domain.TabScope(), Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "reorder tabs: disk full", err.Error())
}
