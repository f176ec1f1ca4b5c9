package pagesift_test

import (
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagesift.Errorf(pagesift.ENOTFOUND, "task %q not found", "test")

	assert.Equal(t, pagesift.ENOTFOUND, pagesift.ErrorCode(err))
	assert.Equal(t, "task \"test\" not found", pagesift.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagesift.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagesift.ErrorMessage(nil))
}

func TestRecord_Usable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record pagesift.Record
		want   bool
	}{
		{"title alone", pagesift.Record{"title": "Widget"}, true},
		{"two fields without title", pagesift.Record{"price": "9.99", "image": "a.jpg"}, true},
		{"one field without title", pagesift.Record{"price": "9.99"}, false},
		{"empty title does not count", pagesift.Record{"title": "", "price": "9.99"}, true},
		{"empty record", pagesift.Record{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.record.Usable())
		})
	}
}

func TestTask_Validate(t *testing.T) {
	t.Parallel()

	t.Run("missing start URL", func(t *testing.T) {
		t.Parallel()
		task := &pagesift.Task{MaxPages: 1}
		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(task.Validate()))
	})

	t.Run("page budget below one", func(t *testing.T) {
		t.Parallel()
		task := &pagesift.Task{StartURL: "https://example.com"}
		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(task.Validate()))
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		task := &pagesift.Task{StartURL: "https://example.com", MaxPages: 3}
		assert.NoError(t, task.Validate())
	})
}
