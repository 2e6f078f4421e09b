package handler

import (
	"errors"
	"testing"

	"github.com/blogosphere/blog/internal/core/domain"
)

func TestValidator_ReportsBindingName(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&commentIDParam{PostID: 3, CommentID: 0})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "comment_id" {
		t.Errorf("expected field comment_id, got %q", ve.Field)
	}
	if ve.Message != "comment_id must be greater than 0." {
		t.Errorf("unexpected message %q", ve.Message)
	}
}

func TestValidator_AcceptsValidParams(t *testing.T) {
	if err := NewValidator().Validate(&postIDParam{ID: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
