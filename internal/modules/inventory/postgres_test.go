package inventory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	if !isUniqueViolation(dup) {
		t.Error("unique_violation must be detected")
	}
	if !isUniqueViolation(fmt.Errorf("insert item: %w", dup)) {
		t.Error("a wrapped unique_violation must be detected")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Error("a foreign key violation is not a conflict")
	}
	if isUniqueViolation(errors.New("duplicate key value violates unique constraint")) {
		t.Error("matching on message text alone must not trigger")
	}
	if isUniqueViolation(nil) {
		t.Error("nil is not a violation")
	}
}
