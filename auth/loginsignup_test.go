package auth

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

// A unique-index violation on insert must be recognized so registration can
// answer 409 instead of 500 when two signups race.
func TestIsDuplicateKeyError(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}
	if !isDuplicateKeyError(dup) {
		t.Fatal("code 11000 not detected as duplicate key")
	}

	other := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 121}},
	}
	if isDuplicateKeyError(other) {
		t.Fatal("non-11000 write error misread as duplicate key")
	}

	if isDuplicateKeyError(errors.New("network down")) {
		t.Fatal("plain error misread as duplicate key")
	}
	if isDuplicateKeyError(nil) {
		t.Fatal("nil error misread as duplicate key")
	}
}
