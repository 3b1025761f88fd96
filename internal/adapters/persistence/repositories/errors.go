package repositories

import "errors"

// errNothingToDelete aborts a document update when no record matched
var errNothingToDelete = errors.New("nothing to delete")
