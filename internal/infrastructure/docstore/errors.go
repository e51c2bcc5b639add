package docstore

import (
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"
	domainerrors "veab-goa.backend/internal/domain/errors"
)

const (
	mongoUnauthorized = 13
	mongoDuplicateKey = 11000
	atlasUnauthorized = 8000
)

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domainerrors.ErrNotFound
	}

	code, ok := serverCode(err)
	if !ok {
		return domainerrors.NewStoreError(op, "", err)
	}
	codeStr := strconv.Itoa(code)
	switch code {
	case mongoUnauthorized, atlasUnauthorized:
		return domainerrors.NewStoreError(op, codeStr, fmt.Errorf("%w: %v", domainerrors.ErrPermissionDenied, err))
	case mongoDuplicateKey:
		return domainerrors.NewStoreError(op, codeStr, fmt.Errorf("%w: %v", domainerrors.ErrAlreadyExists, err))
	}
	return domainerrors.NewStoreError(op, codeStr, err)
}

func serverCode(err error) (int, bool) {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return int(cmdErr.Code), true
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		if len(writeErr.WriteErrors) > 0 {
			return writeErr.WriteErrors[0].Code, true
		}
		if writeErr.WriteConcernError != nil {
			return writeErr.WriteConcernError.Code, true
		}
	}
	return 0, false
}
