package handlers

import (
	"encoding/json"
	"errors"
	"io"
)

// bindingErrors turns a JSON binding failure into per-field messages.
func bindingErrors(err error) map[string][]string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.Is(err, io.EOF):
		return map[string][]string{"body": {"Request body is required."}}
	case errors.As(err, &syntaxErr):
		return map[string][]string{"body": {"Request body is not valid JSON."}}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return map[string][]string{typeErr.Field: {"Expected a value of type " + typeErr.Type.String() + "."}}
	default:
		return map[string][]string{"body": {err.Error()}}
	}
}
