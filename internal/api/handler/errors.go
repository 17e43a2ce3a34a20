package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/duelroom/internal/api/apierr"
)

var validate = validator.New()

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// decodeBody unmarshals a JSON request body and checks its struct tags
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.NewInvalidRequestError("Invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		return apierr.NewInvalidRequestError("Invalid request: " + err.Error())
	}
	return nil
}
