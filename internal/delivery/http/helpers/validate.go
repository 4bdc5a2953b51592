package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"explorewithme/internal/domain"
)

// Validator is implemented by request DTOs that check their own shape.
// Validate returns a *domain.ValidationError or nil.
type Validator interface {
	Validate() error
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements Validator, runs Validate(). On failure it writes a 400 and
// returns false. Callers should return immediately when it returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if err := v.Validate(); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				WriteValidationError(w, verr)
			} else {
				WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			}
			return false
		}
	}
	return true
}
