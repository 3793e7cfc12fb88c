package fault

import "net/http"

// HTTPStatus maps a kind to the status the HTTP layer answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case Transition, UnknownCrop, IngredientMismatch, UnsupportedFactory, Validation:
		return http.StatusBadRequest
	case ResourceUnavailable, CapacityExceeded, InsufficientStock, InsufficientFunds:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
