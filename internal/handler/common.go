package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/regen-eco/regen-server/internal/model"
	"github.com/regen-eco/regen-server/internal/repository"
)

// validate checks typed request DTOs before any domain logic executes.
var validate = validator.New()

// dbTimeout bounds every database call issued from a handler.
const dbTimeout = 5 * time.Second

// fail translates a domain or storage error into a stable JSON response.
// Validation problems surface their field message; everything unexpected is
// logged and reported as a generic 500 so internals never leak verbatim.
func fail(c echo.Context, err error, fallback string) error {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": ve.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": fallback + " not found"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"message": "User already exists"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"message": fallback + " has dependent records"})
	default:
		log.Printf("%s error: %v", fallback, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to process " + fallback})
	}
}

// bindValid binds the JSON body into dst and runs struct validation,
// answering 400 itself on failure. The bool reports whether the handler
// should continue.
func bindValid(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if err := validate.Struct(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing or malformed fields: " + err.Error()})
	}
	return true, nil
}
