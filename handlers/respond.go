package handlers

import (
	"errors"
	"log"

	"reelbites-api/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// fail translates an error into its HTTP response. Anything outside the
// apperr taxonomy is reported as a generic internal error so callers can
// tell invalid requests apart from system failures.
func fail(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		e = apperr.New(apperr.Internal, "Something went wrong, please try again")
	}
	body := gin.H{
		"error": e.Message,
		"code":  e.Kind.Code(),
	}
	if len(e.Items) > 0 {
		body["items"] = e.Items
	}
	c.JSON(e.Kind.HTTPStatus(), body)
}

// notFoundOr maps a missing row to the given taxonomy error and passes
// anything else (driver failures, timeouts) through untranslated so it
// surfaces as a generic internal error rather than "request invalid".
func notFoundOr(err error, kind apperr.Kind, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(kind, message)
	}
	return err
}

// bindJSON binds and validates a request body, reporting violations
// per-field where the validator provides them.
func bindJSON(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+": failed '"+fe.Tag()+"' validation")
		}
		return apperr.WithItems(apperr.ValidationFailed, "Invalid request body", fields)
	}
	return apperr.New(apperr.ValidationFailed, "Invalid request body: "+err.Error())
}
