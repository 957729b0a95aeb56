package handler

import (
	"errors"
	"net/http"
	"reflect"

	"coldstore/internal/apierror"
	"coldstore/internal/domainerr"
	"coldstore/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondErr translates service errors into the API envelope. Domain errors
// carry their own status; a missing row is 404; anything else is 500 with the
// detail kept out of the response.
func respondErr(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("not found"))
		return
	}
	var ce *domainerr.ConsistencyError
	if errors.As(err, &ce) {
		// The client sees a generic 500; the full detail goes to the log for
		// manual reconciliation.
		log.Error().Err(err).
			Str("entity", ce.Entity).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Msg("ledger inconsistency")
	}
	status, body := apierror.FromDomain(err)
	if status == http.StatusBadRequest {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
		return
	}
	c.JSON(status, body)
}
