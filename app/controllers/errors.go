package controllers

import (
	"errors"
	"net/http"

	"github.com/qcharged/product-service/app/services"
	"github.com/qcharged/product-service/pkg/ctx"
	"github.com/qcharged/product-service/pkg/orm"
	"github.com/qcharged/product-service/pkg/response"
)

const (
	TitleProductNotFound      = "Product Not Found"
	TitleProductAlreadyExists = "Product Already Exists"
)

// fail writes the response for err. Unknown errors become a logged 500.
func fail(c *ctx.Context, err error) {
	var (
		notFound *services.NotFoundError
		exists   *services.AlreadyExistsError
		param    *ctx.ParamError
		pageable *orm.PageableError
	)

	switch {
	case errors.As(err, &notFound):
		c.Error(http.StatusNotFound, TitleProductNotFound, notFound.Error())
	case errors.As(err, &exists):
		c.Error(http.StatusConflict, TitleProductAlreadyExists, exists.Error())
	case errors.As(err, &param):
		c.ValidationError([]response.FieldError{param.FieldError()})
	case errors.As(err, &pageable):
		c.ValidationError([]response.FieldError{{Field: pageable.Field, Message: pageable.Message}})
	default:
		c.InternalError(err)
	}
}
