package handlers

import (
	"sync"

	"github.com/SscSPs/docflow_backend/internal/utils/identifier"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the docid tag to gin's validator. `docid=partner` accepts
// identifiers of that kind only.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("docid", func(fl validator.FieldLevel) bool {
			return identifier.IsKind(fl.Field().String(), identifier.Kind(fl.Param()))
		})
	})
}
