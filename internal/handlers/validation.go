package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/veioenza/seqr/internal/models"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags. Safe to call more than
// once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterValidation("casereview", validCaseReviewStatus)
		}
	})
}

func validCaseReviewStatus(fl validator.FieldLevel) bool {
	return models.CaseReviewStatus(fl.Field().String()).Valid()
}
