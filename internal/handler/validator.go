package handler

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidations 注册自定义校验规则，重复注册只是覆盖，幂等
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// releaseyear 上映年份：1888 到明年之间
	v.RegisterValidation("releaseyear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= 1888 && year <= time.Now().Year()+1
	})
}
