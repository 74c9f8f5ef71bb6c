package dto

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyTag 三位大写字母的币种代码，如 USD
const currencyTag = "len=3,uppercase,alpha"

var registerOnce sync.Once

// RegisterValidators 在 gin 的校验引擎上注册自定义规则
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterAlias("currency", currencyTag)
	})
	return err
}

// FieldErrors 把校验错误转成 字段 -> 规则 的可读列表
func FieldErrors(err error) []string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		msg := fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s failed on '%s=%s'", fe.Namespace(), fe.Tag(), fe.Param())
		}
		out = append(out, msg)
	}
	return out
}
