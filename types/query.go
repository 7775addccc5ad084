package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

// RunParams is the request body of POST /hackrx/run.
type RunParams struct {
	Documents string   `json:"documents" validate:"required,url"`
	Questions []string `json:"questions" validate:"required,min=1,dive,required"`
}

// RunResponse carries one AnswerRecord per input question, in input order.
type RunResponse struct {
	Answers []AnswerRecord `json:"answers"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func (params *RunParams) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}
