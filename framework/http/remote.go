package http

import (
	"net/http"

	"github.com/km-arc/go-jsvalidation/framework/validation"
)

// RemoteField names the input the client wants validated remotely.
const RemoteField = "_jsvalidation"

// RemoteValidation serves the remote rules of the laravelValidationRemote
// bucket. The client posts the whole form plus _jsvalidation=<field>; only
// that field's rules run. The answer is JSON true, or the field's messages.
//
//	router.Post("/register/validate", gohttp.RemoteValidation(rules,
//	    validation.WithExtension("unique", users.Unique)))
func RemoteValidation(rules any, opts ...validation.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, res := NewRequest(r), NewResponse(w)

		field := req.Input(RemoteField)
		if field == "" {
			res.BadRequest("Missing " + RemoteField + " field.")
			return
		}

		set, err := validation.NewRuleSet(rules)
		if err != nil {
			res.ServerError()
			return
		}
		v, err := req.Validate(set.Only(field), opts...)
		if err != nil {
			res.BadRequest(err.Error())
			return
		}

		if v.Fails() {
			res.JSON(http.StatusOK, v.Errors().Bag[field])
			return
		}
		res.JSON(http.StatusOK, true)
	}
}
