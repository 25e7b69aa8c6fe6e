// Package http provides Laravel-compatible request and response helpers,
// the view engine that renders the client validation script, and the
// endpoint answering remote validation calls.
//
// # Request
//
// Request wraps *http.Request. Input is flattened to the dotted field names
// rules use, whether it arrived as a form ("user[email]") or as JSON
// ({"user": {"email": ...}}).
//
//	req := gohttp.NewRequest(r)
//
//	all, err := req.All()        // map[string]string, query + body
//	name := req.Input("name", "default")
//	page := req.Query("page", "1")
//	id := req.RouteParam("id")   // chi route params
//	fh, err := req.File("avatar")
//
//	v, err := req.Validate(validation.Rules{"email": "required|email"})
//	if v.Fails() {
//	    gohttp.NewResponse(w).ValidationError(v.Errors())
//	}
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NoContent()               // 204
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(errs)     // 422 {"message": "...", "errors": {"field": ["msg"]}}
//
// # ViewEngine
//
// Templates are looked up across layers; the bundled jsvalidation scripts
// ("jsvalidation/bootstrap", "jsvalidation/plain") come last.
//
//	engine := gohttp.NewViewEngine(".html", os.DirFS("./resources/views"))
//	engine.View(w, "register", data)
//	engine.ViewWithLayout(w, "layouts/app", "register", data)
//
//	script, err := jsv.Render(engine)   // template.HTML <script> block
//
// # Remote validation
//
//	router.Post("/register/validate", gohttp.RemoteValidation(rules))
package http
