// Package swaggrt is the runtime imported by code generated by swagg.
//
// A generated service type wraps an *API and exposes one Bind method per
// operation. Each Bind method calls Bind with the operation's Route and a
// typed Handler:
//
//	api := swaggrt.New(swaggrt.WithRequestID(swaggrt.RequestIDConfig{}))
//	petstore.NewPetStore(api).
//		BindGetPet(func(r *swaggrt.Request[swaggrt.None, swaggrt.None]) (petstore.GetPetResponse, error) {
//			return petstore.GetPetResponseOk{Body: pet}, nil
//		})
//	if err := api.Err(); err != nil {
//		log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", api)
//
// Path templates are served by net/http.ServeMux. Query parameters are
// decoded into the operation's query struct, JSON bodies with
// github.com/go-json-experiment/json, and form bodies field by field. The
// Responder returned by the handler decides what is written back.
package swaggrt
