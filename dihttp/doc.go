/*
Package dihttp provides HTTP middleware that creates a [di.Container] scope for each request.

Example:

	package main

	import (
		"net/http"

		"github.com/go-chi/chi/v5"

		di "github.com/lakutata/lakutata-sub001"
		"github.com/lakutata/lakutata-sub001/dicontext"
		"github.com/lakutata/lakutata-sub001/dihttp"
	)

	func main() {
		c, err := di.NewContainer(di.Registrations{
			"db":      di.AsFunction(OpenDB, di.Singleton),
			"handler": di.AsClass[UserHandler](di.Classic, di.Scoped),
		})
		if err != nil {
			panic(err)
		}

		// Create a new scope middleware
		scopeMiddleware, err := dihttp.NewRequestScopeMiddleware(c)
		if err != nil {
			panic(err)
		}

		r := chi.NewRouter()
		r.Use(scopeMiddleware)
		r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			h := dicontext.MustResolve[*UserHandler](r.Context(), "handler")
			h.ServeHTTP(w, r)
		})

		http.ListenAndServe(":8080", r)
	}
*/
package dihttp
