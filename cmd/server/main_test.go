package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticHandlers(t *testing.T) {
	twoHundreds := map[string]http.HandlerFunc{
		"/healthz": healthCheckHandler,
		"/":        rootHandler,
	}

	for route, handler := range twoHundreds {
		t.Run(route, func(t *testing.T) {
			req := httptest.NewRequest("GET", route, http.NoBody)
			rr := httptest.NewRecorder()

			http.HandlerFunc(handler).ServeHTTP(rr, req)

			if status := rr.Code; status != http.StatusOK {
				t.Errorf("handler returned wrong status code: got %v want %v",
					status, http.StatusOK)
			}
		})
	}
}
