package handlers

import (
	"fmt"
	"net/http"
	"runtime"
)

// RecoverWrapper turns a handler panic into a 500 instead of killing the
// server; the stack goes to the log.
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				fmt.Printf("panic in %s %s: %v\n%s\n", r.Method, r.URL.Path, rec, string(stack))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		handler(w, r)
	}
}
