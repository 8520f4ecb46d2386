package httpkit

import "net/http"

// Get mounts a handler that reads only the URL
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// Delete mounts a body-less DELETE handler
func Delete(r Router, path string, h func(*http.Request) (any, error)) { r.Delete(path, Call(h)) }

// PostJSON mounts a handler whose body is bound and validated into T first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}
