// Package web, sunucu tarafında render edilen HTML şablonlarını binary
// içine gömer.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates
var content embed.FS

// Templates, şablonları templates/ önekini düşürerek kök dizinden sunar.
func Templates() http.FileSystem {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
