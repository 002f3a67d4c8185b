// Package view renders the server-side HTML pages.
//
// Templates are bundled into the binary with embed and parsed once at
// startup. Each page is executed into a buffer first, so a failing template
// never produces a half-written response, and can optionally be minified
// before it is sent.
package view
