package css

import (
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

const (
	cssMediaType = "text/css"
	jsMediaType  = "application/javascript"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(cssMediaType, mincss.Minify)
	m.AddFunc(jsMediaType, js.Minify)
	return m
}

// Minify minifies a stylesheet: whitespace, colors, units and zero values.
func Minify(src []byte) ([]byte, error) {
	return minifier.Bytes(cssMediaType, src)
}

// MinifyJS minifies a script.
func MinifyJS(src []byte) ([]byte, error) {
	return minifier.Bytes(jsMediaType, src)
}
