// Package docs renders the API reference served at /docs.
package docs

import (
	_ "embed"
	"sync"

	"github.com/russross/blackfriday/v2"
)

//go:embed api.md
var apiMarkdown []byte

const (
	pageHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Text Analytics API</title>
<style>body{font-family:sans-serif;max-width:52rem;margin:2rem auto;padding:0 1rem}pre{background:#f4f4f4;padding:.75rem;overflow-x:auto}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:.25rem .5rem}</style>
</head>
<body>
`
	pageFooter = `</body>
</html>
`
)

var HTML = sync.OnceValue(func() []byte {
	body := blackfriday.Run(apiMarkdown, blackfriday.WithExtensions(blackfriday.CommonExtensions))

	page := make([]byte, 0, len(pageHeader)+len(body)+len(pageFooter))
	page = append(page, pageHeader...)
	page = append(page, body...)
	return append(page, pageFooter...)
})

func Markdown() []byte {
	return apiMarkdown
}
