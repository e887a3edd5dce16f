// Package languages embeds the starter frequency tables shipped with the
// service. Each file holds one language's character n-gram counts under a
// "freq" key; the file name is the language code.
package languages

import "embed"

//go:embed *.json
var FS embed.FS
