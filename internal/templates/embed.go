// Package templates provides the embedded file templates of a generated project
// and renders them.
package templates

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

// Template files live under files/<package>/. Files ending in .tmpl are
// text/template sources. Other files are static; in them the token
// <CHARTNAME> is replaced with the project name, as helm create does.
//
//go:embed all:files
var embedded embed.FS

// FS returns the template tree rooted at files/.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		panic(err)
	}
	return sub
}

// List returns every template path under dir, sorted.
func List(dir string) ([]string, error) {
	var names []string
	err := fs.WalkDir(FS(), dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// IsTemplate reports whether name is a text/template source.
func IsTemplate(name string) bool {
	return strings.HasSuffix(name, ".tmpl")
}
