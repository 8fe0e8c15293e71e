package manager

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"sdx/internal/sderr"
)

// outputFiles returns path followed by its batch siblings "<stem>_<n><ext>"
// in ascending n. sd-cli writes image 1 to -o and image n>1 to the sibling.
func outputFiles(path string) []string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	files := []string{path}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return files
	}
	type sibling struct {
		n    int
		path string
	}
	var sibs []sibling
	prefix := stem + "_"
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || len(name) <= len(prefix)+len(ext) || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		n, err := strconv.Atoi(name[len(prefix) : len(name)-len(ext)])
		if err != nil || n < 1 {
			continue
		}
		sibs = append(sibs, sibling{n: n, path: filepath.Join(dir, name)})
	}
	sort.Slice(sibs, func(i, j int) bool { return sibs[i].n < sibs[j].n })
	for _, s := range sibs {
		files = append(files, s.path)
	}
	return files
}

// ReadAndRemove reads the artifact at path and any batch siblings, then
// removes all of them whether or not reading succeeded.
func ReadAndRemove(path string) ([][]byte, error) {
	files := outputFiles(path)
	defer removeFiles(files)
	images := make([][]byte, 0, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, sderr.OutputReadFailed(err)
		}
		images = append(images, b)
	}
	return images, nil
}

// RemoveOutputs deletes the artifact at path and its batch siblings. Missing
// files are not an error.
func RemoveOutputs(path string) error {
	return removeFiles(outputFiles(path))
}

func removeFiles(files []string) error {
	var errs []error
	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
