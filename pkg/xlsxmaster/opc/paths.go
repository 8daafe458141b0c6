package opc

import (
	"path"
	"strconv"
	"strings"
)

// RelsPath returns the relationship manifest path of a part
// ("xl/worksheets/sheet1.xml" -> "xl/worksheets/_rels/sheet1.xml.rels").
// The package root's manifest is "_rels/.rels".
func RelsPath(part string) string {
	part = strings.TrimPrefix(part, "/")
	dir, base := path.Split(part)
	return dir + "_rels/" + base + ".rels"
}

// ResolveTarget resolves a relationship target against the part owning the
// manifest. A leading '/' makes the target package-absolute.
func ResolveTarget(source, target string) string {
	if target == "" {
		return ""
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	resolved := path.Clean(path.Join(path.Dir(strings.TrimPrefix(source, "/")), target))
	return strings.TrimPrefix(resolved, "/")
}

// RelativePath returns the target to write in source's manifest so that it
// resolves to the part at target, climbing with ".." where the directories differ.
func RelativePath(source, target string) string {
	from := splitDir(path.Dir(strings.TrimPrefix(source, "/")))
	to := strings.Split(strings.TrimPrefix(target, "/"), "/")
	toDir, file := to[:len(to)-1], to[len(to)-1]

	common := 0
	for common < len(from) && common < len(toDir) && from[common] == toDir[common] {
		common++
	}

	parts := make([]string, 0, len(from)-common+len(toDir)-common+1)
	for range from[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, toDir[common:]...)
	parts = append(parts, file)
	return strings.Join(parts, "/")
}

// PartName returns the content-type manifest name of a part ("/xl/charts/chart1.xml").
func PartName(part string) string {
	return "/" + strings.TrimPrefix(part, "/")
}

// NextPartName tries prefix1.xml, prefix2.xml, ... and returns the first
// name that does not exist in the package, along with its number.
func (p *Package) NextPartName(prefix string) (string, int) {
	for n := 1; ; n++ {
		name := prefix + strconv.Itoa(n) + ".xml"
		if !p.Has(name) {
			return name, n
		}
	}
}

func splitDir(dir string) []string {
	if dir == "." || dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
