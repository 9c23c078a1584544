//go:build !linux

package catalog

// NewLister returns the window lister for this session. No enumerator
// exists for this platform; the catalogue returns empty lists and the
// operator supplies capture targets by identifier.
func NewLister() Lister {
	return emptyLister{}
}
