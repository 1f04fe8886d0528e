//go:build !unix

package errors

func errnoName(err error) string {
	return ""
}
