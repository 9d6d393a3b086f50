package operator

import "github.com/arloliu/coltable/format"

func stringDescriptor() format.TypeDescriptor {
	return format.NewCustomDescriptor("string", "string", func(a, b any) int {
		as, bs := a.(string), b.(string)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	})
}
