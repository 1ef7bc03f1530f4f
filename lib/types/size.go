package types

import "github.com/dustin/go-humanize"

// Size is amount of bytes printed in human form, like 3.4 MB
type Size int64

func (s Size) String() string {
	return humanize.Bytes(uint64(s))
}
