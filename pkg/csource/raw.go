package csource

import (
	"bufio"
	"fmt"
	"io"
)

// Symbol suffixes used by WriteRaw.
const (
	SizeSuffix = "_size"
	DataSuffix = "_data"
)

// WriteRaw writes data as a uint8_t array preceded by its length:
//
//	#include <stdint.h>
//
//
//	const uint16_t logo_size = 3;
//	const uint8_t logo_data[] = {
//	0x89,
//	0x50, 0x4E, };
//
// A line break follows byte 0 and every sixteenth byte after it.
// The size is written as-is; files larger than 65535 bytes overflow the
// uint16_t declaration.
func WriteRaw(w io.Writer, name string, data []byte) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	fmt.Fprintf(bw, "\nconst uint16_t %s%s = %d;\n", name, SizeSuffix, len(data))
	fmt.Fprintf(bw, "const uint8_t %s%s[] = {\n", name, DataSuffix)

	for i, b := range data {
		fmt.Fprintf(bw, "0x%02X, ", b)
		if i&15 == 0 {
			bw.WriteByte('\n')
		}
	}

	bw.WriteString("};\n")
	return bw.Flush()
}
