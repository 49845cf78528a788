// Command installer-assets generates the artwork bundled into the macOS
// and Windows installers: the DMG background and the NSIS header and
// sidebar bitmaps. Files are written to the installer-assets directory one
// level above the executable, which is created if missing.
package main

import (
	"fmt"

	"installerassets"
)

func main() {
	fmt.Println("Generating minimal installer assets...")

	dir, err := installerassets.DefaultDir()
	if err != nil {
		panic(err)
	}
	if err := installerassets.EnsureDir(dir); err != nil {
		panic(err)
	}

	if _, err := installerassets.CreateDMGBackground(dir); err != nil {
		panic(err)
	}
	if _, err := installerassets.CreateNSISHeader(dir); err != nil {
		panic(err)
	}
	if _, err := installerassets.CreateNSISSidebar(dir); err != nil {
		panic(err)
	}

	fmt.Println("Done!")
}
