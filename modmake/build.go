package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	litgenVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	litgen := NewAppBuild("litgen", "cmd/litgen", litgenVersion)
	litgen.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", litgenVersion).
			CgoEnabled(false)
	})
	litgen.Variant("windows", "amd64")
	litgen.Variant("linux", "amd64")
	litgen.Variant("linux", "arm64")
	litgen.Variant("darwin", "amd64")
	litgen.Variant("darwin", "arm64")
	b.ImportApp(litgen)

	b.Execute()
}
