package main

import (
	"github.com/inventariolab/inventario/cmd/cli/assets"
	"github.com/inventariolab/inventario/cmd/cli/auth"
	"github.com/inventariolab/inventario/cmd/cli/catalog"
	"github.com/inventariolab/inventario/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	assets.InitAssets(rootCmd)
	catalog.InitCatalog(rootCmd)

	root.Execute()
}
