package main

import "inventario-ativos/internal/cli"

func main() {
	cli.Execute()
}
