// Command rfq manages the EMPHZ quote cart and product catalog.
package main

import "github.com/emphz/rfqcart/internal/cli"

func main() {
	cli.Execute()
}
