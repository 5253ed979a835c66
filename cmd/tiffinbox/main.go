// Package main is the entry point for tiffinbox, a food ordering backend.
package main

func main() {
	Execute()
}
